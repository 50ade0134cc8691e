package venta

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// Line línea en edición. Los valores se guardan tal como los escribe el operador;
// se interpretan recién al calcular el subtotal o al serializar.
type Line struct {
	ProductID string `json:"producto_id"`
	Quantity  string `json:"cantidad"`
	UnitPrice string `json:"precio_unitario"`
}

// NewLine línea vacía: sin producto, cantidad 1, precio 0.
func NewLine() Line {
	return Line{Quantity: "1", UnitPrice: "0"}
}

// Draft venta en edición.
type Draft struct {
	CustomerName string            `json:"cliente_nombre"`
	Status       entity.SaleStatus `json:"estado"`
	Lines        []Line            `json:"detalles"`
}

// NewDraft borrador vacío con estado Pagada.
func NewDraft() Draft {
	return Draft{Status: entity.SaleStatusPaid}
}

func (d Draft) clone() Draft {
	d.Lines = append([]Line(nil), d.Lines...)
	return d
}

// Subtotal Σ cantidad × precio sobre todas las líneas. Un valor no numérico cuenta como 0.
func (d Draft) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(parseAmount(l.Quantity).Mul(parseAmount(l.UnitPrice)))
	}
	return total
}

// Request serializa las líneas válidas (producto seleccionado y cantidad entera > 0), en orden.
func (d Draft) Request() dto.CreateVentaRequest {
	req := dto.CreateVentaRequest{
		ClienteNombre: d.CustomerName,
		Estado:        string(d.Status),
		Detalles:      make([]dto.DetalleVentaRequest, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		id, ok := parseProductID(l.ProductID)
		if !ok {
			continue
		}
		// la cantidad se trunca a entero: "2.5" se envía como 2
		qty := parseAmount(l.Quantity).IntPart()
		if qty <= 0 {
			continue
		}
		req.Detalles = append(req.Detalles, dto.DetalleVentaRequest{
			ProductoID:          id,
			Cantidad:            int(qty),
			PrecioFinalUnitario: parseAmount(l.UnitPrice).InexactFloat64(),
		})
	}
	return req
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseProductID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
