// Package registro implementa el puerto RecordKeeper contra la API REST del
// servidor de registros (productos, ventas y reportes).
package registro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/ports"
	"github.com/jhoicas/panel-catalogos/internal/domain"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa RecordKeeper.
var _ ports.RecordKeeper = (*Client)(nil)

const maxBodyBytes = 4 << 20 // 4 MB; el historial de ventas viene completo

// Client adaptador HTTP del servidor de registros.
// Usa net/http de la librería estándar; el timeout es el único límite de tiempo.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el adaptador. baseURL prefija todas las rutas (sin barra final).
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ListProducts GET /productos.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var raw []dto.ProductoDTO
	if err := c.do(ctx, http.MethodGet, "/productos", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(raw))
	for _, p := range raw {
		out = append(out, toProduct(p))
	}
	return out, nil
}

// CreateProduct POST /productos.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductoRequest) (*entity.Product, error) {
	var resp dto.CreateProductoResponse
	if err := c.do(ctx, http.MethodPost, "/productos", in, &resp); err != nil {
		return nil, err
	}
	p := toProduct(resp.Producto)
	if p.Name == "" {
		// el servidor no devolvió el producto; el alta igual fue exitosa
		p.Name = in.Nombre
	}
	return &p, nil
}

// ListSales GET /ventas.
func (c *Client) ListSales(ctx context.Context) ([]entity.Sale, error) {
	var raw []dto.VentaDTO
	if err := c.do(ctx, http.MethodGet, "/ventas", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.Sale, 0, len(raw))
	for _, v := range raw {
		out = append(out, toSale(v))
	}
	return out, nil
}

// CreateSale POST /ventas.
func (c *Client) CreateSale(ctx context.Context, in dto.CreateVentaRequest) (*entity.Sale, error) {
	var raw dto.VentaDTO
	if err := c.do(ctx, http.MethodPost, "/ventas", in, &raw); err != nil {
		return nil, err
	}
	s := toSale(raw)
	return &s, nil
}

// DeleteSale DELETE /ventas/{id}.
func (c *Client) DeleteSale(ctx context.Context, saleID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ventas/%d", saleID), nil, nil)
}

// GetSalesSummary GET /reportes/resumen.
func (c *Client) GetSalesSummary(ctx context.Context) (entity.FinancialSummary, error) {
	var raw dto.ResumenDTO
	if err := c.do(ctx, http.MethodGet, "/reportes/resumen", nil, &raw); err != nil {
		return entity.FinancialSummary{}, err
	}
	return entity.FinancialSummary{
		NetProfit:        raw.GananciaNetaTotal,
		GrossSales:       raw.TotalVentasBruto,
		TransactionCount: int(raw.TotalTransacciones.IntPart()),
	}, nil
}

// GetInventoryValuation GET /reportes/inventario-valorado.
func (c *Client) GetInventoryValuation(ctx context.Context) (decimal.Decimal, error) {
	var raw dto.InventarioValoradoDTO
	if err := c.do(ctx, http.MethodGet, "/reportes/inventario-valorado", nil, &raw); err != nil {
		return decimal.Zero, err
	}
	return raw.ValorTotalInventario, nil
}

// do ejecuta la petición y decodifica la respuesta en out (si no es nil).
// Las respuestas de escritura exitosas con cuerpo ilegible no son error: el servidor
// ya aplicó el cambio y reintentar lo duplicaría.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: serializar request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: crear request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("servidor de registros inaccesible")
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("duracion", time.Since(start)).
		Msg("respuesta del servidor de registros")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.ServerError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(rawBody)}
	}

	if out == nil || len(bytes.TrimSpace(rawBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		if method != http.MethodGet {
			c.log.Warn().Err(err).Str("op", op).Msg("respuesta de escritura ilegible; se asume éxito")
			return nil
		}
		return &domain.ServerError{Op: op, StatusCode: resp.StatusCode, Message: "respuesta ilegible del servidor de registros"}
	}
	return nil
}

// errorMessage extrae "message" (o "error") del cuerpo; si no es JSON usa el texto plano.
func errorMessage(body []byte) string {
	var e dto.RegistroErrorDTO
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

func toProduct(p dto.ProductoDTO) entity.Product {
	out := entity.Product{
		ID:             p.ID,
		Name:           p.Nombre,
		Brand:          entity.Brand(p.Marca),
		CatalogCode:    p.CodigoCatalogo,
		PurchaseCost:   p.CostoCompra,
		SuggestedPrice: p.PrecioSugerido,
	}
	if p.Inventario != nil {
		out.Inventory = entity.InventoryRecord{
			Quantity: p.Inventario.CantidadStock,
			Location: p.Inventario.Ubicacion,
		}
	}
	return out
}

func toSale(v dto.VentaDTO) entity.Sale {
	lines := make([]entity.SaleLine, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		name := ""
		if d.Producto != nil {
			name = d.Producto.Nombre
		}
		lines = append(lines, entity.SaleLine{
			ID:          d.ID,
			ProductName: name,
			Quantity:    d.Cantidad,
			UnitPrice:   d.PrecioFinalUnitario,
		})
	}
	return entity.Sale{
		ID:           v.ID,
		Date:         v.FechaVenta,
		CustomerName: v.ClienteNombre,
		Status:       entity.SaleStatus(v.Estado),
		Lines:        lines,
		TotalPaid:    v.TotalPagado,
		NetProfit:    v.GananciaNeta,
	}
}
