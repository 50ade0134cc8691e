// Package venta contiene la composición de ventas de varias líneas y la eliminación
// (reversión) de ventas registradas.
package venta

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/refresh"
	"github.com/jhoicas/panel-catalogos/internal/domain"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// Catalog productos ofrecibles (stock > 0). Implementado por vistas.ProductCatalog.
type Catalog interface {
	Load(ctx context.Context) error
	Find(id int64) (entity.Product, bool)
	Products() []entity.Product
}

// SaleCreator puerto de registro de ventas.
type SaleCreator interface {
	CreateSale(ctx context.Context, in dto.CreateVentaRequest) (*entity.Sale, error)
}

// State estado observable del compositor.
type State struct {
	Draft      Draft           `json:"borrador"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CanSubmit  bool            `json:"puede_confirmar"`
	Submitting bool            `json:"enviando"`
	Message    string          `json:"mensaje,omitempty"`
}

// SaleComposer arma una venta de varias líneas contra el catálogo y la registra.
type SaleComposer struct {
	catalog Catalog
	sales   SaleCreator
	epoch   refresh.Advancer
	log     zerolog.Logger

	mu         sync.Mutex
	draft      Draft
	submitting bool
	message    string
}

// NewSaleComposer crea el compositor con un borrador vacío.
func NewSaleComposer(catalog Catalog, sales SaleCreator, epoch refresh.Advancer, log zerolog.Logger) *SaleComposer {
	return &SaleComposer{
		catalog: catalog,
		sales:   sales,
		epoch:   epoch,
		log:     log,
		draft:   NewDraft(),
	}
}

// LoadCatalog vuelve a leer los productos disponibles.
func (c *SaleComposer) LoadCatalog(ctx context.Context) error {
	if err := c.catalog.Load(ctx); err != nil {
		c.setMessage("Error al cargar inventario para la venta: " + domain.UserMessage(err))
		return fmt.Errorf("cargar catálogo: %w", err)
	}
	return nil
}

// AddLine agrega una línea vacía al final y devuelve su índice.
func (c *SaleComposer) AddLine() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Lines = append(c.draft.Lines, NewLine())
	return len(c.draft.Lines) - 1
}

// SetLineProduct selecciona el producto de la línea. Si está en el catálogo, el precio
// de la línea pasa a ser su precio sugerido (sigue siendo editable).
func (c *SaleComposer) SetLineProduct(i int, productID string) error {
	return c.editLine(i, func(l *Line) {
		l.ProductID = productID
		id, ok := parseProductID(productID)
		if !ok {
			return
		}
		if p, found := c.catalog.Find(id); found {
			l.UnitPrice = p.SuggestedPrice.StringFixed(2)
		}
	})
}

// SetLineQuantity sobrescribe la cantidad sin validarla.
func (c *SaleComposer) SetLineQuantity(i int, quantity string) error {
	return c.editLine(i, func(l *Line) { l.Quantity = quantity })
}

// SetLineUnitPrice sobrescribe el precio unitario sin validarlo.
func (c *SaleComposer) SetLineUnitPrice(i int, price string) error {
	return c.editLine(i, func(l *Line) { l.UnitPrice = price })
}

// RemoveLine quita la línea conservando el orden de las demás.
func (c *SaleComposer) RemoveLine(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.draft.Lines) {
		return fmt.Errorf("quitar línea %d: %w", i, domain.ErrInvalidLine)
	}
	c.draft.Lines = append(c.draft.Lines[:i], c.draft.Lines[i+1:]...)
	return nil
}

// SetCustomer nombre del cliente (opcional).
func (c *SaleComposer) SetCustomer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.CustomerName = name
}

// SetStatus estado de la venta; debe pertenecer al enumerado.
func (c *SaleComposer) SetStatus(status entity.SaleStatus) error {
	if !status.Valid() {
		return &domain.ValidationError{Field: "estado", Reason: fmt.Sprintf("estado %q no válido", status), Err: domain.ErrInvalidInput}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Status = status
	return nil
}

// Draft copia del borrador.
func (c *SaleComposer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.clone()
}

// Subtotal total de la venta en edición.
func (c *SaleComposer) Subtotal() decimal.Decimal {
	return c.Draft().Subtotal()
}

// CanSubmit el botón confirmar está habilitado: subtotal distinto de 0 y sin envío en curso.
func (c *SaleComposer) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.submitting && !c.draft.Subtotal().IsZero()
}

// State estado completo para la interfaz.
func (c *SaleComposer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := c.draft.Subtotal()
	return State{
		Draft:      c.draft.clone(),
		Subtotal:   sub,
		CanSubmit:  !c.submitting && !sub.IsZero(),
		Submitting: c.submitting,
		Message:    c.message,
	}
}

// Submit valida y registra la venta. Sin líneas válidas o con subtotal 0 devuelve un
// ValidationError sin contactar al servidor. Si el servidor acepta, el borrador se vacía y se avanza la
// época; si falla, el borrador queda intacto para corregir y reintentar.
func (c *SaleComposer) Submit(ctx context.Context) (*entity.Sale, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}
	req := c.draft.Request()
	if len(req.Detalles) == 0 {
		err := &domain.ValidationError{Field: "detalles", Reason: domain.ErrEmptySale.Error(), Err: domain.ErrEmptySale}
		c.message = "La venta debe tener al menos un producto."
		c.mu.Unlock()
		return nil, err
	}
	if c.draft.Subtotal().IsZero() {
		err := &domain.ValidationError{Field: "subtotal", Reason: domain.ErrZeroTotal.Error(), Err: domain.ErrZeroTotal}
		c.message = "El total de la venta no puede ser 0."
		c.mu.Unlock()
		return nil, err
	}
	c.submitting = true
	c.message = ""
	c.mu.Unlock()

	sale, err := c.sales.CreateSale(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.message = "Error al registrar venta: " + domain.UserMessage(err)
		c.log.Warn().Err(err).Int("lineas", len(req.Detalles)).Msg("registro de venta fallido")
		return nil, fmt.Errorf("registrar venta: %w", err)
	}

	if sale == nil {
		sale = &entity.Sale{}
	}
	c.draft = NewDraft()
	c.message = "Venta registrada y stock actualizado con éxito"
	epoch := c.epoch.Advance()
	c.log.Info().Int64("venta_id", sale.ID).Int("lineas", len(req.Detalles)).Uint64("epoca", epoch).Msg("venta registrada")
	return sale, nil
}

func (c *SaleComposer) editLine(i int, edit func(*Line)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.draft.Lines) {
		return fmt.Errorf("editar línea %d: %w", i, domain.ErrInvalidLine)
	}
	edit(&c.draft.Lines[i])
	return nil
}

func (c *SaleComposer) setMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = msg
}
