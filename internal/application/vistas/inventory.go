package vistas

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/ports"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// InventoryView stock actual de todos los productos (incluidos los agotados).
type InventoryView struct {
	*View[[]entity.Product]
	lowStockThreshold int
}

// NewInventoryView construye la vista sobre GET /productos.
func NewInventoryView(rk ports.RecordKeeper, lowStockThreshold int, log zerolog.Logger) *InventoryView {
	return &InventoryView{
		View: New(Options[[]entity.Product]{
			Name:        "inventario",
			Fetch:       rk.ListProducts,
			IsEmpty:     IsEmptySlice[entity.Product],
			FailMessage: "Fallo al cargar el inventario",
			Log:         log,
		}),
		lowStockThreshold: lowStockThreshold,
	}
}

// LowStock indica si el producto debe resaltarse por stock bajo.
func (v *InventoryView) LowStock(p entity.Product) bool {
	return p.LowStock(v.lowStockThreshold)
}
