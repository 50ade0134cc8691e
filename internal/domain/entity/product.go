package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. El panel nunca lo modifica:
// el servidor de registros es su dueño.
type Product struct {
	ID             int64
	Name           string
	Brand          Brand
	CatalogCode    string
	PurchaseCost   decimal.Decimal // costo de compra
	SuggestedPrice decimal.Decimal // precio de venta sugerido
	Inventory      InventoryRecord
}

// InventoryRecord stock actual de un producto (1:1). Solo lo muta el servidor
// al registrar o revertir ventas.
type InventoryRecord struct {
	Quantity int
	Location string
}

// InStock indica si el producto puede ofrecerse en una venta.
func (p Product) InStock() bool {
	return p.Inventory.Quantity > 0
}

// LowStock indica si el stock está en o por debajo del umbral.
func (p Product) LowStock(threshold int) bool {
	return p.Inventory.Quantity <= threshold
}

// FilterInStock devuelve, en el mismo orden, los productos con stock > 0.
func FilterInStock(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.InStock() {
			out = append(out, p)
		}
	}
	return out
}
