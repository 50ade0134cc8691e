package vistas

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/ports"
	"github.com/jhoicas/panel-catalogos/internal/application/refresh"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// ProductCatalog caché de solo lectura de los productos ofrecibles en una venta
// (stock > 0). Se vuelve a leer en cada cambio de época como cualquier vista.
type ProductCatalog struct {
	*View[[]entity.Product]
	epoch refresh.Observer
}

// NewProductCatalog construye el catálogo sobre GET /productos.
func NewProductCatalog(rk ports.RecordKeeper, epoch refresh.Observer, log zerolog.Logger) *ProductCatalog {
	return &ProductCatalog{
		View: New(Options[[]entity.Product]{
			Name: "catalogo",
			Fetch: func(ctx context.Context) ([]entity.Product, error) {
				products, err := rk.ListProducts(ctx)
				if err != nil {
					return nil, err
				}
				return entity.FilterInStock(products), nil
			},
			IsEmpty:     IsEmptySlice[entity.Product],
			FailMessage: "Fallo al cargar los productos",
			Log:         log,
		}),
		epoch: epoch,
	}
}

// Load fuerza una lectura con la época vigente y devuelve el error si falló.
func (c *ProductCatalog) Load(ctx context.Context) error {
	var epoch uint64
	if c.epoch != nil {
		epoch = c.epoch.Current()
	}
	c.Refresh(ctx, epoch)
	if snap := c.Snapshot(); snap.State == StateFailed {
		return snap.Err
	}
	return nil
}

// Products productos disponibles; vacío mientras el catálogo no esté listo.
func (c *ProductCatalog) Products() []entity.Product {
	snap := c.Snapshot()
	if snap.State != StateReady {
		return nil
	}
	return snap.Data
}

// Find busca un producto disponible por id.
func (c *ProductCatalog) Find(id int64) (entity.Product, bool) {
	for _, p := range c.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}
