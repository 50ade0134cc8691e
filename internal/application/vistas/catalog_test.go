package vistas

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panel-catalogos/internal/application/refresh"
	"github.com/jhoicas/panel-catalogos/internal/domain"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

func TestProductCatalog_SoloProductosConStock(t *testing.T) {
	rk := newFakeRegistro()
	rk.products = []entity.Product{
		{ID: 1, Name: "Labial", SuggestedPrice: decimal.NewFromInt(10), Inventory: entity.InventoryRecord{Quantity: 5}},
		{ID: 2, Name: "Perfume", Inventory: entity.InventoryRecord{Quantity: 0}},
		{ID: 3, Name: "Crema", Inventory: entity.InventoryRecord{Quantity: 1}},
	}
	c := NewProductCatalog(rk, nil, zerolog.Nop())

	assert.Nil(t, c.Products(), "sin datos antes de la primera lectura")

	require.NoError(t, c.Load(context.Background()))
	got := c.Products()
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID, "se conserva el orden del servidor")

	p, ok := c.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Labial", p.Name)

	_, ok = c.Find(2)
	assert.False(t, ok, "un producto agotado no se ofrece")
}

func TestProductCatalog_LoadDevuelveElError(t *testing.T) {
	rk := newFakeRegistro()
	rk.setErr("ListProducts", &domain.ServerError{Op: "GET /productos", StatusCode: 500, Message: "caído"})
	epoch := refresh.NewEpoch()
	epoch.Advance()
	c := NewProductCatalog(rk, epoch, zerolog.Nop())

	err := c.Load(context.Background())
	var se *domain.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, uint64(1), c.Snapshot().Epoch)
	assert.Empty(t, c.Products())
}
