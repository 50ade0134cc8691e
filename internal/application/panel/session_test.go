package panel_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/panel"
	"github.com/jhoicas/panel-catalogos/internal/application/vistas"
	"github.com/jhoicas/panel-catalogos/internal/infrastructure/registro"
	"github.com/jhoicas/panel-catalogos/internal/infrastructure/registro/registrotest"
)

func deps(srv *registrotest.Server) panel.Deps {
	return panel.Deps{
		Registro:          registro.NewClient(srv.URL, 2*time.Second, zerolog.Nop()),
		LowStockThreshold: 5,
		Log:               zerolog.Nop(),
	}
}

func labial() registrotest.Product {
	return registrotest.Product{
		ID:             1,
		Name:           "Labial Rojo",
		Brand:          "Esika",
		Cost:           decimal.RequireFromString("6.50"),
		SuggestedPrice: decimal.RequireFromString("10.00"),
		Stock:          5,
	}
}

// listas espera a que todas las vistas reflejen al menos la época indicada.
func listas(t *testing.T, s *panel.Session, epoch uint64) panel.Snapshot {
	t.Helper()
	var snap panel.Snapshot
	require.Eventually(t, func() bool {
		snap = s.Snapshot()
		ready := func(st vistas.State, e uint64) bool { return st == vistas.StateReady && e >= epoch }
		return ready(snap.Inventory.State, snap.Inventory.Epoch) &&
			ready(snap.Sales.State, snap.Sales.Epoch) &&
			ready(snap.Summary.State, snap.Summary.Epoch) &&
			ready(snap.Catalog.State, snap.Catalog.Epoch)
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func TestSession_VentaRefrescaTodasLasVistas(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()

	s := panel.NewSession("prueba", deps(srv))
	s.Start(context.Background())
	defer s.Close()

	snap := listas(t, s, 0)
	assert.True(t, snap.Sales.Empty)
	assert.Equal(t, 5, snap.Inventory.Data[0].Inventory.Quantity)

	i := s.Composer.AddLine()
	require.NoError(t, s.Composer.SetLineProduct(i, "1"))
	require.NoError(t, s.Composer.SetLineQuantity(i, "3"))
	_, err := s.Composer.Submit(context.Background())
	require.NoError(t, err)

	snap = listas(t, s, 1)
	assert.Equal(t, 2, snap.Inventory.Data[0].Inventory.Quantity, "inventario actualizado")
	require.Len(t, snap.Sales.Data, 1, "la venta aparece en el historial")
	assert.Equal(t, 1, snap.Summary.Data.TransactionCount)
	assert.True(t, snap.Summary.Data.GrossSales.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, snap.Catalog.Data[0].Inventory.Quantity)
}

func TestSession_EliminarVentaDesdeElHistorial(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()
	id := srv.SeedSale("Ana", 1, 2, decimal.NewFromInt(10))

	s := panel.NewSession("prueba", deps(srv))
	s.Start(context.Background())
	defer s.Close()
	listas(t, s, 0)

	require.NoError(t, s.Sales.Delete(context.Background(), id, true))

	snap := listas(t, s, 1)
	assert.True(t, snap.Sales.Empty)
	assert.Equal(t, 5, snap.Inventory.Data[0].Inventory.Quantity, "stock revertido")
	require.NotNil(t, snap.Deletion)
	assert.True(t, snap.Deletion.OK)
}

func TestSession_AltaDeProductoApareceEnElCatalogo(t *testing.T) {
	srv := registrotest.New()
	defer srv.Close()

	s := panel.NewSession("prueba", deps(srv))
	s.Start(context.Background())
	defer s.Close()
	snap := listas(t, s, 0)
	assert.True(t, snap.Catalog.Empty)

	_, _, err := s.Products.Execute(context.Background(), dto.AgregarProductoRequest{
		Nombre: "Colonia", Marca: "Cyzone", CodigoCatalogo: "CZ-1", PrecioSugerido: 20, CantidadStock: 2,
	})
	require.NoError(t, err)

	snap = listas(t, s, 1)
	require.Len(t, snap.Catalog.Data, 1)
	assert.Equal(t, "Colonia", snap.Catalog.Data[0].Name)
	assert.True(t, s.Inventory.LowStock(snap.Inventory.Data[0]))
}

func TestSession_RecargarAvanzaLaEpoca(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()

	s := panel.NewSession("prueba", deps(srv))
	s.Start(context.Background())
	defer s.Close()
	listas(t, s, 0)
	before := srv.Requests("GET /ventas")

	assert.Equal(t, uint64(1), s.Reload())
	listas(t, s, 1)
	assert.Greater(t, srv.Requests("GET /ventas"), before)
}

func TestSession_CloseDesmontaLasVistas(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()

	s := panel.NewSession("prueba", deps(srv))
	s.Start(context.Background())
	listas(t, s, 0)

	s.Close()
	assert.Equal(t, 0, s.Epoch.Subscribers())
}

func TestSession_ReporteConDatosCargados(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()
	srv.SeedSale("Ana", 1, 2, decimal.NewFromInt(10))

	s := panel.NewSession("prueba", deps(srv))
	_, err := s.Report("Panel", time.Now())
	assert.ErrorIs(t, err, panel.ErrNotReady, "sin montar las vistas siguen cargando")

	s.Start(context.Background())
	defer s.Close()
	listas(t, s, 0)

	r, err := s.Report("Panel", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, r.LowStockThreshold)
	assert.Len(t, r.Products, 1)
	assert.Len(t, r.Sales, 1)
	assert.True(t, r.Summary.InventoryValuation.Equal(decimal.RequireFromString("19.50")))
}

func TestSession_ReporteFallaSiFallaElResumen(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()
	srv.Fail("GET /reportes/resumen", 500, "sin conexión a la base")

	s := panel.NewSession("prueba", deps(srv))
	s.Start(context.Background())
	defer s.Close()
	require.Eventually(t, func() bool { return s.Summary.Snapshot().State == vistas.StateFailed }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return s.Inventory.Snapshot().State == vistas.StateReady }, 2*time.Second, 5*time.Millisecond)

	_, err := s.Report("Panel", time.Now())
	assert.EqualError(t, err, "sin conexión a la base")
}
