package registro_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/domain"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
	"github.com/jhoicas/panel-catalogos/internal/infrastructure/registro"
	"github.com/jhoicas/panel-catalogos/internal/infrastructure/registro/registrotest"
)

func newClient(baseURL string) *registro.Client {
	return registro.NewClient(baseURL, 2*time.Second, zerolog.Nop())
}

func labial() registrotest.Product {
	return registrotest.Product{
		ID: 1, Name: "Labial Mate", Brand: "Yanbal", CatalogCode: "YB-001",
		Cost: decimal.RequireFromString("6.50"), SuggestedPrice: decimal.RequireFromString("10.00"),
		Stock: 5, Location: "Caja 1",
	}
}

func TestListProducts_DecodificaInventarioEmbebido(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()

	products, err := newClient(srv.URL).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, entity.BrandYanbal, p.Brand)
	assert.True(t, p.SuggestedPrice.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 5, p.Inventory.Quantity)
	assert.Equal(t, "Caja 1", p.Inventory.Location)
}

func TestListProducts_MontosComoNumeroYSinInventario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":7,"nombre":"Perfume","marca":"Esika","costo_compra":12.4,"precio_sugerido":"19.90","Inventario":null}]`))
	}))
	defer srv.Close()

	products, err := newClient(srv.URL).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "12.4", products[0].PurchaseCost.String())
	assert.Equal(t, "19.9", products[0].SuggestedPrice.String())
	assert.Equal(t, 0, products[0].Inventory.Quantity)
}

func TestCreateSale_SerializaDetallesYDescuentaStock(t *testing.T) {
	var received dto.CreateVentaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ventas", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":55,"estado":"Pagada","total_pagado":"30.00"}`))
	}))
	defer srv.Close()

	sale, err := newClient(srv.URL+"/api/").CreateSale(context.Background(), dto.CreateVentaRequest{
		ClienteNombre: "Ana",
		Estado:        "Pagada",
		Detalles:      []dto.DetalleVentaRequest{{ProductoID: 1, Cantidad: 3, PrecioFinalUnitario: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), sale.ID)
	assert.True(t, sale.TotalPaid.Equal(decimal.NewFromInt(30)))
	require.Len(t, received.Detalles, 1)
	assert.Equal(t, int64(1), received.Detalles[0].ProductoID)
	assert.Equal(t, 3, received.Detalles[0].Cantidad)
}

func TestCreateSale_RespuestaIlegibleNoEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`Venta registrada`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).CreateSale(context.Background(), dto.CreateVentaRequest{Estado: "Pagada"})
	assert.NoError(t, err, "la venta ya se registró; no debe reportarse como fallo")
}

func TestServerError_ExtraeMessage(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()
	srv.Fail("DELETE /ventas", http.StatusConflict, "La venta ya fue entregada")

	err := newClient(srv.URL).DeleteSale(context.Background(), 3)
	require.Error(t, err)

	var se *domain.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.StatusCode)
	assert.Equal(t, "La venta ya fue entregada", se.Message)
	assert.Equal(t, "DELETE /ventas/3", se.Op)
}

func TestServerError_404EsNotFound(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()

	err := newClient(srv.URL).DeleteSale(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransportError_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(url).ListSales(context.Background())
	var te *domain.TransportError
	require.True(t, errors.As(err, &te), "se esperaba TransportError, llegó %T", err)
	assert.Equal(t, "GET /ventas", te.Op)
}

func TestReportes(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()
	srv.SeedSale("Ana", 1, 2, decimal.NewFromInt(10))

	c := newClient(srv.URL)
	summary, err := c.GetSalesSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TransactionCount)
	assert.Equal(t, "20.00", summary.GrossSales.StringFixed(2))
	assert.Equal(t, "7.00", summary.NetProfit.StringFixed(2))

	valuation, err := c.GetInventoryValuation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "19.50", valuation.StringFixed(2), "3 unidades a 6.50")
}

func TestDeleteSale_RevierteStock(t *testing.T) {
	srv := registrotest.New(labial())
	defer srv.Close()
	id := srv.SeedSale("Ana", 1, 2, decimal.NewFromInt(10))
	require.Equal(t, 3, srv.Stock(1))

	c := newClient(srv.URL)
	require.NoError(t, c.DeleteSale(context.Background(), id))
	assert.Equal(t, 5, srv.Stock(1))

	sales, err := c.ListSales(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sales)
}
