package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panel-catalogos/internal/application/panel"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
	"github.com/jhoicas/panel-catalogos/internal/infrastructure/pdf"
)

func TestGenerateReport_DevuelvePDF(t *testing.T) {
	r := panel.Report{
		Title:       "Panel de Catálogos",
		GeneratedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Summary: entity.FinancialSummary{
			NetProfit:          decimal.RequireFromString("7.00"),
			GrossSales:         decimal.RequireFromString("20.00"),
			TransactionCount:   1,
			InventoryValuation: decimal.RequireFromString("19.50"),
		},
		Products: []entity.Product{
			{ID: 1, Name: "Labial Rojo", Brand: entity.BrandEsika, CatalogCode: "E-1", PurchaseCost: decimal.RequireFromString("6.50"), SuggestedPrice: decimal.NewFromInt(10), Inventory: entity.InventoryRecord{Quantity: 3}},
			{ID: 2, Name: "Perfume", Brand: entity.BrandYanbal, SuggestedPrice: decimal.NewFromInt(50), Inventory: entity.InventoryRecord{Quantity: 12}},
		},
		Sales: []entity.Sale{
			{ID: 9, Date: time.Now(), CustomerName: "Ana", Status: entity.SaleStatusPaid, TotalPaid: decimal.NewFromInt(20), NetProfit: decimal.NewFromInt(7),
				Lines: []entity.SaleLine{{ProductName: "Labial Rojo", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}}},
		},
		LowStockThreshold: 5,
	}

	out, err := pdf.NewMarotoReportGenerator().GenerateReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestGenerateReport_SinDatos(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator().GenerateReport(context.Background(), panel.Report{
		Title:       "Panel de Catálogos",
		GeneratedAt: time.Now(),
		Sales:       []entity.Sale{},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
