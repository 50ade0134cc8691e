package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// RecordKeeper define el puerto de salida hacia el servidor de registros: la fuente
// de verdad de productos, inventario, ventas y reportes. El panel nunca persiste nada.
//
// Los errores son *domain.TransportError (sin respuesta) o *domain.ServerError
// (respuesta distinta de 2xx con el mensaje del servidor).
type RecordKeeper interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	CreateProduct(ctx context.Context, in dto.CreateProductoRequest) (*entity.Product, error)

	ListSales(ctx context.Context) ([]entity.Sale, error)
	// CreateSale registra la venta; el servidor descuenta stock y calcula la ganancia.
	CreateSale(ctx context.Context, in dto.CreateVentaRequest) (*entity.Sale, error)
	// DeleteSale revierte el stock de la venta y la elimina (atómico en el servidor).
	DeleteSale(ctx context.Context, saleID int64) error

	// GetSalesSummary devuelve ganancia neta, ventas brutas y transacciones.
	// InventoryValuation queda en cero: se obtiene con GetInventoryValuation.
	GetSalesSummary(ctx context.Context) (entity.FinancialSummary, error)
	GetInventoryValuation(ctx context.Context) (decimal.Decimal, error)
}
