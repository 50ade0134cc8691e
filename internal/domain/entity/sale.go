package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta tal como lo guarda el servidor.
type SaleStatus string

const (
	SaleStatusPaid      SaleStatus = "Pagada"
	SaleStatusPending   SaleStatus = "Pendiente Pago"
	SaleStatusDelivered SaleStatus = "Entregada"
)

// SaleStatuses lista de estados seleccionables por el operador.
var SaleStatuses = []SaleStatus{SaleStatusPaid, SaleStatusPending, SaleStatusDelivered}

// Valid indica si el estado pertenece al enumerado.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPaid, SaleStatusPending, SaleStatusDelivered:
		return true
	}
	return false
}

// Sale venta persistida. Inmutable salvo por su eliminación (reversión).
type Sale struct {
	ID           int64
	Date         time.Time
	CustomerName string
	Status       SaleStatus
	Lines        []SaleLine
	TotalPaid    decimal.Decimal
	NetProfit    decimal.Decimal
}

// SaleLine línea persistida de una venta, con el nombre del producto ya resuelto.
type SaleLine struct {
	ID          int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}
