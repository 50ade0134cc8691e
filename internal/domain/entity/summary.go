package entity

import "github.com/shopspring/decimal"

// FinancialSummary cifras agregadas calculadas por el servidor; el panel solo las muestra.
type FinancialSummary struct {
	NetProfit          decimal.Decimal
	GrossSales         decimal.Decimal
	TransactionCount   int
	InventoryValuation decimal.Decimal
}
