package vistas

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/panel-catalogos/internal/application/ports"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// FinancialSummaryView cifras agregadas: ganancia neta, ventas brutas, transacciones y
// valor del inventario. Nunca está "vacía": sin ventas muestra ceros.
type FinancialSummaryView struct {
	*View[entity.FinancialSummary]
}

// NewFinancialSummaryView construye la vista sobre los dos endpoints de reportes.
func NewFinancialSummaryView(rk ports.RecordKeeper, log zerolog.Logger) *FinancialSummaryView {
	return &FinancialSummaryView{
		View: New(Options[entity.FinancialSummary]{
			Name:        "resumen",
			Fetch:       fetchSummary(rk),
			FailMessage: "Fallo al cargar los reportes financieros",
			Log:         log,
		}),
	}
}

// fetchSummary pide resumen y valorización en paralelo; si cualquiera falla la vista falla.
func fetchSummary(rk ports.RecordKeeper) FetchFunc[entity.FinancialSummary] {
	return func(ctx context.Context) (entity.FinancialSummary, error) {
		var (
			summary   entity.FinancialSummary
			valuation decimal.Decimal
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			summary, err = rk.GetSalesSummary(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			valuation, err = rk.GetInventoryValuation(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return entity.FinancialSummary{}, err
		}
		summary.InventoryValuation = valuation
		return summary, nil
	}
}
