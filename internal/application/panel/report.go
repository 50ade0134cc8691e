package panel

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/panel-catalogos/internal/application/vistas"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// ErrNotReady el reporte necesita el resumen y el inventario ya cargados.
var ErrNotReady = errors.New("los datos del panel aún se están cargando")

// Report datos del reporte exportable: resumen financiero, inventario e historial.
type Report struct {
	Title             string
	GeneratedAt       time.Time
	Epoch             uint64
	Summary           entity.FinancialSummary
	Products          []entity.Product
	Sales             []entity.Sale
	LowStockThreshold int
}

// ReportGenerator convierte el reporte en un documento (PDF).
type ReportGenerator interface {
	GenerateReport(ctx context.Context, r Report) ([]byte, error)
}

// Report arma el reporte con lo que muestran las vistas en este momento. Si alguna
// falló devuelve su error; si alguna sigue cargando devuelve ErrNotReady. El historial
// de ventas es opcional: si no está listo el reporte sale sin él.
func (s *Session) Report(title string, now time.Time) (Report, error) {
	summary := s.Summary.Snapshot()
	inventory := s.Inventory.Snapshot()
	for _, st := range []struct {
		state vistas.State
		err   error
	}{{summary.State, summary.Err}, {inventory.State, inventory.Err}} {
		switch st.state {
		case vistas.StateFailed:
			return Report{}, st.err
		case vistas.StateLoading:
			return Report{}, ErrNotReady
		}
	}

	r := Report{
		Title:             title,
		GeneratedAt:       now,
		Epoch:             summary.Epoch,
		Summary:           summary.Data,
		Products:          inventory.Data,
		LowStockThreshold: s.lowStockThreshold,
	}
	if sales := s.Sales.Snapshot(); sales.State == vistas.StateReady {
		r.Sales = sales.Data
	}
	return r, nil
}
