package vistas

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/ports"
	"github.com/jhoicas/panel-catalogos/internal/domain"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// SaleDeleter revierte una venta (implementado por venta.SaleDeletion).
type SaleDeleter interface {
	DeleteSale(ctx context.Context, saleID int64, confirmed bool) error
}

// RowState estado del botón eliminar de una fila.
type RowState struct {
	Busy    bool // esta fila se está eliminando
	Enabled bool // se puede pulsar eliminar
}

// DeleteOutcome último resultado de eliminación mostrado en la vista.
type DeleteOutcome struct {
	SaleID  int64
	OK      bool
	Message string
}

// SalesHistoryView historial de ventas con eliminación por fila. Mientras una fila se
// elimina, todas las demás quedan deshabilitadas: las reversiones tocan el mismo inventario
// y no deben solaparse.
type SalesHistoryView struct {
	*View[[]entity.Sale]
	deleter SaleDeleter
	log     zerolog.Logger

	delMu    sync.Mutex
	deleting int64 // 0 = ninguna
	outcome  *DeleteOutcome
}

// NewSalesHistoryView construye la vista sobre GET /ventas.
func NewSalesHistoryView(rk ports.RecordKeeper, deleter SaleDeleter, log zerolog.Logger) *SalesHistoryView {
	return &SalesHistoryView{
		View: New(Options[[]entity.Sale]{
			Name:        "ventas",
			Fetch:       rk.ListSales,
			IsEmpty:     IsEmptySlice[entity.Sale],
			FailMessage: "Fallo al cargar el historial de ventas",
			Log:         log,
		}),
		deleter: deleter,
		log:     log.With().Str("vista", "ventas").Logger(),
	}
}

// Row estado del botón eliminar para la venta indicada.
func (v *SalesHistoryView) Row(saleID int64) RowState {
	v.delMu.Lock()
	defer v.delMu.Unlock()
	return RowState{Busy: v.deleting == saleID, Enabled: v.deleting == 0}
}

// Deleting id de la venta en eliminación (0 si ninguna).
func (v *SalesHistoryView) Deleting() int64 {
	v.delMu.Lock()
	defer v.delMu.Unlock()
	return v.deleting
}

// LastOutcome resultado de la última eliminación, si hubo.
func (v *SalesHistoryView) LastOutcome() *DeleteOutcome {
	v.delMu.Lock()
	defer v.delMu.Unlock()
	if v.outcome == nil {
		return nil
	}
	o := *v.outcome
	return &o
}

// Delete elimina la venta desde su fila. Devuelve domain.ErrBusy si otra fila está en
// eliminación. El refresco de las vistas lo dispara la época, no esta vista.
func (v *SalesHistoryView) Delete(ctx context.Context, saleID int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	v.delMu.Lock()
	if v.deleting != 0 {
		busy := v.deleting
		v.delMu.Unlock()
		v.log.Debug().Int64("venta", saleID).Int64("en_curso", busy).Msg("eliminación rechazada: otra en curso")
		return domain.ErrBusy
	}
	v.deleting = saleID
	v.outcome = nil
	v.delMu.Unlock()

	err := v.deleter.DeleteSale(ctx, saleID, true)

	v.delMu.Lock()
	defer v.delMu.Unlock()
	v.deleting = 0
	if err != nil {
		v.outcome = &DeleteOutcome{SaleID: saleID, Message: domain.UserMessage(err)}
		return err
	}
	v.outcome = &DeleteOutcome{SaleID: saleID, OK: true, Message: "venta eliminada y stock revertido"}
	return nil
}
