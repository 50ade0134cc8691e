package vistas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panel-catalogos/internal/domain"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// bloqueoDeleter retiene cada eliminación hasta que el test la libera.
type bloqueoDeleter struct {
	started chan int64
	release chan error
}

func newBloqueoDeleter() *bloqueoDeleter {
	return &bloqueoDeleter{started: make(chan int64, 4), release: make(chan error)}
}

func (d *bloqueoDeleter) DeleteSale(_ context.Context, saleID int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	d.started <- saleID
	return <-d.release
}

func TestSalesHistoryView_SinConfirmacionNoElimina(t *testing.T) {
	del := newBloqueoDeleter()
	v := NewSalesHistoryView(newFakeRegistro(), del, zerolog.Nop())

	err := v.Delete(context.Background(), 7, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Len(t, del.started, 0)
	assert.True(t, v.Row(7).Enabled)
}

func TestSalesHistoryView_UnaEliminacionDeshabilitaLasDemasFilas(t *testing.T) {
	del := newBloqueoDeleter()
	v := NewSalesHistoryView(newFakeRegistro(), del, zerolog.Nop())

	done := make(chan error)
	go func() { done <- v.Delete(context.Background(), 7, true) }()
	require.Equal(t, int64(7), <-del.started)

	assert.Equal(t, RowState{Busy: true, Enabled: false}, v.Row(7))
	assert.Equal(t, RowState{Busy: false, Enabled: false}, v.Row(8))
	assert.Equal(t, int64(7), v.Deleting())

	err := v.Delete(context.Background(), 8, true)
	assert.ErrorIs(t, err, domain.ErrBusy, "otra fila en curso")

	del.release <- nil
	require.NoError(t, <-done)

	assert.Equal(t, RowState{Busy: false, Enabled: true}, v.Row(8))
	out := v.LastOutcome()
	require.NotNil(t, out)
	assert.True(t, out.OK)
	assert.Equal(t, int64(7), out.SaleID)
}

func TestSalesHistoryView_FalloRehabilitaFilasYConservaLaVenta(t *testing.T) {
	rk := newFakeRegistro()
	rk.sales = []entity.Sale{{ID: 7, CustomerName: "Ana"}, {ID: 8, CustomerName: "Luz"}}
	del := newBloqueoDeleter()
	v := NewSalesHistoryView(rk, del, zerolog.Nop())
	v.Refresh(context.Background(), 0)

	done := make(chan error)
	go func() { done <- v.Delete(context.Background(), 7, true) }()
	<-del.started
	del.release <- &domain.ServerError{Op: "DELETE /ventas/7", StatusCode: 500, Message: "no se pudo revertir el stock"}

	var err error
	select {
	case err = <-done:
	case <-time.After(time.Second):
		t.Fatal("la eliminación no terminó")
	}
	var se *domain.ServerError
	require.True(t, errors.As(err, &se))

	out := v.LastOutcome()
	require.NotNil(t, out)
	assert.False(t, out.OK)
	assert.Equal(t, "no se pudo revertir el stock", out.Message)

	assert.True(t, v.Row(7).Enabled)
	assert.True(t, v.Row(8).Enabled)
	assert.Len(t, v.Snapshot().Data, 2, "la venta sigue en el historial")
}
