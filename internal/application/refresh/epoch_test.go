package refresh

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpoch_ArrancaEnCeroYAvanzaDeAUno(t *testing.T) {
	e := NewEpoch()
	assert.Equal(t, uint64(0), e.Current())
	assert.Equal(t, uint64(1), e.Advance())
	assert.Equal(t, uint64(2), e.Advance())
	assert.Equal(t, uint64(2), e.Current())
}

func TestEpoch_NotificaATodosLosSuscriptores(t *testing.T) {
	e := NewEpoch()
	a, cancelA := e.Subscribe()
	b, cancelB := e.Subscribe()
	defer cancelA()
	defer cancelB()

	e.Advance()

	for _, ch := range []<-chan struct{}{a, b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("el suscriptor no recibió aviso")
		}
	}
}

func TestEpoch_AvisosSeFunden(t *testing.T) {
	e := NewEpoch()
	ch, cancel := e.Subscribe()
	defer cancel()

	e.Advance()
	e.Advance()
	e.Advance()

	<-ch
	select {
	case <-ch:
		t.Fatal("tres avances sin leer deben producir un solo aviso")
	default:
	}
	assert.Equal(t, uint64(3), e.Current(), "el observador lee el valor más reciente")
}

func TestEpoch_CancelarSuscripcion(t *testing.T) {
	e := NewEpoch()
	ch, cancel := e.Subscribe()
	require.Equal(t, 1, e.Subscribers())

	cancel()
	cancel() // idempotente
	assert.Equal(t, 0, e.Subscribers())

	e.Advance()
	select {
	case <-ch:
		t.Fatal("no debe notificarse a un suscriptor cancelado")
	default:
	}
}

func TestEpoch_AvancesConcurrentes(t *testing.T) {
	e := NewEpoch()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Advance()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), e.Current())
}
