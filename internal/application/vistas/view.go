// Package vistas contiene el ciclo de vida de las vistas de datos del panel
// (inventario, historial de ventas, resumen financiero): cada una lee una proyección
// del servidor de registros y se vuelve a sincronizar cuando cambia la época de refresco.
//
// Las vistas no se conocen entre sí ni comparten locks: el fallo de una no afecta a las demás.
package vistas

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/refresh"
	"github.com/jhoicas/panel-catalogos/internal/domain"
)

// State estado de una vista: cargando → listo | error.
type State string

const (
	StateLoading State = "cargando"
	StateReady   State = "listo"
	StateFailed  State = "error"
)

// FetchFunc lee la proyección completa desde el servidor.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot estado observable de una vista.
type Snapshot[T any] struct {
	State State
	Data  T // solo significativo en StateReady
	// Empty: lista sin elementos. Se muestra como "sin datos", no como error.
	Empty     bool
	Message   string // motivo del fallo en StateFailed
	Err       error  // error original en StateFailed
	Epoch     uint64 // época con la que se inició la lectura aplicada
	UpdatedAt time.Time
}

// Options configuración de una vista.
type Options[T any] struct {
	Name        string
	Fetch       FetchFunc[T]
	IsEmpty     func(T) bool // nil = nunca vacía
	FailMessage string       // prefijo del mensaje de error, ej: "Fallo al cargar el inventario"
	Log         zerolog.Logger
}

// View vista genérica con guarda de respuestas obsoletas: cada lectura lleva un número
// de secuencia y solo se aplica el resultado de la última lectura iniciada.
type View[T any] struct {
	name        string
	fetch       FetchFunc[T]
	isEmpty     func(T) bool
	failMessage string
	log         zerolog.Logger

	mu      sync.RWMutex
	seq     uint64 // última secuencia emitida
	snap    Snapshot[T]
	mounted bool

	wg sync.WaitGroup
}

// New construye la vista en estado cargando.
func New[T any](opts Options[T]) *View[T] {
	return &View[T]{
		name:        opts.Name,
		fetch:       opts.Fetch,
		isEmpty:     opts.IsEmpty,
		failMessage: opts.FailMessage,
		log:         opts.Log.With().Str("vista", opts.Name).Logger(),
		snap:        Snapshot[T]{State: StateLoading},
	}
}

// Name nombre de la vista.
func (v *View[T]) Name() string { return v.name }

// Snapshot copia del estado actual.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snap
}

// Refresh inicia una lectura estampada con la época dada y espera su resultado.
// Devuelve false si el resultado quedó obsoleto (otra lectura se inició después) y se descartó.
func (v *View[T]) Refresh(ctx context.Context, epoch uint64) bool {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.snap = Snapshot[T]{State: StateLoading, Epoch: epoch}
	v.mu.Unlock()

	data, err := v.fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.seq {
		v.log.Debug().Uint64("secuencia", seq).Uint64("vigente", v.seq).Msg("respuesta obsoleta descartada")
		return false
	}
	if err != nil && ctx.Err() != nil {
		// apagado o sesión cerrada: no es un fallo que mostrar
		return false
	}

	now := time.Now()
	if err != nil {
		msg := domain.UserMessage(err)
		if v.failMessage != "" {
			msg = v.failMessage + ": " + msg
		}
		v.log.Warn().Err(err).Uint64("epoca", epoch).Msg("lectura fallida")
		v.snap = Snapshot[T]{State: StateFailed, Message: msg, Err: err, Epoch: epoch, UpdatedAt: now}
		return true
	}

	empty := v.isEmpty != nil && v.isEmpty(data)
	v.snap = Snapshot[T]{State: StateReady, Data: data, Empty: empty, Epoch: epoch, UpdatedAt: now}
	return true
}

// Watch monta la vista: lee al inicio con la época vigente y vuelve a leer en cada cambio
// de época hasta que ctx se cancela. Las lecturas corren en paralelo; una lectura en curso
// no se cancela al llegar una época nueva, la guarda de secuencia decide qué se aplica.
func (v *View[T]) Watch(ctx context.Context, obs refresh.Observer) {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.mu.Unlock()

	ch, cancel := obs.Subscribe()
	defer cancel()

	last := obs.Current()
	v.spawn(ctx, last)
	for {
		select {
		case <-ctx.Done():
			v.wg.Wait()
			return
		case <-ch:
			cur := obs.Current()
			if cur == last {
				continue
			}
			last = cur
			v.spawn(ctx, cur)
		}
	}
}

func (v *View[T]) spawn(ctx context.Context, epoch uint64) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		v.Refresh(ctx, epoch)
	}()
}

// IsEmptySlice predicado de vacío para vistas de listas.
func IsEmptySlice[E any](s []E) bool { return len(s) == 0 }
