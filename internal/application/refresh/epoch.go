// Package refresh contiene la época de refresco: el contador compartido que indica
// "algo cambió en el servidor, volver a leer".
//
// Contrato: entero, monótono, arranca en 0, +1 por cada mutación exitosa. Ningún
// observador debe interpretar su magnitud; solo importa que cambió.
package refresh

import (
	"sync"
	"sync/atomic"
)

// Advancer es el puerto que usan los componentes que mutan estado (alta de producto,
// registro y eliminación de ventas). No saben qué vistas existen.
type Advancer interface {
	Advance() uint64
}

// Observer es el lado de lectura que usan vistas y catálogo.
type Observer interface {
	Current() uint64
	Subscribe() (<-chan struct{}, func())
}

// Epoch implementa Advancer y Observer.
type Epoch struct {
	n atomic.Uint64

	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// NewEpoch crea una época en 0.
func NewEpoch() *Epoch {
	return &Epoch{subs: make(map[int]chan struct{})}
}

// Current devuelve el valor actual.
func (e *Epoch) Current() uint64 { return e.n.Load() }

// Advance incrementa en exactamente 1 y despierta a todos los suscriptores.
// El nuevo valor es visible antes de la notificación.
func (e *Epoch) Advance() uint64 {
	v := e.n.Add(1)
	e.mu.Lock()
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
			// ya hay un aviso pendiente; el observador leerá el valor más reciente
		}
	}
	e.mu.Unlock()
	return v
}

// Subscribe devuelve un canal de avisos con buffer 1 (varios Advance seguidos se
// funden en un aviso) y la función para cancelar la suscripción.
func (e *Epoch) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = ch
	e.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// Subscribers cantidad de observadores activos.
func (e *Epoch) Subscribers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
