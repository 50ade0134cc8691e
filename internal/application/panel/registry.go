package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrClosed el registro ya no acepta sesiones (apagado en curso).
var ErrClosed = errors.New("registro de sesiones cerrado")

// Registry una sesión por pestaña del navegador, identificada por uuid.
type Registry struct {
	deps Deps
	idle time.Duration
	log  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewRegistry crea el registro. Las sesiones viven bajo ctx; idle <= 0 desactiva la expiración.
func NewRegistry(ctx context.Context, deps Deps, idle time.Duration) *Registry {
	ctx, cancel := context.WithCancel(ctx)
	return &Registry{
		deps:     deps,
		idle:     idle,
		log:      deps.Log.With().Str("componente", "sesiones").Logger(),
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Acquire devuelve la sesión con ese id o crea una nueva (con id propio) si no existe
// o el id no es válido. created indica si la sesión es nueva.
func (r *Registry) Acquire(id string) (s *Session, created bool, err error) {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, false, ErrClosed
	}

	if _, perr := uuid.Parse(id); perr == nil {
		if existing, ok := r.sessions[id]; ok {
			existing.Touch(now)
			return existing, false, nil
		}
	}

	s = NewSession(uuid.NewString(), r.deps)
	s.Start(r.ctx)
	r.sessions[s.ID] = s
	r.log.Info().Str("sesion", s.ID).Int("activas", len(r.sessions)).Msg("sesión creada")
	return s, true, nil
}

// Get devuelve una sesión existente.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Len cantidad de sesiones activas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict cierra las sesiones sin actividad desde antes de now - idle.
func (r *Registry) Evict(now time.Time) int {
	if r.idle <= 0 {
		return 0
	}
	var stale []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if now.Sub(s.LastSeen()) > r.idle {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
		r.log.Info().Str("sesion", s.ID).Msg("sesión expirada")
	}
	return len(stale)
}

// Run expira sesiones periódicamente hasta que ctx se cancela.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r.Evict(now)
		}
	}
}

// Close desmonta todas las sesiones. Posteriores Acquire fallan.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = map[string]*Session{}
	r.mu.Unlock()

	r.cancel()
	for _, s := range all {
		s.Close()
	}
	r.log.Info().Int("sesiones", len(all)).Msg("sesiones cerradas")
}
