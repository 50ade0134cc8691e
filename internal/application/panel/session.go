// Package panel arma la sesión de un operador: una época de refresco, el catálogo, el
// compositor de ventas, las tres vistas de datos y los casos de uso que mutan estado.
package panel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/ports"
	"github.com/jhoicas/panel-catalogos/internal/application/producto"
	"github.com/jhoicas/panel-catalogos/internal/application/refresh"
	"github.com/jhoicas/panel-catalogos/internal/application/venta"
	"github.com/jhoicas/panel-catalogos/internal/application/vistas"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// Deps dependencias compartidas por todas las sesiones.
type Deps struct {
	Registro          ports.RecordKeeper
	LowStockThreshold int
	Log               zerolog.Logger
}

// Session estado del panel para una pestaña del navegador.
type Session struct {
	ID string

	Epoch     *refresh.Epoch
	Catalog   *vistas.ProductCatalog
	Inventory *vistas.InventoryView
	Sales     *vistas.SalesHistoryView
	Summary   *vistas.FinancialSummaryView
	Composer  *venta.SaleComposer
	Deletion  *venta.SaleDeletion
	Products  *producto.AddProduct

	log               zerolog.Logger
	lowStockThreshold int
	lastSeen          atomic.Int64

	startOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewSession construye la sesión sin montar las vistas (ver Start).
func NewSession(id string, deps Deps) *Session {
	log := deps.Log.With().Str("sesion", id).Logger()
	epoch := refresh.NewEpoch()
	deletion := venta.NewSaleDeletion(deps.Registro, epoch, log.With().Str("componente", "eliminacion").Logger())
	catalog := vistas.NewProductCatalog(deps.Registro, epoch, log)

	s := &Session{
		ID:        id,
		Epoch:     epoch,
		Catalog:   catalog,
		Inventory: vistas.NewInventoryView(deps.Registro, deps.LowStockThreshold, log),
		Sales:     vistas.NewSalesHistoryView(deps.Registro, deletion, log),
		Summary:   vistas.NewFinancialSummaryView(deps.Registro, log),
		Composer:  venta.NewSaleComposer(catalog, deps.Registro, epoch, log.With().Str("componente", "venta").Logger()),
		Deletion:  deletion,
		Products:  producto.NewAddProduct(deps.Registro, epoch, log.With().Str("componente", "producto").Logger()),
		log:       log,

		lowStockThreshold: deps.LowStockThreshold,
	}
	s.Touch(time.Now())
	return s
}

// Start monta el catálogo y las vistas: cada uno lee al inicio y en cada cambio de época.
// Llamadas repetidas no tienen efecto.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		watchers := []func(context.Context, refresh.Observer){
			s.Catalog.Watch,
			s.Inventory.Watch,
			s.Sales.Watch,
			s.Summary.Watch,
		}
		for _, watch := range watchers {
			s.wg.Add(1)
			go func(watch func(context.Context, refresh.Observer)) {
				defer s.wg.Done()
				watch(ctx, s.Epoch)
			}(watch)
		}
		s.log.Debug().Msg("sesión montada")
	})
}

// Reload botón "Recargar datos": avanza la época sin mutar nada.
func (s *Session) Reload() uint64 {
	return s.Epoch.Advance()
}

// Close desmonta las vistas y espera a que terminen sus lecturas.
func (s *Session) Close() {
	s.startOnce.Do(func() {}) // una sesión nunca montada ya no puede montarse
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Touch registra actividad del operador.
func (s *Session) Touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

// LastSeen último momento de actividad.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

// Snapshot estado de todas las vistas del panel.
type Snapshot struct {
	Epoch     uint64
	Inventory vistas.Snapshot[[]entity.Product]
	Sales     vistas.Snapshot[[]entity.Sale]
	Summary   vistas.Snapshot[entity.FinancialSummary]
	Catalog   vistas.Snapshot[[]entity.Product]
	Composer  venta.State
	Deleting  int64
	Deletion  *vistas.DeleteOutcome
}

// Snapshot lee el estado actual de cada componente. Cada vista se lee por separado:
// el conjunto puede mezclar épocas mientras haya lecturas en curso.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Epoch:     s.Epoch.Current(),
		Inventory: s.Inventory.Snapshot(),
		Sales:     s.Sales.Snapshot(),
		Summary:   s.Summary.Snapshot(),
		Catalog:   s.Catalog.Snapshot(),
		Composer:  s.Composer.State(),
		Deleting:  s.Sales.Deleting(),
		Deletion:  s.Sales.LastOutcome(),
	}
}
