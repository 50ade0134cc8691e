package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/panel"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions *panel.Registry
	Reports  panel.ReportGenerator
	Title    string
	Log      zerolog.Logger
}

// Router registra las rutas de la API del panel.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/panel", SessionMiddleware(deps.Sessions))

	panelHandler := NewPanelHandler(deps.Reports, deps.Title, deps.Log)
	api.Get("/", panelHandler.Get)
	api.Post("/recargar", panelHandler.Reload)
	api.Get("/inventario", panelHandler.Inventory)
	api.Get("/ventas", panelHandler.Sales)
	api.Get("/resumen", panelHandler.Summary)
	api.Get("/catalogo", panelHandler.Catalog)
	api.Get("/reporte.pdf", panelHandler.Report)

	// Venta en edición
	ventaHandler := NewVentaHandler()
	api.Get("/venta", ventaHandler.GetDraft)
	api.Put("/venta", ventaHandler.UpdateHeader)
	api.Post("/venta/lineas", ventaHandler.AddLine)
	api.Put("/venta/lineas/:idx", ventaHandler.UpdateLine)
	api.Delete("/venta/lineas/:idx", ventaHandler.RemoveLine)
	api.Post("/venta/confirmar", ventaHandler.Submit)

	// Historial
	api.Delete("/ventas/:id", ventaHandler.DeleteSale)

	productoHandler := NewProductoHandler()
	api.Post("/productos", productoHandler.Create)
}
