package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/panel"
)

// PanelHandler vistas de datos del panel y recarga manual.
type PanelHandler struct {
	reports panel.ReportGenerator
	title   string
	log     zerolog.Logger
}

// NewPanelHandler construye el handler.
func NewPanelHandler(reports panel.ReportGenerator, title string, log zerolog.Logger) *PanelHandler {
	return &PanelHandler{reports: reports, title: title, log: log}
}

// Get godoc
// @Summary      Estado completo del panel
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.PanelResponse
// @Router       /api/panel [get]
func (h *PanelHandler) Get(c *fiber.Ctx) error {
	return c.JSON(toPanel(GetSession(c)))
}

// Reload godoc
// @Summary      Recargar datos (avanza la época sin mutar nada)
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.MensajeResponse
// @Router       /api/panel/recargar [post]
func (h *PanelHandler) Reload(c *fiber.Ctx) error {
	epoch := GetSession(c).Reload()
	return c.JSON(dto.MensajeResponse{Mensaje: "recargando datos", Epoca: epoch})
}

// Inventory godoc
// @Summary      Vista de inventario
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.InventarioResponse
// @Router       /api/panel/inventario [get]
func (h *PanelHandler) Inventory(c *fiber.Ctx) error {
	return c.JSON(toInventario(GetSession(c)))
}

// Sales godoc
// @Summary      Historial de ventas
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.VentasResponse
// @Router       /api/panel/ventas [get]
func (h *PanelHandler) Sales(c *fiber.Ctx) error {
	return c.JSON(toVentas(GetSession(c)))
}

// Summary godoc
// @Summary      Resumen financiero
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.ResumenResponse
// @Router       /api/panel/resumen [get]
func (h *PanelHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(toResumen(GetSession(c)))
}

// Catalog godoc
// @Summary      Productos disponibles para vender (stock > 0)
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.CatalogoResponse
// @Router       /api/panel/catalogo [get]
func (h *PanelHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(toCatalogo(GetSession(c)))
}

// Report godoc
// @Summary      Exportar resumen e inventario a PDF
// @Tags         panel
// @Produce      application/pdf
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/panel/reporte.pdf [get]
func (h *PanelHandler) Report(c *fiber.Ctx) error {
	now := time.Now()
	r, err := GetSession(c).Report(h.title, now)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.reports.GenerateReport(c.Context(), r)
	if err != nil {
		h.log.Error().Err(err).Msg("generar reporte PDF")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el reporte"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte-%s.pdf"`, now.Format("20060102-1504")))
	return c.Send(pdf)
}
