package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
)

// VentaHandler formulario de venta y eliminación de ventas del historial.
type VentaHandler struct{}

// NewVentaHandler construye el handler.
func NewVentaHandler() *VentaHandler { return &VentaHandler{} }

// GetDraft godoc
// @Summary      Venta en edición
// @Tags         venta
// @Produce      json
// @Success      200  {object}  dto.BorradorResponse
// @Router       /api/panel/venta [get]
func (h *VentaHandler) GetDraft(c *fiber.Ctx) error {
	return c.JSON(toBorrador(GetSession(c).Composer.State()))
}

// UpdateHeader godoc
// @Summary      Cliente y estado de la venta en edición
// @Tags         venta
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CabeceraVentaRequest  true  "Cabecera"
// @Success      200   {object}  dto.BorradorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/panel/venta [put]
func (h *VentaHandler) UpdateHeader(c *fiber.Ctx) error {
	var in dto.CabeceraVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	composer := GetSession(c).Composer
	if in.Estado != nil {
		if err := composer.SetStatus(entity.SaleStatus(*in.Estado)); err != nil {
			return writeError(c, err)
		}
	}
	if in.ClienteNombre != nil {
		composer.SetCustomer(*in.ClienteNombre)
	}
	return c.JSON(toBorrador(composer.State()))
}

// AddLine godoc
// @Summary      Agregar una línea vacía (cantidad 1, precio 0)
// @Tags         venta
// @Produce      json
// @Success      201  {object}  dto.LineaCreadaResponse
// @Router       /api/panel/venta/lineas [post]
func (h *VentaHandler) AddLine(c *fiber.Ctx) error {
	composer := GetSession(c).Composer
	idx := composer.AddLine()
	return c.Status(fiber.StatusCreated).JSON(dto.LineaCreadaResponse{Indice: idx, Venta: toBorrador(composer.State())})
}

// UpdateLine godoc
// @Summary      Editar producto, cantidad o precio de una línea
// @Description  Elegir un producto del catálogo reemplaza el precio por su precio sugerido.
// @Tags         venta
// @Accept       json
// @Produce      json
// @Param        idx   path  int                    true  "Índice de la línea"
// @Param        body  body  dto.LineaVentaRequest  true  "Valores a cambiar"
// @Success      200   {object}  dto.BorradorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/panel/venta/lineas/{idx} [put]
func (h *VentaHandler) UpdateLine(c *fiber.Ctx) error {
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LINE", Message: "índice de línea inválido"})
	}
	var in dto.LineaVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	composer := GetSession(c).Composer
	// el producto primero: autocompleta el precio, que luego puede sobrescribirse
	if in.ProductoID != nil {
		if err := composer.SetLineProduct(idx, *in.ProductoID); err != nil {
			return writeError(c, err)
		}
	}
	if in.Cantidad != nil {
		if err := composer.SetLineQuantity(idx, *in.Cantidad); err != nil {
			return writeError(c, err)
		}
	}
	if in.PrecioUnitario != nil {
		if err := composer.SetLineUnitPrice(idx, *in.PrecioUnitario); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(toBorrador(composer.State()))
}

// RemoveLine godoc
// @Summary      Quitar una línea
// @Tags         venta
// @Produce      json
// @Param        idx  path  int  true  "Índice de la línea"
// @Success      200  {object}  dto.BorradorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/panel/venta/lineas/{idx} [delete]
func (h *VentaHandler) RemoveLine(c *fiber.Ctx) error {
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_LINE", Message: "índice de línea inválido"})
	}
	composer := GetSession(c).Composer
	if err := composer.RemoveLine(idx); err != nil {
		return writeError(c, err)
	}
	return c.JSON(toBorrador(composer.State()))
}

// Submit godoc
// @Summary      Registrar la venta
// @Description  Solo se envían las líneas con producto y cantidad > 0. El servidor descuenta stock.
// @Tags         venta
// @Produce      json
// @Success      201  {object}  dto.VentaRegistradaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/panel/venta/confirmar [post]
func (h *VentaHandler) Submit(c *fiber.Ctx) error {
	s := GetSession(c)
	sale, err := s.Composer.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VentaRegistradaResponse{
		Mensaje: s.Composer.State().Message,
		Venta:   toVentaPanel(*sale, s.Sales.Row(sale.ID)),
		Epoca:   s.Epoch.Current(),
	})
}

// DeleteSale godoc
// @Summary      Eliminar una venta y revertir su stock
// @Description  Requiere confirmar=true. Mientras una venta se elimina, las demás filas quedan bloqueadas.
// @Tags         venta
// @Produce      json
// @Param        id         path   int   true  "ID de la venta"
// @Param        confirmar  query  bool  true  "Confirmación explícita"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/panel/ventas/{id} [delete]
func (h *VentaHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de venta inválido"})
	}
	s := GetSession(c)
	if err := s.Sales.Delete(c.Context(), id, c.QueryBool("confirmar", false)); err != nil {
		return writeError(c, err)
	}
	msg := "venta eliminada y stock revertido"
	if o := s.Sales.LastOutcome(); o != nil {
		msg = o.Message
	}
	return c.JSON(dto.MensajeResponse{Mensaje: msg, Epoca: s.Epoch.Current()})
}
