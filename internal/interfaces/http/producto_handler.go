package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
)

// ProductoHandler alta de productos.
type ProductoHandler struct{}

// NewProductoHandler construye el handler.
func NewProductoHandler() *ProductoHandler { return &ProductoHandler{} }

// Create godoc
// @Summary      Agregar producto con su stock inicial
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AgregarProductoRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductoAgregadoResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/panel/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.AgregarProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s := GetSession(c)
	p, msg, err := s.Products.Execute(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductoAgregadoResponse{
		Mensaje:  msg,
		Producto: toProductoPanel(*p, s.Inventory.LowStock(*p)),
		Epoca:    s.Epoch.Current(),
	})
}
