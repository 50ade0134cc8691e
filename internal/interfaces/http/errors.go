package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/panel"
	"github.com/jhoicas/panel-catalogos/internal/domain"
)

// writeError traduce un error del panel a status HTTP + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: domain.UserMessage(err)})
}

func errorStatus(err error) (int, string) {
	var (
		ve *domain.ValidationError
		se *domain.ServerError
		te *domain.TransportError
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusUnprocessableEntity, "VALIDATION"
	case errors.Is(err, domain.ErrBusy):
		return fiber.StatusConflict, "BUSY"
	case errors.Is(err, domain.ErrConfirmationRequired):
		return fiber.StatusPreconditionRequired, "CONFIRMATION_REQUIRED"
	case errors.Is(err, domain.ErrInvalidLine):
		return fiber.StatusBadRequest, "INVALID_LINE"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, panel.ErrNotReady):
		return fiber.StatusServiceUnavailable, "NOT_READY"
	case errors.As(err, &se):
		// 4xx del servidor de registros es culpa de la petición: se propaga tal cual
		if se.StatusCode >= 400 && se.StatusCode < 500 {
			return se.StatusCode, "SERVER"
		}
		return fiber.StatusBadGateway, "SERVER"
	case errors.As(err, &te):
		return fiber.StatusBadGateway, "TRANSPORT"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}
