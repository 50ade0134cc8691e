package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panel-catalogos/internal/application/dto"
	"github.com/jhoicas/panel-catalogos/internal/application/panel"
)

// SessionCookie cookie con el id de la sesión del panel (una por pestaña).
const SessionCookie = "panel_sesion"

// LocalSession key de la sesión en c.Locals.
const LocalSession = "panel_session"

// SessionMiddleware resuelve la sesión del operador a partir de la cookie. Si no hay
// cookie o la sesión ya expiró crea una nueva y envía su cookie.
func SessionMiddleware(reg *panel.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, created, err := reg.Acquire(c.Cookies(SessionCookie))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "el panel se está apagando"})
		}
		if created {
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    s.ID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) *panel.Session {
	s, _ := c.Locals(LocalSession).(*panel.Session)
	return s
}
