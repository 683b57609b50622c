package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/session"
	"github.com/savinduamalka/agni-storefront/internal/domain/entity"
)

// LocalUser key de Locals para el usuario de la sesión.
const LocalUser = "user"

// RequireSession corta con 401 si no hay sesión iniciada y deja el usuario en c.Locals.
// El usuario viene del decode local del token; el backend sigue siendo quien autoriza.
func RequireSession(sess *session.Session, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sess.User()
		if user == nil || !sess.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SIGN_IN_REQUIRED", Message: message})
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// GetUser devuelve el usuario cargado por RequireSession (nil si no pasó por él).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}
