package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/domain"
)

// writeError traduce errores de dominio y del backend a dto.ErrorResponse.
// El mensaje es siempre el texto apto para el comprador.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: domain.UserMessage(err)})
}

func classify(err error) (int, string) {
	var apiErr *domain.APIError
	var tErr *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized, "INVALID_TOKEN"
	case errors.Is(err, domain.ErrSignInRequired):
		return fiber.StatusUnauthorized, "SIGN_IN_REQUIRED"
	case errors.Is(err, domain.ErrNoPendingEmail):
		return fiber.StatusConflict, "NO_PENDING_EMAIL"
	case errors.As(err, &apiErr):
		code := apiErr.Code
		if code == "" {
			code = "BACKEND_ERROR"
		}
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status, code
		}
		return fiber.StatusBadGateway, code
	case errors.As(err, &tErr):
		return fiber.StatusBadGateway, "BACKEND_UNREACHABLE"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
}
