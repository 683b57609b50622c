package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/engagement"
)

// EngagementHandler formularios de contacto y newsletter.
type EngagementHandler struct {
	svc *engagement.Service
}

// NewEngagementHandler construye el handler.
func NewEngagementHandler(svc *engagement.Service) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

// Contact godoc
// @Summary      Enviar formulario de contacto
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "name, email, message"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *EngagementHandler) Contact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.SubmitContact(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subscribe godoc
// @Summary      Suscribirse al newsletter
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/subscribe [post]
func (h *EngagementHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.EmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Subscribe(c.UserContext(), in.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
