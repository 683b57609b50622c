package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savinduamalka/agni-storefront/internal/application/dto"
	"github.com/savinduamalka/agni-storefront/internal/application/notify"
)

// NotificationHandler lista y descarta notificaciones.
type NotificationHandler struct {
	center *notify.Center
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// List godoc
// @Summary      Notificaciones vigentes
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  notify.Notice
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.center.List())
}

// Dismiss godoc
// @Summary      Descartar una notificación
// @Tags         notifications
// @Param        id  path  string  true  "id de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	if !h.center.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Notification not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
