package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/picturesmile/studio-api/internal/service"
	"github.com/picturesmile/studio-api/internal/transfer"
)

type ContactHandler struct {
	s service.ContactService
}

func NewContactHandler(service service.ContactService) *ContactHandler {
	return &ContactHandler{s: service}
}

func (h *ContactHandler) Services(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.s.Catalog(c.Context()))
}

func (h *ContactHandler) WhatsApp(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": h.s.WhatsAppLink(c.Query("service")),
	})
}

func (h *ContactHandler) Directions(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": h.s.DirectionsLink(),
	})
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req transfer.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.s.Submit(c.Context(), &req); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Thank you! Your message has been sent successfully.",
	})
}
