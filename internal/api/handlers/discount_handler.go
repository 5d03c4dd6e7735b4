package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/picturesmile/studio-api/internal/service"
	"github.com/picturesmile/studio-api/internal/transfer"
)

type DiscountHandler struct {
	s service.DiscountService
}

func NewDiscountHandler(service service.DiscountService) *DiscountHandler {
	return &DiscountHandler{s: service}
}

func (h *DiscountHandler) ListDiscounts(c *fiber.Ctx) error {
	settings, err := h.s.ListDiscounts(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

func (h *DiscountHandler) UpdateDiscount(c *fiber.Ctx) error {
	var req transfer.DiscountUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := transfer.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	setting, err := h.s.UpdateDiscount(c.Context(), c.Params("key"), &service.DiscountPatch{
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.Discount,
		Active:          req.Active,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(setting)
}
