package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/service"
)

type GalleryHandler struct {
	s service.GalleryService
}

func NewGalleryHandler(service service.GalleryService) *GalleryHandler {
	return &GalleryHandler{s: service}
}

// GetGallery returns the merged gallery narrowed by ?type= and ?category=.
// Counts always describe the unfiltered list.
func (h *GalleryHandler) GetGallery(c *fiber.Ctx) error {
	media, err := service.ParseMediaFilter(c.Query("type"))
	if err != nil {
		return errorResponse(c, err)
	}
	category, err := service.ParseCategoryFilter(c.Query("category"))
	if err != nil {
		return errorResponse(c, err)
	}

	view, err := h.s.Load(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"items":    service.Filter(view.Items, media, category),
		"counts":   view.Counts,
		"warnings": view.Warnings,
		"fallback": view.Fallback,
		"filter": fiber.Map{
			"type":     media,
			"category": category,
		},
	})
}

func (h *GalleryHandler) GetCollection(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid collection id")
	}
	view, err := h.s.OpenCollection(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *GalleryHandler) GetVideo(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid video id")
	}
	item, err := h.s.Video(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *GalleryHandler) GetAlbum(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid album id")
	}
	item, err := h.s.Album(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

// MarkBroken serves the placeholder for an item to every visitor. Clients
// that only fail to load an item locally use its fallback_url instead.
func (h *GalleryHandler) MarkBroken(c *fiber.Ctx) error {
	return h.flag(c, h.s.MarkBroken)
}

func (h *GalleryHandler) ClearBroken(c *fiber.Ctx) error {
	return h.flag(c, h.s.ClearBroken)
}

func (h *GalleryHandler) flag(c *fiber.Ctx, apply func(context.Context, models.MediaKind, uuid.UUID) error) error {
	kind, ok := paramKind(c)
	if !ok {
		return badRequest(c, "Unknown media type")
	}
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid id")
	}
	if err := apply(c.Context(), kind, id); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
