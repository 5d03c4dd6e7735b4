package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/service"
	"github.com/picturesmile/studio-api/internal/transfer"
	"go.uber.org/zap"
)

type MediaHandler struct {
	s   service.MediaService
	log *zap.Logger
}

func NewMediaHandler(service service.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{s: service, log: log}
}

func (h *MediaHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.s.ListAdmin(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(d)
}

func (h *MediaHandler) CreateItem(c *fiber.Ctx) error {
	kind, ok := paramKind(c)
	if !ok || kind == models.KindCollection {
		return badRequest(c, "Unknown media type")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Unable to parse form")
	}

	var req transfer.CreateMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse form")
	}
	if err := transfer.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	in := &service.NewMediaItem{
		Title:    req.Title,
		Category: models.Category(req.Category),
		URL:      req.URL,
	}
	if req.CollectionID != "" {
		id := uuid.MustParse(req.CollectionID)
		in.CollectionID = &id
	}
	if req.Duration != "" {
		d, err := strconv.ParseFloat(req.Duration, 64)
		if err != nil {
			return badRequest(c, "duration must be a number")
		}
		in.DurationSeconds = &d
	}
	if req.PageCount != "" {
		n, err := strconv.Atoi(req.PageCount)
		if err != nil {
			return badRequest(c, "page_count must be a whole number")
		}
		in.PageCount = &n
	}

	if in.File, err = formUpload(form, "file"); err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}
	if in.Thumbnail, err = formUpload(form, "thumbnail"); err != nil {
		return badRequest(c, "Unable to read thumbnail")
	}

	item, err := h.s.AddItem(c.Context(), kind, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"kind": kind,
		"item": item,
	})
}

func (h *MediaHandler) BulkCreate(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Unable to parse form")
	}

	var req transfer.BulkUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse form")
	}
	if err := transfer.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return badRequest(c, "No files selected")
	}

	files := make([]*service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			return badRequest(c, "Unable to read uploaded file "+fh.Filename)
		}
		files = append(files, f)
	}

	kind := models.KindImage
	if req.Kind != "" {
		k, ok := models.ParseMediaKind(req.Kind)
		if !ok || k == models.KindCollection {
			return badRequest(c, "Unknown media type")
		}
		kind = k
	}

	result, err := h.s.BulkAdd(c.Context(), &service.BulkRequest{
		Kind:           kind,
		Category:       models.Category(req.Category),
		TitlePrefix:    req.TitlePrefix,
		CollectionName: req.CollectionName,
		Files:          files,
	}, func(done, total int) {
		h.log.Debug("bulk upload progress", zap.Int("done", done), zap.Int("total", total))
	})
	if err != nil {
		return errorResponse(c, err)
	}

	status := fiber.StatusCreated
	if result.Err() != nil {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(result)
}

func (h *MediaHandler) DeleteItem(c *fiber.Ctx) error {
	kind, ok := paramKind(c)
	if !ok {
		return badRequest(c, "Unknown media type")
	}
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid id")
	}

	result, err := h.s.Delete(c.Context(), kind, id, c.QueryBool("confirm", false))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
