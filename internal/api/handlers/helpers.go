package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/repository"
	"github.com/picturesmile/studio-api/internal/service"
)

// ErrorStatus maps service and repository errors to an HTTP status and the
// message shown to the user.
func ErrorStatus(err error) (int, string) {
	var ve *service.ValidationError
	var re *repository.RemoteError
	var relay *service.RelayError
	var fe *fiber.Error

	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Message
	case errors.Is(err, service.ErrConfirmationRequired):
		return fiber.StatusPreconditionRequired, "Please confirm the delete by repeating the request with confirm=true"
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid email or password"
	case errors.As(err, &relay):
		return fiber.StatusBadGateway, "Failed to send message. Please try again or contact us directly."
	case errors.As(err, &re):
		switch re.Kind {
		case repository.ErrNotFound:
			return fiber.StatusNotFound, re.Message
		case repository.ErrPermissionDenied:
			return fiber.StatusForbidden, re.Message
		case repository.ErrDuplicate:
			return fiber.StatusConflict, re.Message
		case repository.ErrTimeout:
			return fiber.StatusGatewayTimeout, re.Message
		default:
			return fiber.StatusBadGateway, re.Message
		}
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "The request timed out"
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, "An unexpected error occurred"
}

func errorResponse(c *fiber.Ctx, err error) error {
	status, msg := ErrorStatus(err)
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func paramID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func paramKind(c *fiber.Ctx) (models.MediaKind, bool) {
	return models.ParseMediaKind(c.Params("kind"))
}

func readUpload(fh *multipart.FileHeader) (*service.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &service.UploadFile{Name: fh.Filename, Data: data}, nil
}

// formUpload returns the first file posted under field, or nil.
func formUpload(form *multipart.Form, field string) (*service.UploadFile, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return readUpload(files[0])
}
