package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

const fallbackShell = `<!doctype html><html><head><meta charset="utf-8"><title>Picture Smile Studio</title></head><body><div id="root"></div></body></html>`

// PageHandler serves the single-page app shell for every page route; the
// browser bundle renders the page itself.
type PageHandler struct {
	index string
}

func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{index: filepath.Join(staticDir, "index.html")}
}

func (h *PageHandler) Shell(c *fiber.Ctx) error {
	if _, err := os.Stat(h.index); err != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).SendString(fallbackShell)
	}
	return c.SendFile(h.index)
}
