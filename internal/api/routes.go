package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/picturesmile/studio-api/internal/api/handlers"
	"github.com/picturesmile/studio-api/internal/api/middleware"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Gallery  *handlers.GalleryHandler
	Media    *handlers.MediaHandler
	Discount *handlers.DiscountHandler
	Contact  *handlers.ContactHandler
	Page     *handlers.PageHandler
}

type Guards struct {
	Auth         *middleware.AuthMiddleware
	LoginLimit   fiber.Handler
	ContactLimit fiber.Handler
}

func passThrough(c *fiber.Ctx) error { return c.Next() }

func orPass(h fiber.Handler) fiber.Handler {
	if h == nil {
		return passThrough
	}
	return h
}

// ErrorHandler renders errors that escape a handler as {"error": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, msg := handlers.ErrorStatus(err)
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func Register(app *fiber.App, h Handlers, g Guards) {
	api := app.Group("/api")

	api.Post("/login", orPass(g.LoginLimit), h.Auth.Login)
	api.Get("/session", h.Auth.Session)

	api.Get("/gallery", h.Gallery.GetGallery)
	api.Get("/gallery/collections/:id", h.Gallery.GetCollection)
	api.Get("/videos/:id", h.Gallery.GetVideo)
	api.Get("/albums/:id", h.Gallery.GetAlbum)

	api.Get("/services", h.Contact.Services)
	api.Get("/links/whatsapp", h.Contact.WhatsApp)
	api.Get("/links/directions", h.Contact.Directions)
	api.Post("/contact", orPass(g.ContactLimit), h.Contact.Submit)

	admin := api.Group("/admin", recover.New(), g.Auth.APIGate())
	admin.Get("/dashboard", h.Media.Dashboard)
	admin.Post("/media/bulk", h.Media.BulkCreate)
	admin.Post("/media/:kind", h.Media.CreateItem)
	admin.Delete("/media/:kind/:id", h.Media.DeleteItem)
	admin.Post("/media/:kind/:id/broken", h.Gallery.MarkBroken)
	admin.Delete("/media/:kind/:id/broken", h.Gallery.ClearBroken)
	admin.Get("/discounts", h.Discount.ListDiscounts)
	admin.Put("/discounts/:key", h.Discount.UpdateDiscount)
	admin.Post("/logout", h.Auth.Logout)

	for _, path := range []string{"/", "/about", "/gallery", "/services", "/booking", "/contact", "/login", "/video/:id", "/album/:id"} {
		app.Get(path, h.Page.Shell)
	}
	app.Get("/admin", g.Auth.PageGate(), h.Page.Shell)
}
