package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/picturesmile/studio-api/configs"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/transfer"
	"go.uber.org/zap"
)

const (
	whatsAppBase   = "https://wa.me/"
	mapsSearchBase = "https://www.google.com/maps/search/?api=1&query="
	bookingMessage = "Hi! I'm interested in booking your %s service. Could you please provide more details?"
)

type ContactService interface {
	Catalog(ctx context.Context) *Catalog
	WhatsAppLink(service string) string
	DirectionsLink() string
	Submit(ctx context.Context, req *transfer.ContactRequest) error
}

type contactService struct {
	cfg     config.Contact
	repos   Repositories
	timeout time.Duration
	log     *zap.Logger
}

func NewContactService(cfg config.Contact, repos Repositories, timeout time.Duration, log *zap.Logger) ContactService {
	return &contactService{cfg: cfg, repos: repos, timeout: timeout, log: log}
}

func (s *contactService) Catalog(ctx context.Context) *Catalog {
	c := &Catalog{Services: offerings, Offers: []*models.DiscountSetting{}}

	settings, err := s.repos.Discounts.List(ctx)
	if err != nil {
		s.log.Warn("failed to load discounts, using defaults", zap.Error(err))
		c.Offers = defaultOffers()
		c.Fallback = true
		return c
	}
	for _, d := range settings {
		if d.Active {
			c.Offers = append(c.Offers, d)
		}
	}
	return c
}

func (s *contactService) WhatsAppLink(service string) string {
	link := whatsAppBase + s.cfg.WhatsAppNumber
	if service = strings.TrimSpace(service); service != "" {
		link += "?text=" + encodeURIComponent(fmt.Sprintf(bookingMessage, service))
	}
	return link
}

func (s *contactService) DirectionsLink() string {
	return mapsSearchBase + encodeURIComponent(s.cfg.StudioAddress)
}

// Submit relays the contact form once; there is no retry.
func (s *contactService) Submit(ctx context.Context, req *transfer.ContactRequest) error {
	if err := transfer.Validate(req); err != nil {
		return invalid("contact", "%s", err.Error())
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("name", strings.TrimSpace(req.Name))
	args.Set("phone", strings.TrimSpace(req.Phone))
	args.Set("email", strings.TrimSpace(req.Email))
	args.Set("comments", strings.TrimSpace(req.Comments))

	agent := fiber.Post(s.cfg.RelayURL)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Form(args)
	if s.timeout > 0 {
		agent.Timeout(s.timeout)
	}
	if err := agent.Parse(); err != nil {
		return &RelayError{Err: err}
	}

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		s.log.Error("contact relay failed", zap.Errors("errors", errs))
		return &RelayError{Err: errs[0]}
	}
	if code < 200 || code >= 300 {
		s.log.Error("contact relay rejected message", zap.Int("status", code))
		return &RelayError{StatusCode: code}
	}

	s.log.Info("contact message relayed", zap.String("email", req.Email))
	return nil
}
