package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	config "github.com/picturesmile/studio-api/configs"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testContact = config.Contact{
	WhatsAppNumber: "917682991297",
	StudioAddress:  "Picture Smile Studio, Kalla, Deogarh, Odisha, India 768110",
}

func TestWhatsAppLink(t *testing.T) {
	svc := NewContactService(testContact, Repositories{}, time.Second, zap.NewNop())

	assert.Equal(t,
		"https://wa.me/917682991297?text=Hi!%20I'm%20interested%20in%20booking%20your%20Wedding%20Photography%20service.%20Could%20you%20please%20provide%20more%20details%3F",
		svc.WhatsAppLink("Wedding Photography"),
	)
	assert.Equal(t, "https://wa.me/917682991297", svc.WhatsAppLink(""))
}

func TestDirectionsLink(t *testing.T) {
	svc := NewContactService(testContact, Repositories{}, time.Second, zap.NewNop())

	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=Picture%20Smile%20Studio%2C%20Kalla%2C%20Deogarh%2C%20Odisha%2C%20India%20768110",
		svc.DirectionsLink(),
	)
}

func TestCatalog(t *testing.T) {
	f := newFixture()
	f.discounts.rows = []*models.DiscountSetting{
		{Key: "earlyBird", Title: "Early Bird Discount", DiscountPercent: 10, Active: true},
		{Key: "weddingPackage", Title: "Wedding Package Deal", DiscountPercent: 20, Active: false},
	}
	svc := NewContactService(testContact, f.repos, time.Second, zap.NewNop())

	c := svc.Catalog(context.Background())
	assert.Len(t, c.Services, 8)
	require.Len(t, c.Offers, 1)
	assert.Equal(t, "earlyBird", c.Offers[0].Key)
	assert.False(t, c.Fallback)

	f.discounts.listErr = errBackend
	c = svc.Catalog(context.Background())
	assert.True(t, c.Fallback)
	require.Len(t, c.Offers, 2)
	assert.Equal(t, 20, c.Offers[0].DiscountPercent)
}

func relayServer(t *testing.T, status int) (*httptest.Server, <-chan url.Values, *atomic.Int32) {
	t.Helper()
	forms := make(chan url.Values, 1)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.NoError(t, r.ParseForm())
		forms <- r.PostForm
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, forms, &hits
}

var validContact = &transfer.ContactRequest{
	Name:     "Priya",
	Phone:    "+91 98765 43210",
	Email:    "priya@example.com",
	Comments: "Looking for a pre-wedding shoot in March.",
}

func TestSubmitRelaysForm(t *testing.T) {
	srv, forms, hits := relayServer(t, http.StatusOK)
	cfg := testContact
	cfg.RelayURL = srv.URL
	svc := NewContactService(cfg, Repositories{}, 5*time.Second, zap.NewNop())

	require.NoError(t, svc.Submit(context.Background(), validContact))
	assert.Equal(t, int32(1), hits.Load())

	form := <-forms
	assert.Equal(t, "Priya", form.Get("name"))
	assert.Equal(t, "+91 98765 43210", form.Get("phone"))
	assert.Equal(t, "priya@example.com", form.Get("email"))
	assert.Equal(t, "Looking for a pre-wedding shoot in March.", form.Get("comments"))
}

func TestSubmitRelayRejection(t *testing.T) {
	srv, _, hits := relayServer(t, http.StatusUnprocessableEntity)
	cfg := testContact
	cfg.RelayURL = srv.URL
	svc := NewContactService(cfg, Repositories{}, 5*time.Second, zap.NewNop())

	err := svc.Submit(context.Background(), validContact)
	var re *RelayError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnprocessableEntity, re.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSubmitValidatesBeforeSending(t *testing.T) {
	srv, _, hits := relayServer(t, http.StatusOK)
	cfg := testContact
	cfg.RelayURL = srv.URL
	svc := NewContactService(cfg, Repositories{}, 5*time.Second, zap.NewNop())

	for _, req := range []*transfer.ContactRequest{
		{Phone: "1", Email: "a@b.co"},
		{Name: "A", Email: "a@b.co"},
		{Name: "A", Phone: "1", Email: "not-an-email"},
	} {
		var ve *ValidationError
		assert.ErrorAs(t, svc.Submit(context.Background(), req), &ve)
	}
	assert.Zero(t, hits.Load())
}
