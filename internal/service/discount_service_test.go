package service

import (
	"context"
	"testing"

	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClampDiscount(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{15, 15},
		{50, 50},
		{51, 50},
		{999, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampDiscount(tt.in), "ClampDiscount(%d)", tt.in)
	}
}

func TestUpdateDiscountNeverStoresOutOfRange(t *testing.T) {
	f := newFixture()
	f.discounts.rows = []*models.DiscountSetting{{Key: "weddingPackage", Title: "Wedding Package Deal", DiscountPercent: 20, Active: true}}
	svc := NewDiscountService(f.repos, zap.NewNop())

	for _, percent := range []int{-5, 0, 20, 50, 75} {
		got, err := svc.UpdateDiscount(context.Background(), "weddingPackage", &DiscountPatch{
			Title:           "  Wedding Package Deal ",
			Description:     "Book Wedding + Pre-Wedding together",
			DiscountPercent: percent,
			Active:          true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Wedding Package Deal", got.Title)
		assert.GreaterOrEqual(t, got.DiscountPercent, models.MinDiscountPercent)
		assert.LessOrEqual(t, got.DiscountPercent, models.MaxDiscountPercent)
	}
	require.Len(t, f.discounts.updates, 5)
	assert.Equal(t, 0, f.discounts.updates[0].DiscountPercent)
	assert.Equal(t, 50, f.discounts.updates[4].DiscountPercent)
}

func TestUpdateDiscountRequiresTitle(t *testing.T) {
	f := newFixture()
	svc := NewDiscountService(f.repos, zap.NewNop())

	_, err := svc.UpdateDiscount(context.Background(), "earlyBird", &DiscountPatch{Title: "  ", DiscountPercent: 10})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	assert.Empty(t, f.discounts.updates)
}

func TestUpdateDiscountReturnsStoredRow(t *testing.T) {
	f := newFixture()
	f.discounts.rows = []*models.DiscountSetting{{Key: "earlyBird", Title: "Early Bird Discount", DiscountPercent: 15, Active: true}}
	svc := NewDiscountService(f.repos, zap.NewNop())

	got, err := svc.UpdateDiscount(context.Background(), "earlyBird", &DiscountPatch{
		Title:           "Early Bird",
		Description:     " Book 6 months ahead ",
		DiscountPercent: 60,
		Active:          false,
	})
	require.NoError(t, err)
	assert.Same(t, f.discounts.rows[0], got)
	assert.Equal(t, "earlyBird", got.Key)
	assert.Equal(t, "Book 6 months ahead", got.Description)
	assert.Equal(t, 50, got.DiscountPercent)
	assert.False(t, got.Active)
}

func TestUpdateDiscountUnknownKey(t *testing.T) {
	f := newFixture()
	svc := NewDiscountService(f.repos, zap.NewNop())

	_, err := svc.UpdateDiscount(context.Background(), "missing", &DiscountPatch{Title: "X", DiscountPercent: 10})
	assert.True(t, repository.IsKind(err, repository.ErrNotFound))
}
