package service

import (
	"context"
	"strings"

	"github.com/picturesmile/studio-api/internal/models"
	"go.uber.org/zap"
)

type DiscountPatch struct {
	Title           string
	Description     string
	DiscountPercent int
	Active          bool
}

type DiscountService interface {
	ListDiscounts(ctx context.Context) ([]*models.DiscountSetting, error)
	UpdateDiscount(ctx context.Context, key string, patch *DiscountPatch) (*models.DiscountSetting, error)
}

type discountService struct {
	repos Repositories
	log   *zap.Logger
}

func NewDiscountService(repos Repositories, log *zap.Logger) DiscountService {
	return &discountService{repos: repos, log: log}
}

// ClampDiscount keeps a percentage inside the range the site allows.
func ClampDiscount(percent int) int {
	if percent < models.MinDiscountPercent {
		return models.MinDiscountPercent
	}
	if percent > models.MaxDiscountPercent {
		return models.MaxDiscountPercent
	}
	return percent
}

func (s *discountService) ListDiscounts(ctx context.Context) ([]*models.DiscountSetting, error) {
	return s.repos.Discounts.List(ctx)
}

func (s *discountService) UpdateDiscount(ctx context.Context, key string, patch *DiscountPatch) (*models.DiscountSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, invalid("key", "Discount key is required.")
	}
	title := strings.TrimSpace(patch.Title)
	if title == "" {
		return nil, invalid("title", "Please enter a title.")
	}

	setting := &models.DiscountSetting{
		Key:             key,
		Title:           title,
		Description:     strings.TrimSpace(patch.Description),
		DiscountPercent: ClampDiscount(patch.DiscountPercent),
		Active:          patch.Active,
	}
	if setting.DiscountPercent != patch.DiscountPercent {
		s.log.Info("discount clamped",
			zap.String("key", key),
			zap.Int("requested", patch.DiscountPercent),
			zap.Int("stored", setting.DiscountPercent),
		)
	}

	if err := s.repos.Discounts.Update(ctx, key, setting); err != nil {
		return nil, err
	}
	return s.repos.Discounts.GetByKey(ctx, key)
}
