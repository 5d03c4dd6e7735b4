package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/picturesmile/studio-api/internal/models"
)

type DiscountRepository interface {
	List(ctx context.Context) ([]*models.DiscountSetting, error)
	GetByKey(ctx context.Context, key string) (*models.DiscountSetting, error)
	Update(ctx context.Context, key string, patch *models.DiscountSetting) error
}

type discountRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewDiscountRepository(db *sql.DB, timeout time.Duration) DiscountRepository {
	return &discountRepository{db: db, timeout: timeout}
}

func (r *discountRepository) List(ctx context.Context) ([]*models.DiscountSetting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT key, title, COALESCE(description, ''), discount, active
		FROM discount_settings
		ORDER BY key
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, Normalize(err, "loading discount settings")
	}
	defer rows.Close()

	settings := []*models.DiscountSetting{}
	for rows.Next() {
		var d models.DiscountSetting
		if err := rows.Scan(&d.Key, &d.Title, &d.Description, &d.DiscountPercent, &d.Active); err != nil {
			return nil, Normalize(err, "loading discount settings")
		}
		settings = append(settings, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, Normalize(err, "loading discount settings")
	}
	return settings, nil
}

func (r *discountRepository) GetByKey(ctx context.Context, key string) (*models.DiscountSetting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT key, title, COALESCE(description, ''), discount, active
		FROM discount_settings
		WHERE key = $1
	`
	var d models.DiscountSetting
	err := r.db.QueryRowContext(ctx, query, key).Scan(&d.Key, &d.Title, &d.Description, &d.DiscountPercent, &d.Active)
	if err != nil {
		return nil, Normalize(err, "loading discount setting")
	}
	return &d, nil
}

func (r *discountRepository) Update(ctx context.Context, key string, patch *models.DiscountSetting) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE discount_settings
		SET title = $1, description = $2, discount = $3, active = $4
		WHERE key = $5
	`
	res, err := r.db.ExecContext(ctx, query, patch.Title, patch.Description, patch.DiscountPercent, patch.Active, key)
	return checkAffected(res, err, "updating discount setting")
}
