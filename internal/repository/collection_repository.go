package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
)

type CollectionRepository interface {
	List(ctx context.Context) ([]*models.Collection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	Insert(ctx context.Context, c *models.Collection) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type collectionRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewCollectionRepository(db *sql.DB, timeout time.Duration) CollectionRepository {
	return &collectionRepository{db: db, timeout: timeout}
}

func (r *collectionRepository) List(ctx context.Context) ([]*models.Collection, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, name, category, COALESCE(thumbnail_url, ''), created_at
		FROM gallery_collections
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, Normalize(err, "loading collections")
	}
	defer rows.Close()

	collections := []*models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.ThumbnailURL, &c.CreatedAt); err != nil {
			return nil, Normalize(err, "loading collections")
		}
		collections = append(collections, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, Normalize(err, "loading collections")
	}
	return collections, nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, name, category, COALESCE(thumbnail_url, ''), created_at
		FROM gallery_collections
		WHERE id = $1
	`
	var c models.Collection
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Category, &c.ThumbnailURL, &c.CreatedAt)
	if err != nil {
		return nil, Normalize(err, "loading collection")
	}
	return &c, nil
}

func (r *collectionRepository) Insert(ctx context.Context, c *models.Collection) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO gallery_collections (name, category, thumbnail_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Category, nullString(c.ThumbnailURL)).Scan(&c.ID, &c.CreatedAt)
	return Normalize(err, "creating collection")
}

func (r *collectionRepository) Remove(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_collections WHERE id = $1`, id)
	return checkAffected(res, err, "deleting collection")
}
