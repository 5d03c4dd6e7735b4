package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
)

type ImageRepository interface {
	List(ctx context.Context) ([]*models.Image, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]*models.Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
	Insert(ctx context.Context, img *models.Image) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type imageRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewImageRepository(db *sql.DB, timeout time.Duration) ImageRepository {
	return &imageRepository{db: db, timeout: timeout}
}

const imageColumns = `id, title, category, image_url, COALESCE(storage_path, ''), COALESCE(file_size, 0), COALESCE(thumbnail_url, ''), collection_id, created_at`

func scanImage(row interface{ Scan(...any) error }) (*models.Image, error) {
	var img models.Image
	var collectionID uuid.NullUUID
	err := row.Scan(
		&img.ID,
		&img.Title,
		&img.Category,
		&img.URL,
		&img.StoragePath,
		&img.FileSize,
		&img.ThumbnailURL,
		&collectionID,
		&img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if collectionID.Valid {
		id := collectionID.UUID
		img.CollectionID = &id
	}
	return &img, nil
}

func (r *imageRepository) List(ctx context.Context) ([]*models.Image, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + imageColumns + ` FROM gallery_images ORDER BY created_at DESC`
	return r.query(ctx, "loading images", query)
}

func (r *imageRepository) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]*models.Image, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + imageColumns + ` FROM gallery_images WHERE collection_id = $1 ORDER BY created_at ASC`
	return r.query(ctx, "loading collection images", query, collectionID)
}

func (r *imageRepository) query(ctx context.Context, action, query string, args ...any) ([]*models.Image, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Normalize(err, action)
	}
	defer rows.Close()

	images := []*models.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, Normalize(err, action)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, Normalize(err, action)
	}
	return images, nil
}

func (r *imageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + imageColumns + ` FROM gallery_images WHERE id = $1`
	img, err := scanImage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, Normalize(err, "loading image")
	}
	return img, nil
}

func (r *imageRepository) Insert(ctx context.Context, img *models.Image) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO gallery_images (title, category, image_url, storage_path, file_size, thumbnail_url, collection_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		img.Title,
		img.Category,
		img.URL,
		nullString(img.StoragePath),
		img.FileSize,
		nullString(img.ThumbnailURL),
		nullUUID(img.CollectionID),
	).Scan(&img.ID, &img.CreatedAt)
	return Normalize(err, "adding image")
}

func (r *imageRepository) Remove(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	return checkAffected(res, err, "deleting image")
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func checkAffected(res sql.Result, err error, action string) error {
	if err != nil {
		return Normalize(err, action)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Normalize(err, action)
	}
	if n == 0 {
		return notFound(action)
	}
	return nil
}
