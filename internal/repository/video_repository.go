package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
)

type VideoRepository interface {
	List(ctx context.Context) ([]*models.Video, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Insert(ctx context.Context, v *models.Video) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type videoRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewVideoRepository(db *sql.DB, timeout time.Duration) VideoRepository {
	return &videoRepository{db: db, timeout: timeout}
}

const videoColumns = `id, title, category, video_url, COALESCE(storage_path, ''), COALESCE(file_size, 0), COALESCE(thumbnail_url, ''), duration, created_at`

func scanVideo(row interface{ Scan(...any) error }) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Category,
		&v.URL,
		&v.StoragePath,
		&v.FileSize,
		&v.ThumbnailURL,
		&v.DurationSeconds,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepository) List(ctx context.Context) ([]*models.Video, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM gallery_videos ORDER BY created_at DESC`)
	if err != nil {
		return nil, Normalize(err, "loading videos")
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, Normalize(err, "loading videos")
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, Normalize(err, "loading videos")
	}
	return videos, nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	v, err := scanVideo(r.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM gallery_videos WHERE id = $1`, id))
	if err != nil {
		return nil, Normalize(err, "loading video")
	}
	return v, nil
}

func (r *videoRepository) Insert(ctx context.Context, v *models.Video) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO gallery_videos (title, category, video_url, storage_path, file_size, thumbnail_url, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		v.Title,
		v.Category,
		v.URL,
		nullString(v.StoragePath),
		v.FileSize,
		nullString(v.ThumbnailURL),
		v.DurationSeconds,
	).Scan(&v.ID, &v.CreatedAt)
	return Normalize(err, "adding video")
}

func (r *videoRepository) Remove(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_videos WHERE id = $1`, id)
	return checkAffected(res, err, "deleting video")
}
