package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
)

type AlbumRepository interface {
	List(ctx context.Context) ([]*models.Album, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Album, error)
	Insert(ctx context.Context, a *models.Album) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type albumRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewAlbumRepository(db *sql.DB, timeout time.Duration) AlbumRepository {
	return &albumRepository{db: db, timeout: timeout}
}

const albumColumns = `id, title, category, album_url, COALESCE(storage_path, ''), COALESCE(file_size, 0), COALESCE(thumbnail_url, ''), page_count, created_at`

func scanAlbum(row interface{ Scan(...any) error }) (*models.Album, error) {
	var a models.Album
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Category,
		&a.URL,
		&a.StoragePath,
		&a.FileSize,
		&a.ThumbnailURL,
		&a.PageCount,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *albumRepository) List(ctx context.Context) ([]*models.Album, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+albumColumns+` FROM gallery_albums ORDER BY created_at DESC`)
	if err != nil {
		return nil, Normalize(err, "loading albums")
	}
	defer rows.Close()

	albums := []*models.Album{}
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, Normalize(err, "loading albums")
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, Normalize(err, "loading albums")
	}
	return albums, nil
}

func (r *albumRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	a, err := scanAlbum(r.db.QueryRowContext(ctx, `SELECT `+albumColumns+` FROM gallery_albums WHERE id = $1`, id))
	if err != nil {
		return nil, Normalize(err, "loading album")
	}
	return a, nil
}

func (r *albumRepository) Insert(ctx context.Context, a *models.Album) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO gallery_albums (title, category, album_url, storage_path, file_size, thumbnail_url, page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		a.Title,
		a.Category,
		a.URL,
		nullString(a.StoragePath),
		a.FileSize,
		nullString(a.ThumbnailURL),
		a.PageCount,
	).Scan(&a.ID, &a.CreatedAt)
	return Normalize(err, "adding album")
}

func (r *albumRepository) Remove(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_albums WHERE id = $1`, id)
	return checkAffected(res, err, "deleting album")
}
