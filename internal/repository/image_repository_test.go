package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var imageRowColumns = []string{"id", "title", "category", "image_url", "storage_path", "file_size", "thumbnail_url", "collection_id", "created_at"}

func TestImageRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImageRepository(db, time.Second)
	collectionID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(imageRowColumns).
		AddRow(uuid.New().String(), "Ceremony", "wedding", "https://cdn.example.com/gallery-images/a.jpg", "a.jpg", int64(1024), "", nil, now).
		AddRow(uuid.New().String(), "Vows", "wedding", "https://cdn.example.com/gallery-images/b.jpg", "b.jpg", int64(2048), "", collectionID.String(), now)
	mock.ExpectQuery(`SELECT .* FROM gallery_images ORDER BY created_at DESC`).WillReturnRows(rows)

	images, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, models.CategoryWedding, images[0].Category)
	assert.Nil(t, images[0].CollectionID)
	require.NotNil(t, images[1].CollectionID)
	assert.Equal(t, collectionID, *images[1].CollectionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepositoryListPermissionDenied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM gallery_images`).WillReturnError(&pq.Error{Code: "42501"})

	_, err = NewImageRepository(db, time.Second).List(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrPermissionDenied))
	assert.Equal(t, "Permission denied when loading images.", err.Error())
}

func TestImageRepositoryInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO gallery_images`)).
		WithArgs("Sunset Shoot", "portrait", "https://cdn.example.com/gallery-images/1.jpg", "1.jpg", int64(2048), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))

	img := &models.Image{MediaBase: models.MediaBase{
		Title:       "Sunset Shoot",
		Category:    models.CategoryPortrait,
		URL:         "https://cdn.example.com/gallery-images/1.jpg",
		StoragePath: "1.jpg",
		FileSize:    2048,
	}}
	require.NoError(t, NewImageRepository(db, time.Second).Insert(context.Background(), img))
	assert.Equal(t, id, img.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepositoryInsertDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO gallery_images`)).WillReturnError(&pq.Error{Code: "23505"})

	img := &models.Image{MediaBase: models.MediaBase{Title: "Dup", Category: models.CategoryOther, URL: "https://x"}}
	err = NewImageRepository(db, time.Second).Insert(context.Background(), img)
	assert.True(t, IsKind(err, ErrDuplicate))
	assert.Equal(t, "Duplicate entry when adding image.", err.Error())
}

func TestImageRepositoryRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImageRepository(db, time.Second)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM gallery_images WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Remove(context.Background(), id))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM gallery_images WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Remove(context.Background(), id)
	assert.True(t, IsKind(err, ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepositoryListByCollection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	collectionID := uuid.New()
	rows := sqlmock.NewRows(imageRowColumns)
	for i := 0; i < 5; i++ {
		rows.AddRow(uuid.New().String(), "Raju's Wedding", "wedding", "https://x/y.jpg", "", int64(0), "", collectionID.String(), time.Now())
	}
	mock.ExpectQuery(`SELECT .* FROM gallery_images WHERE collection_id = \$1`).WithArgs(collectionID).WillReturnRows(rows)

	images, err := NewImageRepository(db, time.Second).ListByCollection(context.Background(), collectionID)
	require.NoError(t, err)
	assert.Len(t, images, 5)
}
