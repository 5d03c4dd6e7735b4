package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepositoryListNullableDuration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "title", "category", "video_url", "storage_path", "file_size", "thumbnail_url", "duration", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow(uuid.New().String(), "Teaser", "wedding", "https://cdn.example.com/gallery-videos/t.mp4", "t.mp4", int64(4096), "", 95.5, time.Now()).
		AddRow(uuid.New().String(), "Reel", "event", "https://cdn.example.com/gallery-videos/r.mp4", "r.mp4", int64(2048), "", nil, time.Now())
	mock.ExpectQuery(`SELECT .* FROM gallery_videos ORDER BY created_at DESC`).WillReturnRows(rows)

	videos, err := NewVideoRepository(db, time.Second).List(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 2)
	require.NotNil(t, videos[0].DurationSeconds)
	assert.Equal(t, 95.5, *videos[0].DurationSeconds)
	assert.Nil(t, videos[1].DurationSeconds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepositoryRemoveMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM gallery_videos WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewVideoRepository(db, time.Second).Remove(context.Background(), id)
	assert.True(t, IsKind(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
