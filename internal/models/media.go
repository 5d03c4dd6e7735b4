package models

import (
	"time"

	"github.com/google/uuid"
)

type MediaKind string

const (
	KindImage      MediaKind = "image"
	KindVideo      MediaKind = "video"
	KindAlbum      MediaKind = "album"
	KindCollection MediaKind = "collection"
)

func ParseMediaKind(s string) (MediaKind, bool) {
	switch k := MediaKind(s); k {
	case KindImage, KindVideo, KindAlbum, KindCollection:
		return k, true
	}
	return "", false
}

type Category string

const (
	CategoryWedding    Category = "wedding"
	CategoryPrewedding Category = "prewedding"
	CategoryEngagement Category = "engagement"
	CategoryEvent      Category = "event"
	CategoryPortrait   Category = "portrait"
	CategoryMaternity  Category = "maternity"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategoryWedding,
	CategoryPrewedding,
	CategoryEngagement,
	CategoryEvent,
	CategoryPortrait,
	CategoryMaternity,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MediaItem is implemented by *Image, *Video and *Album.
type MediaItem interface {
	Kind() MediaKind
	Base() *MediaBase
}

// MediaBase holds the columns every media table shares. URL maps to
// image_url / video_url / album_url depending on the table.
type MediaBase struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Category    Category  `db:"category" json:"category"`
	URL         string    `db:"url" json:"url"`
	StoragePath string    `db:"storage_path" json:"storage_path,omitempty"`
	FileSize    int64     `db:"file_size" json:"file_size,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Image struct {
	MediaBase
	ThumbnailURL string     `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	CollectionID *uuid.UUID `db:"collection_id" json:"collection_id,omitempty"`
}

func (i *Image) Kind() MediaKind  { return KindImage }
func (i *Image) Base() *MediaBase { return &i.MediaBase }

type Video struct {
	MediaBase
	ThumbnailURL    string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	DurationSeconds *float64 `db:"duration" json:"duration,omitempty"`
}

func (v *Video) Kind() MediaKind  { return KindVideo }
func (v *Video) Base() *MediaBase { return &v.MediaBase }

type Album struct {
	MediaBase
	ThumbnailURL string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	PageCount    *int   `db:"page_count" json:"page_count,omitempty"`
}

func (a *Album) Kind() MediaKind  { return KindAlbum }
func (a *Album) Base() *MediaBase { return &a.MediaBase }
