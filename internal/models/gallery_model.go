package models

import (
	"time"

	"github.com/google/uuid"
)

// Selecting an item in the gallery does one of these.
const (
	ActionLightbox       = "lightbox"
	ActionNavigate       = "navigate"
	ActionOpenCollection = "open_collection"
)

// FallbackURL is what a client swaps in when URL fails to load for it.
type GalleryItem struct {
	Kind            MediaKind `json:"kind"`
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Category        Category  `json:"category"`
	URL             string    `json:"url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	FallbackURL     string    `json:"fallback_url"`
	DurationSeconds *float64  `json:"duration,omitempty"`
	PageCount       *int      `json:"page_count,omitempty"`
	ItemCount       int       `json:"item_count,omitempty"`
	Action          string    `json:"action"`
	Route           string    `json:"route,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type FetchWarning struct {
	Kind    MediaKind `json:"kind"`
	Message string    `json:"message"`
}

type GalleryCounts struct {
	ByCategory map[string]int `json:"by_category"`
	ByType     map[string]int `json:"by_type"`
}

type GalleryView struct {
	Items    []*GalleryItem `json:"items"`
	Counts   GalleryCounts  `json:"counts"`
	Warnings []FetchWarning `json:"warnings,omitempty"`
	Fallback bool           `json:"fallback,omitempty"`
}

type CollectionView struct {
	Collection *Collection    `json:"collection"`
	Images     []*GalleryItem `json:"images"`
}
