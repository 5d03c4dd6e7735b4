package service

import (
	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
)

var sampleImages = []struct {
	title    string
	category models.Category
	url      string
}{
	{"Wedding Ceremony", models.CategoryWedding, "https://images.unsplash.com/photo-1519741497674-611481863552?w=800"},
	{"Pre-Wedding Shoot", models.CategoryPrewedding, "https://images.unsplash.com/photo-1511285560929-80b456fea0bc?w=800"},
	{"Engagement Ring", models.CategoryEngagement, "https://images.unsplash.com/photo-1515934751635-c81c6bc9a2d8?w=800"},
	{"Portrait Session", models.CategoryPortrait, "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=800"},
	{"Event Coverage", models.CategoryEvent, "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=800"},
	{"Maternity Shoot", models.CategoryMaternity, "https://images.unsplash.com/photo-1557804506-669a67965ba0?w=800"},
}

// sampleItems is shown when the image table cannot be read at all, so the
// public gallery never renders empty.
func sampleItems() []*models.GalleryItem {
	items := make([]*models.GalleryItem, 0, len(sampleImages))
	for _, s := range sampleImages {
		url := withUnsplashParams(s.url)
		items = append(items, &models.GalleryItem{
			Kind:         models.KindImage,
			ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte(s.url)),
			Title:        s.title,
			Category:     s.category,
			URL:          url,
			ThumbnailURL: url,
			FallbackURL:  PlaceholderURL(s.title),
			Action:       models.ActionLightbox,
		})
	}
	return items
}
