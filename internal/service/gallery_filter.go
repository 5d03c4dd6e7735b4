package service

import "github.com/picturesmile/studio-api/internal/models"

// MediaFilter selects one media type, or every type when empty.
type MediaFilter string

const (
	MediaAll         MediaFilter = "all"
	MediaImages      MediaFilter = "images"
	MediaVideos      MediaFilter = "videos"
	MediaAlbums      MediaFilter = "albums"
	MediaCollections MediaFilter = "collections"
)

var mediaFilterKinds = map[MediaFilter]models.MediaKind{
	MediaImages:      models.KindImage,
	MediaVideos:      models.KindVideo,
	MediaAlbums:      models.KindAlbum,
	MediaCollections: models.KindCollection,
}

func ParseMediaFilter(s string) (MediaFilter, error) {
	if s == "" || s == string(MediaAll) {
		return MediaAll, nil
	}
	f := MediaFilter(s)
	if _, ok := mediaFilterKinds[f]; !ok {
		return "", invalid("type", "unknown media type %q", s)
	}
	return f, nil
}

// CategoryFilter is a category or "all".
type CategoryFilter string

const CategoryAll CategoryFilter = "all"

func ParseCategoryFilter(s string) (CategoryFilter, error) {
	if s == "" || s == string(CategoryAll) {
		return CategoryAll, nil
	}
	if !models.Category(s).Valid() {
		return "", invalid("category", "unknown category %q", s)
	}
	return CategoryFilter(s), nil
}

func (f MediaFilter) matches(item *models.GalleryItem) bool {
	if f == MediaAll || f == "" {
		return true
	}
	return mediaFilterKinds[f] == item.Kind
}

func (f CategoryFilter) matches(item *models.GalleryItem) bool {
	if f == CategoryAll || f == "" {
		return true
	}
	return string(item.Category) == string(f)
}

// Filter keeps the items matching both filters, preserving order.
func Filter(items []*models.GalleryItem, media MediaFilter, category CategoryFilter) []*models.GalleryItem {
	out := make([]*models.GalleryItem, 0, len(items))
	for _, item := range items {
		if media.matches(item) && category.matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Counts tallies items per category and per media filter, including "all".
func Counts(items []*models.GalleryItem) models.GalleryCounts {
	counts := models.GalleryCounts{
		ByCategory: map[string]int{string(CategoryAll): len(items)},
		ByType:     map[string]int{string(MediaAll): len(items)},
	}
	for _, c := range models.Categories {
		counts.ByCategory[string(c)] = 0
	}
	for f := range mediaFilterKinds {
		counts.ByType[string(f)] = 0
	}
	for _, item := range items {
		counts.ByCategory[string(item.Category)]++
		counts.ByType[string(item.Kind)+"s"]++ // "image" -> "images"
	}
	return counts
}
