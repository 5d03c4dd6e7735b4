package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/repository"
	"go.uber.org/zap"
)

type Repositories struct {
	Images      repository.ImageRepository
	Videos      repository.VideoRepository
	Albums      repository.AlbumRepository
	Collections repository.CollectionRepository
	Discounts   repository.DiscountRepository
	Broken      repository.BrokenMediaRepository
}

type Buckets struct {
	Images     string
	Videos     string
	Albums     string
	Thumbnails string
}

type GalleryService interface {
	Load(ctx context.Context) (*models.GalleryView, error)
	OpenCollection(ctx context.Context, id uuid.UUID) (*models.CollectionView, error)
	Video(ctx context.Context, id uuid.UUID) (*models.GalleryItem, error)
	Album(ctx context.Context, id uuid.UUID) (*models.GalleryItem, error)
	MarkBroken(ctx context.Context, kind models.MediaKind, id uuid.UUID) error
	ClearBroken(ctx context.Context, kind models.MediaKind, id uuid.UUID) error
}

type galleryService struct {
	repos   Repositories
	blobs   BlobStore
	buckets Buckets
	log     *zap.Logger
}

func NewGalleryService(repos Repositories, blobs BlobStore, buckets Buckets, log *zap.Logger) GalleryService {
	return &galleryService{repos: repos, blobs: blobs, buckets: buckets, log: log}
}

// Library is the raw result of fetching every media table at once. A table
// that failed to load is empty and has an entry in Warnings.
type Library struct {
	Images      []*models.Image
	Videos      []*models.Video
	Albums      []*models.Album
	Collections []*models.Collection
	Warnings    []models.FetchWarning
	failed      map[models.MediaKind]bool
}

func (l *Library) Failed(kind models.MediaKind) bool { return l.failed[kind] }

func fetchLibrary(ctx context.Context, repos Repositories, log *zap.Logger) *Library {
	lib := &Library{
		Images:      []*models.Image{},
		Videos:      []*models.Video{},
		Albums:      []*models.Album{},
		Collections: []*models.Collection{},
		failed:      map[models.MediaKind]bool{},
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(kind models.MediaKind, err error) {
		log.Warn("gallery fetch failed", zap.String("kind", string(kind)), zap.Error(err))
		mu.Lock()
		lib.failed[kind] = true
		lib.Warnings = append(lib.Warnings, models.FetchWarning{Kind: kind, Message: err.Error()})
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		images, err := repos.Images.List(ctx)
		if err != nil {
			fail(models.KindImage, err)
			return
		}
		lib.Images = images
	}()
	go func() {
		defer wg.Done()
		videos, err := repos.Videos.List(ctx)
		if err != nil {
			fail(models.KindVideo, err)
			return
		}
		lib.Videos = videos
	}()
	go func() {
		defer wg.Done()
		albums, err := repos.Albums.List(ctx)
		if err != nil {
			fail(models.KindAlbum, err)
			return
		}
		lib.Albums = albums
	}()
	go func() {
		defer wg.Done()
		collections, err := repos.Collections.List(ctx)
		if err != nil {
			fail(models.KindCollection, err)
			return
		}
		lib.Collections = collections
	}()
	wg.Wait()

	sort.Slice(lib.Warnings, func(i, j int) bool { return lib.Warnings[i].Kind < lib.Warnings[j].Kind })
	return lib
}

func (s *galleryService) Load(ctx context.Context) (*models.GalleryView, error) {
	lib := fetchLibrary(ctx, s.repos, s.log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	broken := s.brokenSet(ctx)

	view := &models.GalleryView{Warnings: lib.Warnings}
	view.Items = s.merge(lib, broken)
	if len(view.Items) == 0 && lib.Failed(models.KindImage) {
		view.Items = sampleItems()
		view.Fallback = true
	}
	view.Counts = Counts(view.Items)
	return view, nil
}

// merge builds the top-level gallery list. Images that belong to a
// collection are left out; they are reached through OpenCollection.
func (s *galleryService) merge(lib *Library, broken map[string]struct{}) []*models.GalleryItem {
	grouped := map[uuid.UUID]int{}
	items := make([]*models.GalleryItem, 0, len(lib.Images)+len(lib.Videos)+len(lib.Albums)+len(lib.Collections))

	for _, img := range lib.Images {
		if img.CollectionID != nil {
			grouped[*img.CollectionID]++
			continue
		}
		items = append(items, s.imageItem(img, broken))
	}
	for _, v := range lib.Videos {
		items = append(items, s.videoItem(v, broken))
	}
	for _, a := range lib.Albums {
		items = append(items, s.albumItem(a, broken))
	}
	for _, c := range lib.Collections {
		item := s.collectionItem(c, broken)
		item.ItemCount = grouped[c.ID]
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items
}

func (s *galleryService) OpenCollection(ctx context.Context, id uuid.UUID) (*models.CollectionView, error) {
	collection, err := s.repos.Collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.repos.Images.ListByCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	broken := s.brokenSet(ctx)
	view := &models.CollectionView{Collection: collection, Images: make([]*models.GalleryItem, 0, len(images))}
	for _, img := range images {
		view.Images = append(view.Images, s.imageItem(img, broken))
	}
	return view, nil
}

func (s *galleryService) Video(ctx context.Context, id uuid.UUID) (*models.GalleryItem, error) {
	v, err := s.repos.Videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.videoItem(v, s.brokenSet(ctx)), nil
}

func (s *galleryService) Album(ctx context.Context, id uuid.UUID) (*models.GalleryItem, error) {
	a, err := s.repos.Albums.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.albumItem(a, s.brokenSet(ctx)), nil
}

// MarkBroken makes every visitor get the placeholder for an existing item
// until the flag is cleared or expires.
func (s *galleryService) MarkBroken(ctx context.Context, kind models.MediaKind, id uuid.UUID) error {
	if err := s.exists(ctx, kind, id); err != nil {
		return err
	}
	return s.repos.Broken.Mark(ctx, brokenKey(kind, id))
}

func (s *galleryService) ClearBroken(ctx context.Context, kind models.MediaKind, id uuid.UUID) error {
	if _, ok := models.ParseMediaKind(string(kind)); !ok {
		return invalid("kind", "Unknown media type.")
	}
	return s.repos.Broken.Clear(ctx, brokenKey(kind, id))
}

func (s *galleryService) exists(ctx context.Context, kind models.MediaKind, id uuid.UUID) error {
	var err error
	switch kind {
	case models.KindImage:
		_, err = s.repos.Images.GetByID(ctx, id)
	case models.KindVideo:
		_, err = s.repos.Videos.GetByID(ctx, id)
	case models.KindAlbum:
		_, err = s.repos.Albums.GetByID(ctx, id)
	case models.KindCollection:
		_, err = s.repos.Collections.GetByID(ctx, id)
	default:
		return invalid("kind", "Unknown media type.")
	}
	return err
}

// brokenSet never fails the caller: without flags every item simply gets
// its normal URL.
func (s *galleryService) brokenSet(ctx context.Context) map[string]struct{} {
	if s.repos.Broken == nil {
		return nil
	}
	set, err := s.repos.Broken.Members(ctx)
	if err != nil {
		s.log.Warn("failed to read broken media flags", zap.Error(err))
		return nil
	}
	return set
}

func brokenKey(kind models.MediaKind, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", kind, id)
}

func isBroken(broken map[string]struct{}, kind models.MediaKind, id uuid.UUID) bool {
	_, ok := broken[brokenKey(kind, id)]
	return ok
}

// ResolveImageURL picks what to show for an image: the stored object, then
// the raw URL, then a placeholder carrying the title.
func ResolveImageURL(blobs BlobStore, bucket, title, storagePath, rawURL string, broken bool) string {
	if broken {
		return PlaceholderURL(title)
	}
	if storagePath != "" {
		return blobs.PublicURL(bucket, storagePath)
	}
	if rawURL != "" {
		return withUnsplashParams(blobs.PublicURL(bucket, rawURL))
	}
	return PlaceholderURL(title)
}

func (s *galleryService) imageItem(img *models.Image, broken map[string]struct{}) *models.GalleryItem {
	bad := isBroken(broken, models.KindImage, img.ID)
	item := &models.GalleryItem{
		Kind:        models.KindImage,
		ID:          img.ID,
		Title:       img.Title,
		Category:    img.Category,
		URL:         ResolveImageURL(s.blobs, s.buckets.Images, img.Title, img.StoragePath, img.URL, bad),
		FallbackURL: PlaceholderURL(img.Title),
		Action:      models.ActionLightbox,
		CreatedAt:   img.CreatedAt,
	}
	if img.ThumbnailURL != "" && !bad {
		item.ThumbnailURL = s.blobs.PublicURL(s.buckets.Thumbnails, img.ThumbnailURL)
	} else {
		item.ThumbnailURL = item.URL
	}
	return item
}

func (s *galleryService) videoItem(v *models.Video, broken map[string]struct{}) *models.GalleryItem {
	url := v.URL
	if v.StoragePath != "" {
		url = v.StoragePath
	}
	return &models.GalleryItem{
		Kind:            models.KindVideo,
		ID:              v.ID,
		Title:           v.Title,
		Category:        v.Category,
		URL:             s.blobs.PublicURL(s.buckets.Videos, url),
		ThumbnailURL:    ResolveImageURL(s.blobs, s.buckets.Thumbnails, v.Title, "", v.ThumbnailURL, isBroken(broken, models.KindVideo, v.ID)),
		FallbackURL:     PlaceholderURL(v.Title),
		DurationSeconds: v.DurationSeconds,
		Action:          models.ActionNavigate,
		Route:           "/video/" + v.ID.String(),
		CreatedAt:       v.CreatedAt,
	}
}

func (s *galleryService) albumItem(a *models.Album, broken map[string]struct{}) *models.GalleryItem {
	url := a.URL
	if a.StoragePath != "" {
		url = a.StoragePath
	}
	return &models.GalleryItem{
		Kind:         models.KindAlbum,
		ID:           a.ID,
		Title:        a.Title,
		Category:     a.Category,
		URL:          s.blobs.PublicURL(s.buckets.Albums, url),
		ThumbnailURL: ResolveImageURL(s.blobs, s.buckets.Thumbnails, a.Title, "", a.ThumbnailURL, isBroken(broken, models.KindAlbum, a.ID)),
		FallbackURL:  PlaceholderURL(a.Title),
		PageCount:    a.PageCount,
		Action:       models.ActionNavigate,
		Route:        "/album/" + a.ID.String(),
		CreatedAt:    a.CreatedAt,
	}
}

func (s *galleryService) collectionItem(c *models.Collection, broken map[string]struct{}) *models.GalleryItem {
	cover := ResolveImageURL(s.blobs, s.buckets.Thumbnails, c.Name, "", c.ThumbnailURL, isBroken(broken, models.KindCollection, c.ID))
	return &models.GalleryItem{
		Kind:         models.KindCollection,
		ID:           c.ID,
		Title:        c.Name,
		Category:     c.Category,
		URL:          cover,
		ThumbnailURL: cover,
		FallbackURL:  PlaceholderURL(c.Name),
		Action:       models.ActionOpenCollection,
		CreatedAt:    c.CreatedAt,
	}
}
