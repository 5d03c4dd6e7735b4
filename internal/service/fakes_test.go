package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/internal/repository"
	"go.uber.org/zap"
)

var errBackend = errors.New("backend unavailable")

type fakeImages struct {
	mu        sync.Mutex
	rows      []*models.Image
	listErr   error
	insertErr error
	inserts   int
	removes   int
	gets      int
}

func (f *fakeImages) List(context.Context) ([]*models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*models.Image{}, f.rows...), nil
}

func (f *fakeImages) ListByCollection(_ context.Context, id uuid.UUID) ([]*models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Image{}
	for _, img := range f.rows {
		if img.CollectionID != nil && *img.CollectionID == id {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeImages) GetByID(_ context.Context, id uuid.UUID) (*models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	for _, img := range f.rows {
		if img.ID == id {
			return img, nil
		}
	}
	return nil, &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when loading image."}
}

func (f *fakeImages) Insert(_ context.Context, img *models.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	img.ID = uuid.New()
	img.CreatedAt = time.Now()
	f.rows = append(f.rows, img)
	return nil
}

func (f *fakeImages) Remove(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes++
	for i, img := range f.rows {
		if img.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when deleting image."}
}

type fakeVideos struct {
	rows    []*models.Video
	listErr error
	removes int
}

func (f *fakeVideos) List(context.Context) ([]*models.Video, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeVideos) GetByID(_ context.Context, id uuid.UUID) (*models.Video, error) {
	for _, v := range f.rows {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when loading video."}
}

func (f *fakeVideos) Insert(_ context.Context, v *models.Video) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	f.rows = append(f.rows, v)
	return nil
}

func (f *fakeVideos) Remove(_ context.Context, id uuid.UUID) error {
	f.removes++
	for i, v := range f.rows {
		if v.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when deleting video."}
}

type fakeAlbums struct {
	rows    []*models.Album
	listErr error
	removes int
}

func (f *fakeAlbums) List(context.Context) ([]*models.Album, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeAlbums) GetByID(_ context.Context, id uuid.UUID) (*models.Album, error) {
	for _, a := range f.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when loading album."}
}

func (f *fakeAlbums) Insert(_ context.Context, a *models.Album) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeAlbums) Remove(_ context.Context, id uuid.UUID) error {
	f.removes++
	for i, a := range f.rows {
		if a.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when deleting album."}
}

type fakeCollections struct {
	rows      []*models.Collection
	listErr   error
	insertErr error
	inserts   int
	removes   int

	// images mirrors ON DELETE SET NULL on gallery_images.collection_id.
	images *fakeImages
}

func (f *fakeCollections) List(context.Context) ([]*models.Collection, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeCollections) GetByID(_ context.Context, id uuid.UUID) (*models.Collection, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when loading collection."}
}

func (f *fakeCollections) Insert(_ context.Context, c *models.Collection) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCollections) Remove(_ context.Context, id uuid.UUID) error {
	f.removes++
	for i, c := range f.rows {
		if c.ID != id {
			continue
		}
		f.rows = append(f.rows[:i], f.rows[i+1:]...)
		if f.images != nil {
			f.images.mu.Lock()
			for _, img := range f.images.rows {
				if img.CollectionID != nil && *img.CollectionID == id {
					img.CollectionID = nil
				}
			}
			f.images.mu.Unlock()
		}
		return nil
	}
	return &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when deleting collection."}
}

type fakeDiscounts struct {
	rows    []*models.DiscountSetting
	listErr error
	updates []*models.DiscountSetting
}

func (f *fakeDiscounts) List(context.Context) ([]*models.DiscountSetting, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeDiscounts) GetByKey(_ context.Context, key string) (*models.DiscountSetting, error) {
	for _, d := range f.rows {
		if d.Key == key {
			return d, nil
		}
	}
	return nil, &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when loading discount setting."}
}

func (f *fakeDiscounts) Update(_ context.Context, key string, patch *models.DiscountSetting) error {
	f.updates = append(f.updates, patch)
	for _, d := range f.rows {
		if d.Key == key {
			stored := *patch
			stored.Key = key
			*d = stored
			return nil
		}
	}
	return &repository.RemoteError{Kind: repository.ErrNotFound, Message: "No data found when updating discount setting."}
}

type fakeBlobs struct {
	mu        sync.Mutex
	uploads   []*Blob
	deletes   []string
	payloads  map[string][]byte
	uploadErr error
	deleteErr error
	n         int
}

const testBaseURL = "https://cdn.test"

func (f *fakeBlobs) Upload(_ context.Context, bucket, ext, contentType string, data []byte) (*Blob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.n++
	path := fmt.Sprintf("1700000000000-blob%d.%s", f.n, ext)
	b := &Blob{Bucket: bucket, Path: path, URL: f.PublicURL(bucket, path), ContentType: contentType, Size: int64(len(data))}
	f.uploads = append(f.uploads, b)
	if f.payloads == nil {
		f.payloads = map[string][]byte{}
	}
	f.payloads[bucket+"/"+path] = data
	return b, nil
}

func (f *fakeBlobs) PublicURL(bucket, path string) string {
	return ResolvePublicURL(testBaseURL, bucket, path)
}

func (f *fakeBlobs) Delete(_ context.Context, bucket, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, bucket+"/"+path)
	return f.deleteErr
}

func (f *fakeBlobs) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

type fixture struct {
	images      *fakeImages
	videos      *fakeVideos
	albums      *fakeAlbums
	collections *fakeCollections
	discounts   *fakeDiscounts
	blobs       *fakeBlobs
	repos       Repositories
}

var testBuckets = Buckets{
	Images:     "gallery-images",
	Videos:     "gallery-videos",
	Albums:     "gallery-albums",
	Thumbnails: "gallery-thumbnails",
}

var testLimits = FileLimits{ImageMaxMB: 5, VideoMaxMB: 100, AlbumMaxMB: 50}

func newFixture() *fixture {
	f := &fixture{
		images:      &fakeImages{},
		videos:      &fakeVideos{},
		albums:      &fakeAlbums{},
		collections: &fakeCollections{},
		discounts:   &fakeDiscounts{},
		blobs:       &fakeBlobs{},
	}
	f.repos = Repositories{
		Images:      f.images,
		Videos:      f.videos,
		Albums:      f.albums,
		Collections: f.collections,
		Discounts:   f.discounts,
		Broken:      repository.NewMemoryBrokenMediaRepository(time.Hour),
	}
	f.collections.images = f.images
	return f
}

func (f *fixture) media(concurrency int) MediaService {
	return NewMediaService(f.repos, f.blobs, testBuckets, testLimits, concurrency, zap.NewNop())
}

func (f *fixture) gallery() GalleryService {
	return NewGalleryService(f.repos, f.blobs, testBuckets, zap.NewNop())
}

// jpegBytes encodes a w x h JPEG and pads it to at least size bytes.
func jpegBytes(w, h, size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, img, nil)
	if buf.Len() < size {
		buf.Write(make([]byte, size-buf.Len()))
	}
	return buf.Bytes()
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
}

func mp4Bytes() []byte {
	return append([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00}, make([]byte, 64)...)
}
