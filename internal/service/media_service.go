package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/picturesmile/studio-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxBulkConcurrency = 5

type NewMediaItem struct {
	Title           string
	Category        models.Category
	URL             string
	File            *UploadFile
	Thumbnail       *UploadFile
	CollectionID    *uuid.UUID
	DurationSeconds *float64
	PageCount       *int
}

type BulkRequest struct {
	Kind           models.MediaKind
	Category       models.Category
	TitlePrefix    string
	CollectionName string
	Files          []*UploadFile
}

type BulkResult struct {
	Total      int                `json:"total"`
	Succeeded  int                `json:"succeeded"`
	Failed     int                `json:"failed"`
	Message    string             `json:"message"`
	Collection *models.Collection `json:"collection,omitempty"`
	Items      []models.MediaItem `json:"items"`
	Failures   []ItemFailure      `json:"failures,omitempty"`
}

// Err is nil when every file was stored.
func (r *BulkResult) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return &PartialFailure{Op: "bulk upload", Succeeded: r.Succeeded, Total: r.Total, Failures: r.Failures}
}

type DeleteResult struct {
	Kind            models.MediaKind `json:"kind"`
	ID              uuid.UUID        `json:"id"`
	CleanupFailures []ItemFailure    `json:"cleanup_failures,omitempty"`
}

type Dashboard struct {
	Images      []*models.Image           `json:"images"`
	Videos      []*models.Video           `json:"videos"`
	Albums      []*models.Album           `json:"albums"`
	Collections []*models.Collection      `json:"collections"`
	Discounts   []*models.DiscountSetting `json:"discounts"`
	Counts      map[string]int            `json:"counts"`
	Warnings    []models.FetchWarning     `json:"warnings,omitempty"`
}

type MediaService interface {
	AddItem(ctx context.Context, kind models.MediaKind, in *NewMediaItem) (models.MediaItem, error)
	BulkAdd(ctx context.Context, req *BulkRequest, progress func(done, total int)) (*BulkResult, error)
	Delete(ctx context.Context, kind models.MediaKind, id uuid.UUID, confirmed bool) (*DeleteResult, error)
	ListAdmin(ctx context.Context) (*Dashboard, error)
}

type mediaService struct {
	repos       Repositories
	blobs       BlobStore
	buckets     Buckets
	rules       map[models.MediaKind]fileRule
	concurrency int
	log         *zap.Logger
}

func NewMediaService(repos Repositories, blobs BlobStore, buckets Buckets, limits FileLimits, concurrency int, log *zap.Logger) MediaService {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > maxBulkConcurrency {
		concurrency = maxBulkConcurrency
	}
	return &mediaService{
		repos:       repos,
		blobs:       blobs,
		buckets:     buckets,
		rules:       fileRules(limits),
		concurrency: concurrency,
		log:         log,
	}
}

func (s *mediaService) bucketFor(kind models.MediaKind) string {
	switch kind {
	case models.KindVideo:
		return s.buckets.Videos
	case models.KindAlbum:
		return s.buckets.Albums
	default:
		return s.buckets.Images
	}
}

func validateNewItem(in *NewMediaItem) error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "Please enter a title.")
	}
	if !in.Category.Valid() {
		return invalid("category", "Please choose a valid category.")
	}
	url := strings.TrimSpace(in.URL)
	if in.File == nil && url == "" {
		return invalid("file", "Please provide a URL or choose a file.")
	}
	if in.File == nil && !isAbsoluteURL(url) {
		return invalid("url", "URL must start with http:// or https://.")
	}
	if in.DurationSeconds != nil && *in.DurationSeconds < 0 {
		return invalid("duration", "Duration cannot be negative.")
	}
	if in.PageCount != nil && *in.PageCount < 1 {
		return invalid("page_count", "Page count must be at least 1.")
	}
	return nil
}

// AddItem uploads the file (if any), then inserts the row. When a later
// step fails, blobs uploaded by earlier steps are deleted again.
func (s *mediaService) AddItem(ctx context.Context, kind models.MediaKind, in *NewMediaItem) (models.MediaItem, error) {
	rule, ok := s.rules[kind]
	if !ok {
		return nil, invalid("kind", "Unsupported media type %q.", kind)
	}
	if err := validateNewItem(in); err != nil {
		return nil, err
	}

	var main, thumb *checkedFile
	var err error
	if in.File != nil {
		if main, err = checkFile(rule, "file", in.File); err != nil {
			return nil, err
		}
	}
	if in.Thumbnail != nil && kind != models.KindImage {
		if thumb, err = checkFile(s.rules[models.KindImage], "thumbnail", in.Thumbnail); err != nil {
			return nil, err
		}
	}

	base := models.MediaBase{
		Title:    strings.TrimSpace(in.Title),
		Category: in.Category,
		URL:      strings.TrimSpace(in.URL),
	}

	var uploaded []*Blob
	if main != nil {
		blob, err := s.blobs.Upload(ctx, s.bucketFor(kind), main.Ext, main.ContentType, main.Data)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, blob)
		base.URL = blob.URL
		base.StoragePath = blob.Path
		base.FileSize = blob.Size
	}

	thumbBlob, err := s.uploadThumbnail(ctx, kind, main, thumb)
	if err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}
	var thumbURL string
	if thumbBlob != nil {
		uploaded = append(uploaded, thumbBlob)
		thumbURL = thumbBlob.URL
	}

	var item models.MediaItem
	switch kind {
	case models.KindImage:
		img := &models.Image{MediaBase: base, ThumbnailURL: thumbURL, CollectionID: in.CollectionID}
		item = img
		err = s.repos.Images.Insert(ctx, img)
	case models.KindVideo:
		v := &models.Video{MediaBase: base, ThumbnailURL: thumbURL, DurationSeconds: in.DurationSeconds}
		item = v
		err = s.repos.Videos.Insert(ctx, v)
	case models.KindAlbum:
		a := &models.Album{MediaBase: base, ThumbnailURL: thumbURL, PageCount: in.PageCount}
		item = a
		err = s.repos.Albums.Insert(ctx, a)
	}
	if err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}

	s.log.Info("media added",
		zap.String("kind", string(kind)),
		zap.String("id", item.Base().ID.String()),
		zap.String("category", string(base.Category)),
	)
	return item, nil
}

// uploadThumbnail stores a preview next to the main file: generated from
// the image itself, or from the frame/cover the client sent for videos and
// albums.
func (s *mediaService) uploadThumbnail(ctx context.Context, kind models.MediaKind, main, thumb *checkedFile) (*Blob, error) {
	switch {
	case kind == models.KindImage && main != nil:
		data, err := MakeThumbnail(main.Data, ImageThumbnailWidth)
		if err != nil {
			s.log.Debug("skipping image thumbnail", zap.String("file", main.Name), zap.Error(err))
			return nil, nil
		}
		return s.blobs.Upload(ctx, s.buckets.Thumbnails, "jpg", "image/jpeg", data)
	case thumb != nil:
		data, err := MakeThumbnail(thumb.Data, VideoThumbnailWidth)
		if err != nil {
			return s.blobs.Upload(ctx, s.buckets.Thumbnails, thumb.Ext, thumb.ContentType, thumb.Data)
		}
		return s.blobs.Upload(ctx, s.buckets.Thumbnails, "jpg", "image/jpeg", data)
	}
	return nil, nil
}

func (s *mediaService) discard(ctx context.Context, blobs []*Blob) {
	ctx = context.WithoutCancel(ctx)
	for _, b := range blobs {
		if err := s.blobs.Delete(ctx, b.Bucket, b.Path); err != nil {
			s.log.Error("failed to remove orphaned blob",
				zap.String("bucket", b.Bucket),
				zap.String("path", b.Path),
				zap.Error(err),
			)
		}
	}
}

func bulkTitle(prefix string, i int, f *UploadFile) string {
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		return fmt.Sprintf("%s %d", prefix, i+1)
	}
	if name := strings.TrimSpace(f.BaseName()); name != "" && name != "." {
		return name
	}
	return fmt.Sprintf("Untitled %d", i+1)
}

// BulkAdd stores every file independently: a failing file is recorded in
// the result and the rest carry on. At most s.concurrency files are in
// flight at once.
func (s *mediaService) BulkAdd(ctx context.Context, req *BulkRequest, progress func(done, total int)) (*BulkResult, error) {
	kind := req.Kind
	if kind == "" {
		kind = models.KindImage
	}
	if _, ok := s.rules[kind]; !ok {
		return nil, invalid("kind", "Unsupported media type %q.", kind)
	}
	if len(req.Files) == 0 {
		return nil, invalid("files", "Please choose at least one file.")
	}
	if !req.Category.Valid() {
		return nil, invalid("category", "Please choose a valid category.")
	}
	collectionName := strings.TrimSpace(req.CollectionName)
	if collectionName != "" && kind != models.KindImage {
		return nil, invalid("collection_name", "Collections can only group images.")
	}

	result := &BulkResult{Total: len(req.Files)}

	var collectionID *uuid.UUID
	if collectionName != "" {
		c, err := s.createCollection(ctx, collectionName, req.Category, req.Files)
		if err != nil {
			return nil, err
		}
		result.Collection = c
		collectionID = &c.ID
	}

	items := make([]models.MediaItem, len(req.Files))
	failures := make([]*ItemFailure, len(req.Files))

	var mu sync.Mutex
	done := 0

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, f := range req.Files {
		g.Go(func() error {
			item, err := s.AddItem(ctx, kind, &NewMediaItem{
				Title:        bulkTitle(req.TitlePrefix, i, f),
				Category:     req.Category,
				File:         f,
				CollectionID: collectionID,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[i] = &ItemFailure{File: displayName(f), Reason: err.Error()}
				s.log.Warn("bulk upload item failed", zap.String("file", f.Name), zap.Error(err))
			} else {
				items[i] = item
			}
			done++
			if progress != nil {
				progress(done, len(req.Files))
			}
			return nil
		})
	}
	_ = g.Wait()

	result.Items = make([]models.MediaItem, 0, len(items))
	for i := range req.Files {
		if items[i] != nil {
			result.Items = append(result.Items, items[i])
			result.Succeeded++
		} else if failures[i] != nil {
			result.Failures = append(result.Failures, *failures[i])
			result.Failed++
		}
	}
	result.Message = fmt.Sprintf("%d of %d uploaded", result.Succeeded, result.Total)

	s.log.Info("bulk upload finished",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// createCollection inserts the collection with a cover built from the first
// file that passes the image checks and decodes.
func (s *mediaService) createCollection(ctx context.Context, name string, category models.Category, files []*UploadFile) (*models.Collection, error) {
	c := &models.Collection{Name: name, Category: category}

	var cover *Blob
	for _, f := range files {
		if _, err := checkFile(s.rules[models.KindImage], "files", f); err != nil {
			continue
		}
		data, err := MakeThumbnail(f.Data, ImageThumbnailWidth)
		if err != nil {
			continue
		}
		cover, err = s.blobs.Upload(ctx, s.buckets.Thumbnails, "jpg", "image/jpeg", data)
		if err != nil {
			s.log.Warn("failed to upload collection cover", zap.Error(err))
			cover = nil
		}
		break
	}
	if cover != nil {
		c.ThumbnailURL = cover.URL
	}

	if err := s.repos.Collections.Insert(ctx, c); err != nil {
		if cover != nil {
			s.discard(ctx, []*Blob{cover})
		}
		return nil, err
	}
	return c, nil
}

type blobRef struct {
	bucket string
	path   string
}

func (s *mediaService) refs(bucket, storagePath, url, thumbnailURL string) []blobRef {
	var refs []blobRef
	path := storagePath
	if path == "" {
		path = StoragePathFromURL(bucket, url)
	}
	if path != "" {
		refs = append(refs, blobRef{bucket: bucket, path: path})
	}
	if p := StoragePathFromURL(s.buckets.Thumbnails, thumbnailURL); p != "" {
		refs = append(refs, blobRef{bucket: s.buckets.Thumbnails, path: p})
	}
	return refs
}

// Delete removes the row first; blob cleanup afterwards is best effort and
// its failures are only reported on the result.
func (s *mediaService) Delete(ctx context.Context, kind models.MediaKind, id uuid.UUID, confirmed bool) (*DeleteResult, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	var refs []blobRef
	switch kind {
	case models.KindImage:
		img, err := s.repos.Images.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Images.Remove(ctx, id); err != nil {
			return nil, err
		}
		refs = s.refs(s.buckets.Images, img.StoragePath, img.URL, img.ThumbnailURL)
	case models.KindVideo:
		v, err := s.repos.Videos.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Videos.Remove(ctx, id); err != nil {
			return nil, err
		}
		refs = s.refs(s.buckets.Videos, v.StoragePath, v.URL, v.ThumbnailURL)
	case models.KindAlbum:
		a, err := s.repos.Albums.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Albums.Remove(ctx, id); err != nil {
			return nil, err
		}
		refs = s.refs(s.buckets.Albums, a.StoragePath, a.URL, a.ThumbnailURL)
	case models.KindCollection:
		c, err := s.repos.Collections.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.repos.Collections.Remove(ctx, id); err != nil {
			return nil, err
		}
		refs = s.refs(s.buckets.Thumbnails, "", "", c.ThumbnailURL)
	default:
		return nil, invalid("kind", "Unsupported media type %q.", kind)
	}

	result := &DeleteResult{Kind: kind, ID: id}
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := s.blobs.Delete(ctx, ref.bucket, ref.path); err != nil {
			s.log.Warn("blob cleanup failed",
				zap.String("bucket", ref.bucket),
				zap.String("path", ref.path),
				zap.Error(err),
			)
			result.CleanupFailures = append(result.CleanupFailures, ItemFailure{File: ref.path, Reason: err.Error()})
		}
	}

	s.log.Info("media deleted", zap.String("kind", string(kind)), zap.String("id", id.String()))
	return result, nil
}

func (s *mediaService) ListAdmin(ctx context.Context) (*Dashboard, error) {
	lib := fetchLibrary(ctx, s.repos, s.log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		Images:      lib.Images,
		Videos:      lib.Videos,
		Albums:      lib.Albums,
		Collections: lib.Collections,
		Discounts:   []*models.DiscountSetting{},
		Warnings:    lib.Warnings,
	}

	discounts, err := s.repos.Discounts.List(ctx)
	if err != nil {
		s.log.Warn("failed to load discounts", zap.Error(err))
		d.Warnings = append(d.Warnings, models.FetchWarning{Kind: "discount", Message: err.Error()})
	} else {
		d.Discounts = discounts
	}

	d.Counts = map[string]int{
		"images":      len(d.Images),
		"videos":      len(d.Videos),
		"albums":      len(d.Albums),
		"collections": len(d.Collections),
	}
	return d, nil
}
