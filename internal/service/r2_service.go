package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/picturesmile/studio-api/configs"
	"github.com/picturesmile/studio-api/internal/repository"
	"github.com/picturesmile/studio-api/pkg/utils"
)

type Blob struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type BlobStore interface {
	Upload(ctx context.Context, bucket, ext, contentType string, data []byte) (*Blob, error)
	PublicURL(bucket, path string) string
	Delete(ctx context.Context, bucket, path string) error
}

type R2Service struct {
	config  cfg.R2
	client  *s3.Client
	baseURL string
	timeout time.Duration
}

func NewR2Service(ctx context.Context, c cfg.R2, timeout time.Duration) (*R2Service, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = c.Endpoint != ""
	})

	baseURL := c.PublicBaseURL
	if baseURL == "" {
		baseURL = endpoint
	}

	return &R2Service{
		config:  c,
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}, nil
}

func (r *R2Service) Upload(ctx context.Context, bucket, ext, contentType string, data []byte) (*Blob, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	name, err := utils.NewBlobName(ext, time.Now())
	if err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(name),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	}
	if _, err := r.client.PutObject(ctx, input); err != nil {
		return nil, repository.Normalize(err, "uploading file")
	}

	return &Blob{
		Bucket:      bucket,
		Path:        name,
		URL:         r.PublicURL(bucket, name),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (r *R2Service) PublicURL(bucket, path string) string {
	return ResolvePublicURL(r.baseURL, bucket, path)
}

func (r *R2Service) Delete(ctx context.Context, bucket, path string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	return repository.Normalize(err, "deleting file")
}
