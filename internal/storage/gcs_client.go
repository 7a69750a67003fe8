package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// ImageStore persists product images in an object store. All writes are
// public-read; Delete is best effort at the call sites.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// GCSImageStore stores product images in a Google Cloud Storage bucket
type GCSImageStore struct {
	client *storage.Client
	bucket string
}

var _ ImageStore = (*GCSImageStore)(nil)

func NewGCSImageStore(ctx context.Context, bucket string) (*GCSImageStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSImageStore{client: client, bucket: bucket}, nil
}

// Upload writes the file under products/ with a generated name and returns
// its public URL.
func (s *GCSImageStore) Upload(ctx context.Context, file io.Reader, contentType string) (string, error) {
	name := fmt.Sprintf("products/%s-%s%s",
		uuid.New().String(), time.Now().Format("20060102150405"), extensionFor(contentType))

	obj := s.client.Bucket(s.bucket).Object(name)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, file); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize image upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name), nil
}

// Delete removes the object referenced by a URL previously returned from
// Upload. URLs for other buckets are ignored.
func (s *GCSImageStore) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	name := strings.TrimPrefix(url, prefix)
	return s.client.Bucket(s.bucket).Object(name).Delete(ctx)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
