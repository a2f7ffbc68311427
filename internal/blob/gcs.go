package blob

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSStorage implements Storage on a Firebase/Cloud Storage bucket.
type GCSStorage struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func NewGCSStorage(bucket *storage.BucketHandle, bucketName string) *GCSStorage {
	return &GCSStorage{bucket: bucket, bucketName: bucketName}
}

func (s *GCSStorage) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string, onProgress ProgressFunc) (string, error) {
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, newProgressReader(r, size, onProgress)); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	// Close commits the write; the object is durable once it returns.
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	return s.publicURL(path), nil
}

func (s *GCSStorage) Delete(ctx context.Context, path string) error {
	if err := s.bucket.Object(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *GCSStorage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var out []ObjectInfo
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		out = append(out, ObjectInfo{
			Name:        baseName(attrs.Name),
			Path:        attrs.Name,
			URL:         s.publicURL(attrs.Name),
			Size:        attrs.Size,
			ContentType: attrs.ContentType,
			Created:     attrs.Created,
			Updated:     attrs.Updated,
		})
	}
	return out, nil
}

func (s *GCSStorage) publicURL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, path)
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
