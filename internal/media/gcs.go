package media

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSStorage implements Storage on the app's Cloud Storage bucket.
type GCSStorage struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewGCSStorage creates a new GCSStorage
func NewGCSStorage(bucket *storage.BucketHandle, bucketName string) *GCSStorage {
	return &GCSStorage{bucket: bucket, bucketName: bucketName}
}

// Upload writes the object and returns its public URL.
func (s *GCSStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, path), nil
}

// Delete removes the object the URL points at. URLs outside the app bucket
// are rejected.
func (s *GCSStorage) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucketName)
	if !strings.HasPrefix(url, prefix) {
		return fmt.Errorf("url %q is not an object in bucket %s", url, s.bucketName)
	}
	return s.bucket.Object(strings.TrimPrefix(url, prefix)).Delete(ctx)
}
