package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSStore keeps objects in the Firebase Storage bucket.
type GCSStore struct {
	bucket *storage.BucketHandle
	name   string
}

func NewGCSStore(bucket *storage.BucketHandle, name string) *GCSStore {
	return &GCSStore{bucket: bucket, name: name}
}

func (s *GCSStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	token := uuid.New().String()
	// Closing a writer commits whatever was written, so a failed copy is
	// abandoned by cancelling its context instead.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	// Firebase serves download URLs only for objects carrying a token.
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", path, err)
	}
	return DownloadURL(s.name, path, token), nil
}

func (s *GCSStore) Delete(ctx context.Context, path string) error {
	if err := s.bucket.Object(path).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}
