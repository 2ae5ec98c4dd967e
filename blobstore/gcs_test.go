package blobstore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const testBucketName = "teamhub.appspot.com"

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestGCSUploadAbandonsFailedCopy(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx := context.Background()
	client, err := storage.NewClient(ctx,
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("storage.NewClient() error = %v", err)
	}
	defer client.Close()

	store := NewGCSStore(client.Bucket(testBucketName), testBucketName)
	if _, err := store.Upload(ctx, "documents/report.pdf", "application/pdf", failingReader{}); err == nil {
		t.Fatal("expected upload error")
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Fatalf("failed upload sent %d requests to the bucket", n)
	}
}
