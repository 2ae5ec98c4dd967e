package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"teamhub/blobstore"
	"teamhub/model"
)

type failingBlobs struct {
	uploadErr error
	deleteErr error
}

func (f failingBlobs) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	return "", f.uploadErr
}

func (f failingBlobs) Delete(ctx context.Context, path string) error {
	return f.deleteErr
}

func TestAddDocumentDefaults(t *testing.T) {
	h := newHarness(t)
	arun := h.addUser(t, "Arun Kumar", "Arun123", false)

	id, err := h.svc.AddDocument(context.Background(), arun, DocumentInput{
		FileName: "Flight Plan v2.pdf",
		FileType: "application/pdf",
		Size:     1500,
	}, strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	d, ok := h.dir.Snapshot().FindDocument(id)
	if !ok {
		t.Fatal("document not in directory")
	}
	want := model.Document{
		ID:          id,
		Title:       "Flight Plan v2",
		Category:    "Technical",
		Description: "Uploaded document: Flight Plan v2.pdf",
		FileName:    "Flight Plan v2.pdf",
		FileSize:    "1.5 kB",
		UploadedBy:  "Arun Kumar",
		UploadedAt:  d.UploadedAt,
		FileURL:     blobstore.DownloadURL(testBucket, "documents/Flight Plan v2.pdf", ""),
		FileType:    "application/pdf",
	}
	if d != want {
		t.Fatalf("document = %+v\nwant %+v", d, want)
	}
	if !h.blobs.Exists("documents/Flight Plan v2.pdf") {
		t.Fatal("blob not uploaded")
	}
}

func TestAddDocumentUploadFailureLeavesNoRecord(t *testing.T) {
	h := newHarness(t)
	h.svc.blobs = failingBlobs{uploadErr: errors.New("quota exceeded")}

	_, err := h.svc.AddDocument(context.Background(), model.User{}, DocumentInput{FileName: "a.txt"}, strings.NewReader("a"))
	if err == nil {
		t.Fatal("expected upload error")
	}
	if h.remote.count() != 0 || h.mem.Len("documents") != 0 {
		t.Fatal("record written after failed upload")
	}
}

func TestAddDocumentUnknownUploader(t *testing.T) {
	h := newHarness(t)
	id, err := h.svc.AddDocument(context.Background(), model.User{}, DocumentInput{FileName: "notes"}, strings.NewReader(""))
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	d, _ := h.dir.Snapshot().FindDocument(id)
	if d.UploadedBy != "Unknown" || d.FileType != "application/octet-stream" || d.Title != "notes" {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestDeleteDocument(t *testing.T) {
	h := newHarness(t)
	arun := h.addUser(t, "Arun Kumar", "Arun123", false)
	id, err := h.svc.AddDocument(context.Background(), arun, DocumentInput{FileName: "BOM #3.xlsx"}, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}

	if err := h.svc.DeleteDocument(context.Background(), arun, id); err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}
	if h.blobs.Exists("documents/BOM #3.xlsx") {
		t.Fatal("blob not deleted")
	}
	if _, ok := h.dir.Snapshot().FindDocument(id); ok {
		t.Fatal("record not deleted")
	}
}

func TestDeleteDocumentWithoutURL(t *testing.T) {
	h := newHarness(t)
	if _, err := h.svc.Seed(context.Background(), nil, false); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	h.svc.blobs = failingBlobs{deleteErr: errors.New("must not be called")}

	if err := h.svc.DeleteDocument(context.Background(), model.User{ID: "x"}, "doc-1"); err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}
	if h.mem.Len("documents") != 0 {
		t.Fatal("record not deleted")
	}
}

func TestDeleteDocumentBlobFailureKeepsRecord(t *testing.T) {
	h := newHarness(t)
	id, err := h.svc.AddDocument(context.Background(), model.User{}, DocumentInput{FileName: "a.txt"}, strings.NewReader("a"))
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	h.svc.blobs = failingBlobs{deleteErr: errors.New("permission denied")}

	if err := h.svc.DeleteDocument(context.Background(), model.User{}, id); err == nil {
		t.Fatal("expected blob delete error")
	}
	if _, ok := h.dir.Snapshot().FindDocument(id); !ok {
		t.Fatal("record deleted although the blob remains")
	}
}

func TestDeleteDocumentMissingBlobIsTolerated(t *testing.T) {
	h := newHarness(t)
	id, err := h.svc.AddDocument(context.Background(), model.User{}, DocumentInput{FileName: "a.txt"}, strings.NewReader("a"))
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	if err := h.blobs.Delete(context.Background(), "documents/a.txt"); err != nil {
		t.Fatalf("remove blob: %v", err)
	}
	if err := h.svc.DeleteDocument(context.Background(), model.User{}, id); err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}
	if h.mem.Len("documents") != 0 {
		t.Fatal("record not deleted")
	}
}
