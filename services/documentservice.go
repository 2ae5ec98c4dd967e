package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"teamhub/blobstore"
	"teamhub/docstore"
	"teamhub/model"
	"teamhub/syncer"
)

const (
	defaultCategory = "Technical"
	defaultFileType = "application/octet-stream"
	unknownUploader = "Unknown"
)

// DocumentInput describes an uploaded file. Empty fields take defaults
// derived from the file name.
type DocumentInput struct {
	Title       string
	Category    string
	Description string
	FileName    string
	FileType    string
	Size        int64
}

func (in DocumentInput) withDefaults(uploader string) model.Document {
	d := model.Document{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		FileName:    in.FileName,
		FileType:    in.FileType,
		FileSize:    humanize.Bytes(uint64(in.Size)),
		UploadedBy:  uploader,
	}
	if d.Title == "" {
		d.Title = strings.TrimSuffix(in.FileName, filepath.Ext(in.FileName))
	}
	if d.Category == "" {
		d.Category = defaultCategory
	}
	if d.Description == "" {
		d.Description = "Uploaded document: " + in.FileName
	}
	if d.FileType == "" {
		d.FileType = defaultFileType
	}
	if d.UploadedBy == "" {
		d.UploadedBy = unknownUploader
	}
	return d
}

// AddDocument uploads the blob first and only then records its metadata. A
// failed upload leaves no record behind.
func (s *Service) AddDocument(ctx context.Context, principal model.User, in DocumentInput, r io.Reader) (string, error) {
	if in.FileName == "" {
		return "", errors.New("add document: file name is required")
	}
	d := in.withDefaults(principal.Name)
	url, err := s.blobs.Upload(ctx, blobstore.DocumentPath(in.FileName), d.FileType, r)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", in.FileName, err)
	}
	d.ID = s.NewID()
	d.FileURL = url
	d.UploadedAt = s.Now()
	if err := s.remote.Set(ctx, docstore.CollectionDocuments, d.ID, syncer.EncodeDocument(d)); err != nil {
		return "", fmt.Errorf("add document: %w", err)
	}
	return d.ID, nil
}

// DeleteDocument removes the blob behind a document, then its record. A
// document without a URL only loses its record.
func (s *Service) DeleteDocument(ctx context.Context, principal model.User, id string) error {
	d, ok := s.dir.Snapshot().FindDocument(id)
	if !ok {
		log.Printf("delete document %s: not found, ignoring", id)
		return nil
	}
	if d.FileURL != "" {
		path, err := blobstore.PathFromURL(d.FileURL)
		if err != nil {
			return fmt.Errorf("delete document %s: %w", id, err)
		}
		if err := s.blobs.Delete(ctx, path); err != nil && !errors.Is(err, blobstore.ErrObjectNotFound) {
			return fmt.Errorf("delete blob %s: %w", path, err)
		}
	}
	if err := s.remote.Delete(ctx, docstore.CollectionDocuments, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	log.Printf("document %s deleted by %s", id, principal.ID)
	return nil
}
