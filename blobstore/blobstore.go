// Package blobstore stores uploaded document files and hands out the URLs the
// document records point at.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

var ErrObjectNotFound = errors.New("object not found")

type BlobStore interface {
	// Upload stores the object at path and returns a retrievable URL for it.
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// DocumentPath is the object key used for an uploaded document file.
func DocumentPath(fileName string) string {
	return "documents/" + fileName
}

// DownloadURL builds a Firebase Storage download URL for an object.
func DownloadURL(bucket, path, token string) string {
	u := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		bucket, url.PathEscape(path))
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}

// PathFromURL recovers the object key embedded after "/o/" in a download URL.
func PathFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	escaped := u.EscapedPath()
	_, after, ok := strings.Cut(escaped, "/o/")
	if !ok || after == "" {
		return "", fmt.Errorf("file url %q has no object path", rawURL)
	}
	path, err := url.PathUnescape(after)
	if err != nil {
		return "", fmt.Errorf("decode object path: %w", err)
	}
	return path, nil
}
