package services

import (
	"time"

	"github.com/google/uuid"

	"teamhub/blobstore"
	"teamhub/docstore"
	"teamhub/store"
)

// Service is the mutation façade. Commands check authorization against the
// Directory Store and write to the remote store only; the cache catches up
// through the sync layer.
type Service struct {
	remote   docstore.DocumentStore
	blobs    blobstore.BlobStore
	dir      *store.Directory
	sessions *SessionManager

	Now   func() time.Time
	NewID func() string
}

func NewService(remote docstore.DocumentStore, blobs blobstore.BlobStore, dir *store.Directory, sessions *SessionManager) *Service {
	return &Service{
		remote:   remote,
		blobs:    blobs,
		dir:      dir,
		sessions: sessions,
		Now:      time.Now,
		NewID:    func() string { return uuid.New().String() },
	}
}

// Directory exposes the read side to controllers.
func (s *Service) Directory() *store.Directory {
	return s.dir
}

func (s *Service) Sessions() *SessionManager {
	return s.sessions
}
