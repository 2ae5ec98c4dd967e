// Package docstore is the contract between the service and the hosted
// document database, with a Firestore implementation for production and an
// in-memory one for tests and local runs.
package docstore

import (
	"context"
	"errors"
)

// Collection names shared with the web client.
const (
	CollectionTasks          = "tasks"
	CollectionAnnouncements  = "announcements"
	CollectionChatMessages   = "chatMessages"
	CollectionDocuments      = "documents"
	CollectionUsers          = "users"
	CollectionPasswordResets = "passwordResetRequests"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// Record is one stored document: its id plus flat field data. Nested arrays
// and maps use []interface{} and map[string]interface{}.
type Record struct {
	ID   string
	Data map[string]interface{}
}

// Query selects a whole collection in a fixed order.
type Query struct {
	Collection string
	OrderBy    string
	Descending bool
}

// SnapshotHandler receives the complete ordered result of a watched query
// each time it changes, or the error that ended the watch.
type SnapshotHandler func(records []Record, err error)

type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (Record, error)
	// Set writes the full document, replacing any previous content.
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	// Create writes the document only if the id is unused; otherwise ErrAlreadyExists.
	Create(ctx context.Context, collection, id string, data map[string]interface{}) error
	// Update overwrites the given top-level fields of an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	// DeleteAll removes every document of the collection in one atomic commit.
	DeleteAll(ctx context.Context, collection string) error
	// Watch delivers the current result of q and then every subsequent change
	// until stop is called or ctx is done.
	Watch(ctx context.Context, q Query, handle SnapshotHandler) (stop func())
}
