// Package syncer keeps the Directory Store current by holding one standing
// watch per remote collection and replacing the cached collection on every
// delivered snapshot.
package syncer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"teamhub/docstore"
	"teamhub/store"
)

type binding struct {
	query docstore.Query
	apply func(records []docstore.Record) []error
}

type Syncer struct {
	remote docstore.DocumentStore
	dir    *store.Directory
	errs   chan error

	mu    sync.Mutex
	stops []func()
}

func New(remote docstore.DocumentStore, dir *store.Directory) *Syncer {
	return &Syncer{
		remote: remote,
		dir:    dir,
		errs:   make(chan error, 64),
	}
}

// Errors carries decode failures and watch errors. Reports are dropped while
// the buffer is full.
func (s *Syncer) Errors() <-chan error {
	return s.errs
}

// Start opens every watch. It returns once the watches are registered;
// snapshots arrive asynchronously.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bindings() {
		b := b
		stop := s.remote.Watch(ctx, b.query, func(records []docstore.Record, err error) {
			s.handle(b, records, err)
		})
		s.stops = append(s.stops, stop)
	}
}

func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stop := range s.stops {
		stop()
	}
	s.stops = nil
}

func (s *Syncer) handle(b binding, records []docstore.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.report(fmt.Errorf("snapshot %s: panic: %v", b.query.Collection, r))
		}
	}()
	if err != nil {
		s.report(err)
		return
	}
	for _, decodeErr := range b.apply(records) {
		s.report(decodeErr)
	}
}

func (s *Syncer) report(err error) {
	select {
	case s.errs <- err:
	default:
		log.Printf("sync error dropped: %v", err)
	}
}

func (s *Syncer) bindings() []binding {
	return []binding{
		{
			query: docstore.Query{Collection: docstore.CollectionTasks, OrderBy: "createdAt"},
			apply: func(records []docstore.Record) []error {
				tasks, errs := decodeAll(records, DecodeTask)
				s.dir.ReplaceTasks(tasks)
				return errs
			},
		},
		{
			query: docstore.Query{Collection: docstore.CollectionAnnouncements, OrderBy: "timestamp", Descending: true},
			apply: func(records []docstore.Record) []error {
				items, errs := decodeAll(records, DecodeAnnouncement)
				s.dir.ReplaceAnnouncements(items)
				return errs
			},
		},
		{
			query: docstore.Query{Collection: docstore.CollectionChatMessages, OrderBy: "timestamp"},
			apply: func(records []docstore.Record) []error {
				items, errs := decodeAll(records, DecodeChatMessage)
				s.dir.ReplaceChatMessages(items)
				return errs
			},
		},
		{
			query: docstore.Query{Collection: docstore.CollectionDocuments, OrderBy: "uploadedAt", Descending: true},
			apply: func(records []docstore.Record) []error {
				items, errs := decodeAll(records, DecodeDocument)
				s.dir.ReplaceDocuments(items)
				return errs
			},
		},
		{
			query: docstore.Query{Collection: docstore.CollectionUsers, OrderBy: "createdAt"},
			apply: func(records []docstore.Record) []error {
				items, errs := decodeAll(records, DecodeUser)
				s.dir.ReplaceUsers(items)
				return errs
			},
		},
		{
			query: docstore.Query{Collection: docstore.CollectionPasswordResets, OrderBy: "requestedAt"},
			apply: func(records []docstore.Record) []error {
				items, errs := decodeAll(records, DecodePasswordReset)
				s.dir.ReplacePasswordResets(items)
				return errs
			},
		},
	}
}

// decodeAll keeps every record that decodes and collects the failures, so one
// malformed document does not hide the rest of its collection.
func decodeAll[T any](records []docstore.Record, decode func(docstore.Record) (T, error)) ([]T, []error) {
	out := make([]T, 0, len(records))
	var errs []error
	for _, rec := range records {
		v, err := decode(rec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}
