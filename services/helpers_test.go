package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"teamhub/blobstore"
	"teamhub/docstore"
	"teamhub/model"
	"teamhub/store"
	"teamhub/syncer"
)

const testBucket = "teamhub-test.appspot.com"

// countingStore records the writes that reach the wrapped store.
type countingStore struct {
	docstore.DocumentStore
	mu     sync.Mutex
	writes int
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *countingStore) inc() {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
}

func (s *countingStore) Set(ctx context.Context, c, id string, data map[string]interface{}) error {
	s.inc()
	return s.DocumentStore.Set(ctx, c, id, data)
}

func (s *countingStore) Create(ctx context.Context, c, id string, data map[string]interface{}) error {
	s.inc()
	return s.DocumentStore.Create(ctx, c, id, data)
}

func (s *countingStore) Update(ctx context.Context, c, id string, fields map[string]interface{}) error {
	s.inc()
	return s.DocumentStore.Update(ctx, c, id, fields)
}

func (s *countingStore) Delete(ctx context.Context, c, id string) error {
	s.inc()
	return s.DocumentStore.Delete(ctx, c, id)
}

func (s *countingStore) DeleteAll(ctx context.Context, c string) error {
	s.inc()
	return s.DocumentStore.DeleteAll(ctx, c)
}

type harness struct {
	svc    *Service
	mem    *docstore.MemoryStore
	remote *countingStore
	blobs  *blobstore.MemoryStore
	dir    *store.Directory
	now    time.Time
}

var testEpoch = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// newHarness wires the service to in-memory stores with the sync layer
// running, so every write is visible in the directory once it returns.
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		mem:   docstore.NewMemoryStore(),
		blobs: blobstore.NewMemoryStore(testBucket),
		dir:   store.NewDirectory(),
		now:   testEpoch,
	}
	h.remote = &countingStore{DocumentStore: h.mem}

	ctx, cancel := context.WithCancel(context.Background())
	watcher := syncer.New(h.mem, h.dir)
	watcher.Start(ctx)
	t.Cleanup(func() {
		watcher.Stop()
		cancel()
	})

	h.svc = NewService(h.remote, h.blobs, h.dir, NewSessionManager("test-secret", time.Hour))
	h.svc.Now = func() time.Time {
		h.now = h.now.Add(time.Second)
		return h.now
	}
	h.svc.sessions.Now = func() time.Time { return h.now }
	ids := 0
	h.svc.NewID = func() string {
		ids++
		return fmt.Sprintf("id-%03d", ids)
	}
	return h
}

// addUser stores a user directly, bypassing registration.
func (h *harness) addUser(t *testing.T, name, password string, leader bool) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := model.User{
		ID:             model.Slug(name),
		Name:           name,
		Role:           "Engineer",
		Specialization: "General",
		IsLeader:       leader,
		PasswordHash:   string(hash),
		CreatedAt:      testEpoch,
	}
	if err := h.mem.Set(context.Background(), docstore.CollectionUsers, u.ID, syncer.EncodeUser(u)); err != nil {
		t.Fatalf("store user: %v", err)
	}
	return u
}

// addTask stores a task as given, ids included.
func (h *harness) addTask(t *testing.T, task model.Task) {
	t.Helper()
	if err := h.mem.Set(context.Background(), docstore.CollectionTasks, task.ID, syncer.EncodeTask(task)); err != nil {
		t.Fatalf("store task: %v", err)
	}
}

func (h *harness) task(t *testing.T, id string) model.Task {
	t.Helper()
	ref, ok := h.dir.Snapshot().FindTask(id)
	if !ok {
		t.Fatalf("task %s not in directory", id)
	}
	return ref.Task
}

func leafTask(id, assignee string) model.Task {
	return model.Task{
		ID:         id,
		Title:      "Task " + id,
		AssignedTo: assignee,
		Status:     model.StatusToDo,
		Priority:   model.PriorityMedium,
		Phase:      "Phase 1",
		CreatedAt:  testEpoch,
		UpdatedAt:  testEpoch,
	}
}

func containerTask(id, assignee string, subs ...model.Task) model.Task {
	t := leafTask(id, assignee)
	t.SubTasks = subs
	return t
}
