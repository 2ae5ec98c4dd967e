package docstore

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process DocumentStore. Watch handlers run
// synchronously after each committed write, in commit order, and must not
// write back to the store.
type MemoryStore struct {
	mu          sync.Mutex
	deliver     sync.Mutex
	collections map[string]map[string]map[string]interface{}
	watchers    map[int]*memoryWatch
	nextWatch   int
}

type memoryWatch struct {
	query  Query
	handle SnapshotHandler
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
		watchers:    make(map[int]*memoryWatch),
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.collections[collection][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, Data: copyMap(data)}, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	return s.write(collection, func(docs map[string]map[string]interface{}) error {
		docs[id] = copyMap(data)
		return nil
	})
}

func (s *MemoryStore) Create(ctx context.Context, collection, id string, data map[string]interface{}) error {
	return s.write(collection, func(docs map[string]map[string]interface{}) error {
		if _, exists := docs[id]; exists {
			return ErrAlreadyExists
		}
		docs[id] = copyMap(data)
		return nil
	})
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	return s.write(collection, func(docs map[string]map[string]interface{}) error {
		doc, ok := docs[id]
		if !ok {
			return ErrNotFound
		}
		for k, v := range fields {
			doc[k] = copyValue(v)
		}
		return nil
	})
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	return s.write(collection, func(docs map[string]map[string]interface{}) error {
		delete(docs, id)
		return nil
	})
}

func (s *MemoryStore) DeleteAll(ctx context.Context, collection string) error {
	return s.write(collection, func(docs map[string]map[string]interface{}) error {
		for id := range docs {
			delete(docs, id)
		}
		return nil
	})
}

func (s *MemoryStore) Watch(ctx context.Context, q Query, handle SnapshotHandler) func() {
	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = &memoryWatch{query: q, handle: handle}
	records := s.queryLocked(q)
	s.deliver.Lock()
	s.mu.Unlock()
	handle(records, nil)
	s.deliver.Unlock()

	var once sync.Once
	stopped := make(chan struct{})
	stop := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
			close(stopped)
		})
	}
	if done := ctx.Done(); done != nil {
		go func() {
			select {
			case <-done:
				stop()
			case <-stopped:
			}
		}()
	}
	return stop
}

// Len reports how many documents a collection holds.
func (s *MemoryStore) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collection])
}

func (s *MemoryStore) write(collection string, fn func(map[string]map[string]interface{}) error) error {
	s.mu.Lock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]map[string]interface{})
		s.collections[collection] = docs
	}
	if err := fn(docs); err != nil {
		s.mu.Unlock()
		return err
	}

	type pending struct {
		handle  SnapshotHandler
		records []Record
	}
	var notify []pending
	for _, w := range s.watchers {
		if w.query.Collection == collection {
			notify = append(notify, pending{handle: w.handle, records: s.queryLocked(w.query)})
		}
	}
	s.deliver.Lock()
	s.mu.Unlock()
	defer s.deliver.Unlock()
	for _, n := range notify {
		n.handle(n.records, nil)
	}
	return nil
}

// queryLocked mirrors Firestore ordering: documents missing the order field
// are left out and ties fall back to the document id.
func (s *MemoryStore) queryLocked(q Query) []Record {
	records := make([]Record, 0, len(s.collections[q.Collection]))
	for id, data := range s.collections[q.Collection] {
		if q.OrderBy != "" {
			if _, ok := data[q.OrderBy]; !ok {
				continue
			}
		}
		records = append(records, Record{ID: id, Data: copyMap(data)})
	}
	sort.SliceStable(records, func(i, j int) bool {
		c := 0
		if q.OrderBy != "" {
			c = compareValues(records[i].Data[q.OrderBy], records[j].Data[q.OrderBy])
			if q.Descending {
				c = -c
			}
		}
		if c == 0 {
			return records[i].ID < records[j].ID
		}
		return c < 0
	})
	return records
}

func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return 0
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case map[string]interface{}:
		return copyMap(tv)
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			out[i] = copyValue(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			out[i] = copyMap(e)
		}
		return out
	}
	return v
}
