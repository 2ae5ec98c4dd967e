// Package store holds the Directory Store: the latest known snapshot of every
// synchronized collection, replaced wholesale by the sync layer.
package store

import (
	"sync"
	"time"

	"teamhub/model"
)

// Collection identifies one cached collection.
type Collection string

const (
	Tasks          Collection = "tasks"
	Announcements  Collection = "announcements"
	ChatMessages   Collection = "chatMessages"
	Documents      Collection = "documents"
	Users          Collection = "users"
	PasswordResets Collection = "passwordResetRequests"
)

// Collections lists every collection the directory caches.
var Collections = []Collection{Tasks, Announcements, ChatMessages, Documents, Users, PasswordResets}

// State is a point-in-time copy of the directory. Callers own it.
type State struct {
	Users          []model.User
	Tasks          []model.Task
	Announcements  []model.Announcement
	ChatMessages   []model.ChatMessage
	Documents      []model.Document
	PasswordResets []model.PasswordResetRequest
	Version        map[Collection]uint64
}

// Event announces that a collection was replaced. Snapshot holds the new
// content of that collection only.
type Event struct {
	Collection Collection
	Version    uint64
	At         time.Time
	Snapshot   State
}

// Directory is safe for concurrent use.
type Directory struct {
	mu      sync.RWMutex
	state   State
	subs    map[Collection]map[int]chan Event
	nextSub int
	now     func() time.Time
}

func NewDirectory() *Directory {
	return &Directory{
		state: State{Version: make(map[Collection]uint64)},
		subs:  make(map[Collection]map[int]chan Event),
		now:   time.Now,
	}
}

// Snapshot returns a deep copy of the whole directory.
func (d *Directory) Snapshot() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.clone()
}

func (d *Directory) ReplaceTasks(tasks []model.Task) {
	d.replace(Tasks, func(s *State) { s.Tasks = cloneTasks(tasks) })
}

func (d *Directory) ReplaceAnnouncements(items []model.Announcement) {
	d.replace(Announcements, func(s *State) { s.Announcements = append([]model.Announcement(nil), items...) })
}

func (d *Directory) ReplaceChatMessages(items []model.ChatMessage) {
	d.replace(ChatMessages, func(s *State) { s.ChatMessages = append([]model.ChatMessage(nil), items...) })
}

func (d *Directory) ReplaceDocuments(items []model.Document) {
	d.replace(Documents, func(s *State) { s.Documents = append([]model.Document(nil), items...) })
}

func (d *Directory) ReplaceUsers(items []model.User) {
	d.replace(Users, func(s *State) { s.Users = append([]model.User(nil), items...) })
}

func (d *Directory) ReplacePasswordResets(items []model.PasswordResetRequest) {
	d.replace(PasswordResets, func(s *State) { s.PasswordResets = clonePasswordResets(items) })
}

func (d *Directory) replace(c Collection, set func(*State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	set(&d.state)
	d.state.Version[c]++
	if len(d.subs[c]) == 0 {
		return
	}
	ev := Event{Collection: c, Version: d.state.Version[c], At: d.now(), Snapshot: d.state.collection(c)}
	for _, ch := range d.subs[c] {
		publish(ch, ev)
	}
}

// Subscribe returns a channel of replacement events for one collection. The
// channel keeps only the newest event: a slow reader skips intermediate
// snapshots but never sees a partial one. cancel closes the channel.
func (d *Directory) Subscribe(c Collection) (<-chan Event, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan Event, 1)
	id := d.nextSub
	d.nextSub++
	if d.subs[c] == nil {
		d.subs[c] = make(map[int]chan Event)
	}
	d.subs[c][id] = ch
	if d.state.Version[c] > 0 {
		ch <- Event{Collection: c, Version: d.state.Version[c], At: d.now(), Snapshot: d.state.collection(c)}
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.subs[c], id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish is called with d.mu held, so it is the only sender on ch.
func publish(ch chan Event, ev Event) {
	select {
	case <-ch:
	default:
	}
	ch <- ev
}

func (s State) clone() State {
	out := State{
		Users:          append([]model.User(nil), s.Users...),
		Tasks:          cloneTasks(s.Tasks),
		Announcements:  append([]model.Announcement(nil), s.Announcements...),
		ChatMessages:   append([]model.ChatMessage(nil), s.ChatMessages...),
		Documents:      append([]model.Document(nil), s.Documents...),
		PasswordResets: clonePasswordResets(s.PasswordResets),
		Version:        make(map[Collection]uint64, len(s.Version)),
	}
	for k, v := range s.Version {
		out.Version[k] = v
	}
	return out
}

// collection copies only the slice belonging to c.
func (s State) collection(c Collection) State {
	out := State{Version: map[Collection]uint64{c: s.Version[c]}}
	switch c {
	case Tasks:
		out.Tasks = cloneTasks(s.Tasks)
	case Announcements:
		out.Announcements = append([]model.Announcement(nil), s.Announcements...)
	case ChatMessages:
		out.ChatMessages = append([]model.ChatMessage(nil), s.ChatMessages...)
	case Documents:
		out.Documents = append([]model.Document(nil), s.Documents...)
	case Users:
		out.Users = append([]model.User(nil), s.Users...)
	case PasswordResets:
		out.PasswordResets = clonePasswordResets(s.PasswordResets)
	}
	return out
}

func cloneTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return nil
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func clonePasswordResets(items []model.PasswordResetRequest) []model.PasswordResetRequest {
	if items == nil {
		return nil
	}
	out := make([]model.PasswordResetRequest, len(items))
	for i, r := range items {
		if r.ResolvedAt != nil {
			at := *r.ResolvedAt
			r.ResolvedAt = &at
		}
		out[i] = r
	}
	return out
}
