package syncer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"teamhub/docstore"
	"teamhub/model"
)

var errMissing = errors.New("missing")

// ToTime converts any timestamp representation the document store or an
// older client may have written: a native time, a serialized string, a
// protobuf timestamp, a {seconds, nanos} map or epoch milliseconds.
func ToTime(v interface{}) (time.Time, error) {
	switch tv := v.(type) {
	case nil:
		return time.Time{}, errMissing
	case time.Time:
		return tv, nil
	case *time.Time:
		if tv == nil {
			return time.Time{}, errMissing
		}
		return *tv, nil
	case *timestamppb.Timestamp:
		if tv == nil {
			return time.Time{}, errMissing
		}
		if err := tv.CheckValid(); err != nil {
			return time.Time{}, err
		}
		return tv.AsTime(), nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z07:00", "2006-01-02"} {
			if t, err := time.Parse(layout, tv); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized time %q", tv)
	case map[string]interface{}:
		secs, ok := firstNumber(tv, "seconds", "_seconds")
		if !ok {
			return time.Time{}, fmt.Errorf("timestamp map without seconds")
		}
		nanos, _ := firstNumber(tv, "nanoseconds", "_nanoseconds", "nanos")
		return time.Unix(int64(secs), int64(nanos)).UTC(), nil
	case int64:
		return time.UnixMilli(tv).UTC(), nil
	case int:
		return time.UnixMilli(int64(tv)).UTC(), nil
	case float64:
		return time.UnixMilli(int64(math.Round(tv))).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported time type %T", v)
}

func firstNumber(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch n := m[k].(type) {
		case int64:
			return float64(n), true
		case int:
			return float64(n), true
		case float64:
			return n, true
		}
	}
	return 0, false
}

type fields map[string]interface{}

func (f fields) str(key string) string {
	s, _ := f[key].(string)
	return s
}

func (f fields) boolean(key string) bool {
	b, _ := f[key].(bool)
	return b
}

func (f fields) integer(key string) int {
	switch n := f[key].(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(math.Round(n))
	}
	return 0
}

func (f fields) timestamp(key string) (time.Time, error) {
	t, err := ToTime(f[key])
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

// DecodeTask maps a task record, including its embedded subtasks. The record
// id wins over any id stored in the data.
func DecodeTask(rec docstore.Record) (model.Task, error) {
	t, err := decodeTaskFields(fields(rec.Data))
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: %w", rec.ID, err)
	}
	t.ID = rec.ID
	return t, nil
}

func decodeTaskFields(f fields) (model.Task, error) {
	t := model.Task{
		ID:          f.str("id"),
		Title:       f.str("title"),
		Description: f.str("description"),
		AssignedTo:  f.str("assignedTo"),
		Status:      model.TaskStatus(f.str("status")),
		Priority:    model.TaskPriority(f.str("priority")),
		Progress:    f.integer("progress"),
		Phase:       f.str("phase"),
		SubPhase:    f.str("subPhase"),
	}
	var err error
	if t.CreatedAt, err = f.timestamp("createdAt"); err != nil {
		return model.Task{}, err
	}
	if t.UpdatedAt, err = f.timestamp("updatedAt"); err != nil {
		return model.Task{}, err
	}
	raw, ok := f["subTasks"]
	if !ok || raw == nil {
		return t, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return model.Task{}, fmt.Errorf("subTasks: unexpected %T", raw)
	}
	t.SubTasks = make([]model.Task, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return model.Task{}, fmt.Errorf("subTasks[%d]: unexpected %T", i, item)
		}
		st, err := decodeTaskFields(fields(m))
		if err != nil {
			return model.Task{}, fmt.Errorf("subTasks[%d]: %w", i, err)
		}
		// Depth is capped at one level of nesting.
		st.SubTasks = nil
		t.SubTasks = append(t.SubTasks, st)
	}
	return t, nil
}

// EncodeTask is the inverse of DecodeTask. The top-level id lives in the
// document key; subtasks carry theirs inline.
func EncodeTask(t model.Task) map[string]interface{} {
	m := encodeTaskFields(t)
	delete(m, "id")
	if len(t.SubTasks) > 0 {
		m["subTasks"] = EncodeSubTasks(t.SubTasks)
	}
	return m
}

// EncodeSubTasks renders a subtask array for a parent's subTasks field.
func EncodeSubTasks(subs []model.Task) []interface{} {
	out := make([]interface{}, 0, len(subs))
	for _, st := range subs {
		out = append(out, encodeTaskFields(st))
	}
	return out
}

func encodeTaskFields(t model.Task) map[string]interface{} {
	m := map[string]interface{}{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"assignedTo":  t.AssignedTo,
		"status":      string(t.Status),
		"priority":    string(t.Priority),
		"progress":    int64(t.Progress),
		"phase":       t.Phase,
		"createdAt":   t.CreatedAt,
		"updatedAt":   t.UpdatedAt,
	}
	if t.SubPhase != "" {
		m["subPhase"] = t.SubPhase
	}
	return m
}

func DecodeAnnouncement(rec docstore.Record) (model.Announcement, error) {
	f := fields(rec.Data)
	ts, err := f.timestamp("timestamp")
	if err != nil {
		return model.Announcement{}, fmt.Errorf("announcement %s: %w", rec.ID, err)
	}
	return model.Announcement{
		ID:         rec.ID,
		Title:      f.str("title"),
		Content:    f.str("content"),
		AuthorID:   f.str("authorId"),
		AuthorName: f.str("authorName"),
		Timestamp:  ts,
	}, nil
}

func EncodeAnnouncement(a model.Announcement) map[string]interface{} {
	return map[string]interface{}{
		"title":      a.Title,
		"content":    a.Content,
		"authorId":   a.AuthorID,
		"authorName": a.AuthorName,
		"timestamp":  a.Timestamp,
	}
}

func DecodeChatMessage(rec docstore.Record) (model.ChatMessage, error) {
	f := fields(rec.Data)
	ts, err := f.timestamp("timestamp")
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("chat message %s: %w", rec.ID, err)
	}
	return model.ChatMessage{
		ID:        rec.ID,
		UserID:    f.str("userId"),
		UserName:  f.str("userName"),
		Message:   f.str("message"),
		Timestamp: ts,
		IsAI:      f.boolean("isAI"),
	}, nil
}

func EncodeChatMessage(m model.ChatMessage) map[string]interface{} {
	out := map[string]interface{}{
		"userId":    m.UserID,
		"userName":  m.UserName,
		"message":   m.Message,
		"timestamp": m.Timestamp,
	}
	if m.IsAI {
		out["isAI"] = true
	}
	return out
}

func DecodeDocument(rec docstore.Record) (model.Document, error) {
	f := fields(rec.Data)
	at, err := f.timestamp("uploadedAt")
	if err != nil {
		return model.Document{}, fmt.Errorf("document %s: %w", rec.ID, err)
	}
	return model.Document{
		ID:          rec.ID,
		Title:       f.str("title"),
		Category:    f.str("category"),
		Description: f.str("description"),
		FileName:    f.str("fileName"),
		FileSize:    f.str("fileSize"),
		UploadedBy:  f.str("uploadedBy"),
		UploadedAt:  at,
		FileURL:     f.str("fileUrl"),
		FileType:    f.str("fileType"),
	}, nil
}

func EncodeDocument(d model.Document) map[string]interface{} {
	m := map[string]interface{}{
		"title":       d.Title,
		"category":    d.Category,
		"description": d.Description,
		"fileName":    d.FileName,
		"fileSize":    d.FileSize,
		"uploadedBy":  d.UploadedBy,
		"uploadedAt":  d.UploadedAt,
		"fileType":    d.FileType,
	}
	if d.FileURL != "" {
		m["fileUrl"] = d.FileURL
	}
	return m
}

func DecodeUser(rec docstore.Record) (model.User, error) {
	f := fields(rec.Data)
	created, err := f.timestamp("createdAt")
	if err != nil {
		return model.User{}, fmt.Errorf("user %s: %w", rec.ID, err)
	}
	return model.User{
		ID:             rec.ID,
		Name:           f.str("name"),
		Role:           f.str("role"),
		Specialization: f.str("specialization"),
		IsLeader:       f.boolean("isLeader"),
		PasswordHash:   f.str("passwordHash"),
		CreatedAt:      created,
	}, nil
}

func EncodeUser(u model.User) map[string]interface{} {
	return map[string]interface{}{
		"name":           u.Name,
		"role":           u.Role,
		"specialization": u.Specialization,
		"isLeader":       u.IsLeader,
		"passwordHash":   u.PasswordHash,
		"createdAt":      u.CreatedAt,
	}
}

func DecodePasswordReset(rec docstore.Record) (model.PasswordResetRequest, error) {
	f := fields(rec.Data)
	at, err := f.timestamp("requestedAt")
	if err != nil {
		return model.PasswordResetRequest{}, fmt.Errorf("password reset %s: %w", rec.ID, err)
	}
	r := model.PasswordResetRequest{
		ID:              rec.ID,
		UserID:          f.str("userId"),
		UserName:        f.str("userName"),
		RequestedAt:     at,
		Status:          model.ResetStatus(f.str("status")),
		NewPasswordHash: f.str("newPasswordHash"),
		ResolvedBy:      f.str("resolvedBy"),
	}
	if _, ok := f["resolvedAt"]; ok {
		resolved, err := f.timestamp("resolvedAt")
		if err != nil {
			return model.PasswordResetRequest{}, fmt.Errorf("password reset %s: %w", rec.ID, err)
		}
		r.ResolvedAt = &resolved
	}
	return r, nil
}

func EncodePasswordReset(r model.PasswordResetRequest) map[string]interface{} {
	m := map[string]interface{}{
		"userId":          r.UserID,
		"userName":        r.UserName,
		"requestedAt":     r.RequestedAt,
		"status":          string(r.Status),
		"newPasswordHash": r.NewPasswordHash,
	}
	if r.ResolvedAt != nil {
		m["resolvedAt"] = *r.ResolvedAt
		m["resolvedBy"] = r.ResolvedBy
	}
	return m
}
