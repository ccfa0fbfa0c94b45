// Package audit records who changed what. Entries are append-only: nothing in
// this module updates or deletes them.
package audit

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionImport Action = "import"
	ActionLogin  Action = "login"
)

// Entry is one audit_log row.
type Entry struct {
	ID        int64
	UserID    *int64
	Action    Action
	TableName string
	RecordID  *int64
	Changes   map[string]any
	Timestamp time.Time
}

// Recorder writes an entry using the caller's transaction so the audit row
// commits or rolls back with the change it describes.
type Recorder interface {
	Record(ctx context.Context, q database.Querier, e *Entry) error
}

type actorKey struct{}

// WithActor attaches the authenticated user id to ctx.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the user id set by WithActor, if any.
func ActorFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok
}

// NewEntry builds an entry for the actor in ctx.
func NewEntry(ctx context.Context, action Action, table string, recordID int64, changes map[string]any) *Entry {
	e := &Entry{
		Action:    action,
		TableName: table,
		RecordID:  &recordID,
		Changes:   changes,
	}

	if id, ok := ActorFrom(ctx); ok {
		e.UserID = &id
	}

	return e
}

// Change is the before/after pair stored for an updated field.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Diff returns the fields whose values differ between before and after.
// Keys present on only one side are reported with a nil counterpart.
func Diff(before, after map[string]any) map[string]any {
	out := make(map[string]any)

	for k, nv := range after {
		ov, ok := before[k]
		if ok && ov == nv {
			continue
		}

		out[k] = Change{Old: ov, New: nv}
	}

	for k, ov := range before {
		if _, ok := after[k]; !ok {
			out[k] = Change{Old: ov, New: nil}
		}
	}

	return out
}

type ListFilter struct {
	TableName *string
	RecordID  *int64
	Offset    int
	Limit     int
}

//go:generate mockgen -source=audit.go -destination=repository_mock.go -package=audit
type Repository interface {
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}
