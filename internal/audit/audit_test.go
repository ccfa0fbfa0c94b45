package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
)

func TestDiff(t *testing.T) {
	before := map[string]any{"name": "Austin PC", "location": "TX001", "status": "active"}
	after := map[string]any{"name": "Austin PC", "location": "TX002", "status": "inactive"}

	got := audit.Diff(before, after)

	assert.Len(t, got, 2)
	assert.Equal(t, audit.Change{Old: "TX001", New: "TX002"}, got["location"])
	assert.Equal(t, audit.Change{Old: "active", New: "inactive"}, got["status"])
	assert.NotContains(t, got, "name")
}

func TestDiff_AddedAndRemovedKeys(t *testing.T) {
	got := audit.Diff(map[string]any{"notes": "x"}, map[string]any{"budget_amount": "10.00"})

	assert.Equal(t, audit.Change{Old: nil, New: "10.00"}, got["budget_amount"])
	assert.Equal(t, audit.Change{Old: "x", New: nil}, got["notes"])
}

func TestNewEntry_Actor(t *testing.T) {
	anon := audit.NewEntry(context.Background(), audit.ActionCreate, "practices", 3, nil)
	assert.Nil(t, anon.UserID)
	require.NotNil(t, anon.RecordID)
	assert.Equal(t, int64(3), *anon.RecordID)

	ctx := audit.WithActor(context.Background(), 42)
	e := audit.NewEntry(ctx, audit.ActionDelete, "practices", 3, nil)
	require.NotNil(t, e.UserID)
	assert.Equal(t, int64(42), *e.UserID)
	assert.Equal(t, audit.ActionDelete, e.Action)
}
