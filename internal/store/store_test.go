package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendape/agenda-api/internal/model"
)

func event(id string) model.AgendaEvent {
	return model.AgendaEvent{
		ID:             id,
		SubmissionDate: model.InvalidDate,
		Title:          "Solicita JPS",
		StartTime:      model.InvalidTime,
		EndTime:        model.InvalidTime,
		Type:           "JPS",
	}
}

func TestStore_InsertNewestFirst(t *testing.T) {
	s := New()
	s.Insert(event("a"))
	s.Insert(event("b"))
	s.Insert(event("c"))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)
	assert.Equal(t, "a", snap[2].ID)
}

func TestStore_FindByID(t *testing.T) {
	s := New()
	s.Insert(event("a"))

	got, ok := s.FindByID("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = s.FindByID("missing")
	assert.False(t, ok)
}

func TestStore_FindReturnsCopy(t *testing.T) {
	s := New()
	s.Insert(event("a"))

	got, _ := s.FindByID("a")
	got.Title = "mutated"

	fresh, _ := s.FindByID("a")
	assert.Equal(t, "Solicita JPS", fresh.Title)
}

func TestStore_UpdateByID(t *testing.T) {
	s := New()
	s.Insert(event("a"))

	updated, ok := s.UpdateByID("a", func(ev *model.AgendaEvent) {
		ev.Title = "changed"
	})
	require.True(t, ok)
	assert.Equal(t, "changed", updated.Title)

	stored, _ := s.FindByID("a")
	assert.Equal(t, "changed", stored.Title)

	_, ok = s.UpdateByID("missing", func(ev *model.AgendaEvent) {})
	assert.False(t, ok)
}

func TestStore_UpdateByID_EmptyPatchLeavesEventIdentical(t *testing.T) {
	s := New()
	orig := event("a")
	s.Insert(orig)

	updated, ok := s.UpdateByID("a", func(ev *model.AgendaEvent) {})
	require.True(t, ok)
	assert.Equal(t, orig, updated)
}

func TestStore_DeleteByID(t *testing.T) {
	s := New()
	s.Insert(event("a"))
	s.Insert(event("b"))

	assert.False(t, s.DeleteByID("missing"))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.DeleteByID("a"))
	assert.Equal(t, 1, s.Len())

	_, ok := s.FindByID("a")
	assert.False(t, ok)
	_, ok = s.FindByID("b")
	assert.True(t, ok)
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	s := New()
	s.Insert(event("a"))

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	fresh, _ := s.FindByID("a")
	assert.Equal(t, "Solicita JPS", fresh.Title)
}
