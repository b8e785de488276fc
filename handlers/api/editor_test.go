package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notenexus/models"
	"notenexus/storage"
	"notenexus/store"
)

func newTestEditor(t *testing.T, delay time.Duration) (*EditorHandler, *store.Notes, models.Note) {
	t.Helper()

	notes := store.NewNotes(storage.NewMemoryStore())
	user := store.DemoUser()
	notes.SetUser(&user)
	note := notes.AddNote(models.Note{Title: "draft"})

	return NewEditorHandler(notes, delay), notes, note
}

func (h *EditorHandler) sessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func TestEditorSessionReapedAfterAutosave(t *testing.T) {
	h, notes, note := newTestEditor(t, 20*time.Millisecond)

	title := "autosaved"
	h.saver(note.ID).MarkDirty(models.NotePatch{Title: &title})
	require.Equal(t, 1, h.sessionCount())

	require.Eventually(t, func() bool {
		return h.sessionCount() == 0
	}, time.Second, 5*time.Millisecond, "abandoned editors must not leak sessions")

	fresh, ok := notes.Note(note.ID)
	require.True(t, ok)
	assert.Equal(t, "autosaved", fresh.Title)
}

func TestEditorSessionReapedAfterExplicitSave(t *testing.T) {
	h, notes, note := newTestEditor(t, time.Minute)

	title := "saved now"
	s := h.saver(note.ID)
	s.MarkDirty(models.NotePatch{Title: &title})
	s.Save()

	assert.Equal(t, 0, h.sessionCount())

	fresh, _ := notes.Note(note.ID)
	assert.Equal(t, "saved now", fresh.Title)
}

func TestEditorSessionSurvivesEditsDuringCommit(t *testing.T) {
	h, _, note := newTestEditor(t, 20*time.Millisecond)

	title := "first"
	h.saver(note.ID).MarkDirty(models.NotePatch{Title: &title})

	// New edits re-dirty the same session; it lives until they commit.
	second := "second"
	h.saver(note.ID).MarkDirty(models.NotePatch{Content: &second})

	require.Eventually(t, func() bool {
		return h.sessionCount() == 0
	}, time.Second, 5*time.Millisecond)
}
