package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notenexus/models"
)

func queryFixture() []models.Note {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Note{
		{ID: "n1", Title: "Groceries", Content: "milk and eggs", LabelIDs: []string{"home"}, UpdatedAt: base},
		{ID: "n2", Title: "Standup notes", Content: "discuss milk pricing", IsPinned: true, LabelIDs: []string{"work"}, UpdatedAt: base.Add(time.Hour)},
		{ID: "n3", Title: "Ideas", Content: "start a blog", LabelIDs: []string{"work", "home"}, UpdatedAt: base.Add(2 * time.Hour)},
		{ID: "n4", Title: "Dangling", Content: "label was deleted", LabelIDs: []string{"ghost"}, UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "n5", Title: "Untagged", Content: "nothing here", UpdatedAt: base.Add(4 * time.Hour)},
	}
}

func ids(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestFilterNotesByLabel(t *testing.T) {
	notes := queryFixture()
	selected := map[string]struct{}{"work": {}}

	got := FilterNotes(notes, selected, "")
	assert.ElementsMatch(t, []string{"n2", "n3"}, ids(got))
}

func TestFilterNotesEmptySetMatchesEverything(t *testing.T) {
	notes := queryFixture()

	got := FilterNotes(notes, nil, "")
	assert.Len(t, got, len(notes), "dangling label IDs are harmless")
}

func TestFilterNotesSearchIsCaseInsensitive(t *testing.T) {
	notes := queryFixture()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match", "groceries", []string{"n1"}},
		{"content match", "MILK", []string{"n1", "n2"}},
		{"no match", "zebra", []string{}},
		{"empty query matches all", "", []string{"n1", "n2", "n3", "n4", "n5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterNotes(notes, nil, tt.query)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestFilterPredicatesCommute(t *testing.T) {
	notes := queryFixture()
	selected := map[string]struct{}{"work": {}, "home": {}}
	query := "milk"

	labelFirst := FilterNotes(FilterNotes(notes, selected, ""), nil, query)
	searchFirst := FilterNotes(FilterNotes(notes, nil, query), selected, "")

	assert.Equal(t, ids(labelFirst), ids(searchFirst))
}

func TestBuildViewPartitionsAndSorts(t *testing.T) {
	notes := queryFixture()

	view := BuildView(notes)

	require.Len(t, view.Pinned, 1)
	assert.Equal(t, "n2", view.Pinned[0].ID, "pinned notes precede unpinned regardless of timestamps")

	require.Len(t, view.Unpinned, 4)
	assert.Equal(t, []string{"n5", "n4", "n3", "n1"}, ids(view.Unpinned), "newest first within a partition")
}

func TestBuildViewSortIsStable(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	notes := []models.Note{
		{ID: "a", UpdatedAt: ts},
		{ID: "b", UpdatedAt: ts},
		{ID: "c", UpdatedAt: ts},
	}

	view := BuildView(notes)
	assert.Equal(t, []string{"a", "b", "c"}, ids(view.Unpinned), "equal timestamps keep input order")
}
