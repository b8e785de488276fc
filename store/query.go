package store

import (
	"sort"
	"strings"

	"notenexus/models"
)

// NoteView is the derived, read-only projection the presentation layer
// renders: pinned notes first, each partition newest-first.
type NoteView struct {
	Pinned   []models.Note
	Unpinned []models.Note
}

// VisibleNotes applies the active label filters and search query, then
// partitions and sorts. The result is a snapshot of copies.
func (s *Notes) VisibleNotes() NoteView {
	s.mu.RLock()
	selected := make(map[string]struct{}, len(s.selected))
	for id := range s.selected {
		selected[id] = struct{}{}
	}
	query := s.query
	notes := make([]models.Note, 0, len(s.notes))
	for i := range s.notes {
		notes = append(notes, s.notes[i].Clone())
	}
	s.mu.RUnlock()

	return BuildView(FilterNotes(notes, selected, query))
}

// FilterNotes keeps notes that match the label filter set AND the search
// query. An empty filter set matches everything; label matching is an
// intersection test, so dangling label IDs on a note are harmless. The
// search is a case-insensitive substring match on title or content.
//
// The two predicates are independent, so application order is
// irrelevant.
func FilterNotes(notes []models.Note, selected map[string]struct{}, query string) []models.Note {
	out := make([]models.Note, 0, len(notes))
	q := strings.ToLower(query)
	for _, n := range notes {
		if !matchesLabels(&n, selected) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// BuildView partitions into pinned/unpinned and sorts each partition by
// UpdatedAt descending. The sort is stable, so equal timestamps keep
// their relative order.
func BuildView(notes []models.Note) NoteView {
	var view NoteView
	for _, n := range notes {
		if n.IsPinned {
			view.Pinned = append(view.Pinned, n)
		} else {
			view.Unpinned = append(view.Unpinned, n)
		}
	}
	sortByUpdated(view.Pinned)
	sortByUpdated(view.Unpinned)
	return view
}

func sortByUpdated(notes []models.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

func matchesLabels(n *models.Note, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	for _, id := range n.LabelIDs {
		if _, ok := selected[id]; ok {
			return true
		}
	}
	return false
}
