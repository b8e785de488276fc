package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notenexus/models"
	"notenexus/storage"
	"notenexus/utils"
)

// Notes owns the note and label collections for the active user plus the
// view mode, label filter set and search query. It is the single writer;
// every mutation happens under one mutex, so multi-step operations such
// as the label deletion cascade are visible as one state update.
//
// Unknown-ID mutations are silent no-ops: the store is idempotent by
// design and input validation belongs to the handlers.
type Notes struct {
	mu       sync.RWMutex
	user     *models.User
	notes    []models.Note
	labels   []models.Label
	viewMode models.ViewMode
	selected map[string]struct{}
	query    string

	persist    storage.Store
	log        *utils.Logger
	subscriber func(models.NoteEvent)
}

// NewNotes creates the notes store and restores the persisted view mode,
// which survives sessions independently of the user.
func NewNotes(persist storage.Store) *Notes {
	s := &Notes{
		viewMode: models.ViewModeGrid,
		selected: make(map[string]struct{}),
		persist:  persist,
		log:      utils.Log,
	}

	var mode models.ViewMode
	err := persist.Load(storage.SlotViewMode, &mode)
	if err == nil && (mode == models.ViewModeGrid || mode == models.ViewModeList) {
		s.viewMode = mode
	} else if err != nil && !errors.Is(err, storage.ErrSlotNotFound) {
		s.log.Error("Failed to restore view mode: %v", err)
	}

	return s
}

// Subscribe registers the single change-feed subscriber. Events are
// delivered synchronously after the mutation commits.
func (s *Notes) Subscribe(fn func(models.NoteEvent)) {
	s.mu.Lock()
	s.subscriber = fn
	s.mu.Unlock()
}

// SetUser transitions the collections: seeding fixtures when a user
// appears, clearing both collections when the user goes away.
func (s *Notes) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	if user != nil {
		s.notes, s.labels = FixtureData(user.ID)
		return
	}
	s.notes = nil
	s.labels = nil
}

// AddNote assigns a fresh ID and equal timestamps, then prepends so the
// collection stays newest-first at insertion. ID, CreatedAt and
// UpdatedAt on the argument are ignored.
func (s *Notes) AddNote(note models.Note) models.Note {
	now := time.Now()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now

	s.mu.Lock()
	s.notes = append([]models.Note{note}, s.notes...)
	s.mu.Unlock()

	s.emit(models.NoteEvent{Type: "created", Note: &note, ID: note.ID})
	return note
}

// UpdateNote merges the patch into the matching note and bumps
// UpdatedAt. Silent no-op when the ID is unknown.
func (s *Notes) UpdateNote(id string, patch models.NotePatch) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	patch.Apply(&s.notes[i])
	s.notes[i].UpdatedAt = time.Now()
	updated := s.notes[i].Clone()
	s.mu.Unlock()

	s.emit(models.NoteEvent{Type: "updated", Note: &updated, ID: id})
}

// DeleteNote removes the matching note; no-op when absent.
func (s *Notes) DeleteNote(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	s.mu.Unlock()

	s.emit(models.NoteEvent{Type: "deleted", ID: id})
}

// TogglePin flips the pin flag and bumps UpdatedAt.
func (s *Notes) TogglePin(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.notes[i].IsPinned = !s.notes[i].IsPinned
	s.notes[i].UpdatedAt = time.Now()
	updated := s.notes[i].Clone()
	s.mu.Unlock()

	s.emit(models.NoteEvent{Type: "updated", Note: &updated, ID: id})
}

// AddLabel appends a new label for the active user. Returns false when
// nobody is logged in.
func (s *Notes) AddLabel(name string) (models.Label, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.Label{}, false
	}
	label := models.Label{
		ID:     uuid.New().String(),
		UserID: s.user.ID,
		Name:   name,
	}
	s.labels = append(s.labels, label)
	return label, true
}

// UpdateLabel renames the label in place.
func (s *Notes) UpdateLabel(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.labels {
		if s.labels[i].ID == id {
			s.labels[i].Name = name
			return
		}
	}
}

// DeleteLabel removes the label and strips its ID from every note's
// label set. Both steps commit under one lock acquisition, so observers
// never see the intermediate state.
func (s *Notes) DeleteLabel(id string) {
	s.mu.Lock()

	kept := s.labels[:0]
	for _, l := range s.labels {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.labels = kept

	var touched []models.Note
	for i := range s.notes {
		had := false
		ids := s.notes[i].LabelIDs[:0]
		for _, lid := range s.notes[i].LabelIDs {
			if lid != id {
				ids = append(ids, lid)
			} else {
				had = true
			}
		}
		s.notes[i].LabelIDs = ids
		if had {
			touched = append(touched, s.notes[i].Clone())
		}
	}

	delete(s.selected, id)
	s.mu.Unlock()

	for i := range touched {
		s.emit(models.NoteEvent{Type: "updated", Note: &touched[i], ID: touched[i].ID})
	}
}

// ToggleViewMode flips between grid and list and persists the choice.
func (s *Notes) ToggleViewMode() models.ViewMode {
	s.mu.Lock()
	s.viewMode = s.viewMode.Toggle()
	mode := s.viewMode
	s.mu.Unlock()

	if err := s.persist.Save(storage.SlotViewMode, mode); err != nil {
		s.log.Error("Failed to persist view mode: %v", err)
	}
	return mode
}

// ToggleLabelFilter adds the label to the active filter set if absent,
// removes it if present.
func (s *Notes) ToggleLabelFilter(labelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[labelID]; ok {
		delete(s.selected, labelID)
		return
	}
	s.selected[labelID] = struct{}{}
}

// ClearLabelFilters empties the filter set.
func (s *Notes) ClearLabelFilters() {
	s.mu.Lock()
	s.selected = make(map[string]struct{})
	s.mu.Unlock()
}

// SetSearchQuery replaces the active search string verbatim.
func (s *Notes) SetSearchQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
}

// ShareNote appends a shared-user entry with a generated placeholder ID
// and a display name derived from the email's local part. The store does
// not validate the email or reject duplicates; that is the handler's
// job.
func (s *Notes) ShareNote(noteID, email string, permission models.Permission) {
	shared := models.SharedUser{
		UserID:      "shared-" + uuid.New().String(),
		Email:       email,
		DisplayName: emailLocalPart(email),
		Permission:  permission,
	}

	s.mu.Lock()
	i := s.indexOf(noteID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.notes[i].SharedWith = append(s.notes[i].SharedWith, shared)
	s.notes[i].UpdatedAt = time.Now()
	updated := s.notes[i].Clone()
	s.mu.Unlock()

	s.emit(models.NoteEvent{Type: "updated", Note: &updated, ID: noteID})
}

// RemoveSharedUser removes the matching shared-user entry.
func (s *Notes) RemoveSharedUser(noteID, userID string) {
	s.mu.Lock()
	i := s.indexOf(noteID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	kept := s.notes[i].SharedWith[:0]
	for _, su := range s.notes[i].SharedWith {
		if su.UserID != userID {
			kept = append(kept, su)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	s.notes[i].SharedWith = kept
	s.notes[i].UpdatedAt = time.Now()
	updated := s.notes[i].Clone()
	s.mu.Unlock()

	s.emit(models.NoteEvent{Type: "updated", Note: &updated, ID: noteID})
}

// Note returns a copy of the matching note.
func (s *Notes) Note(id string) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, false
	}
	return s.notes[i].Clone(), true
}

// NotesList returns copies of all notes in insertion order.
func (s *Notes) NotesList() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Note, 0, len(s.notes))
	for i := range s.notes {
		out = append(out, s.notes[i].Clone())
	}
	return out
}

// Labels returns copies of all labels.
func (s *Notes) Labels() []models.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Label(nil), s.labels...)
}

// LabelsByID returns a lookup map for badge resolution in templates.
func (s *Notes) LabelsByID() map[string]models.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := make(map[string]models.Label, len(s.labels))
	for _, l := range s.labels {
		m[l.ID] = l
	}
	return m
}

// ViewMode returns the active layout mode.
func (s *Notes) ViewMode() models.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// SelectedLabels returns the active filter set.
func (s *Notes) SelectedLabels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	return out
}

// SearchQuery returns the active search string.
func (s *Notes) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// indexOf must be called with the lock held.
func (s *Notes) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Notes) emit(ev models.NoteEvent) {
	s.mu.RLock()
	fn := s.subscriber
	s.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
