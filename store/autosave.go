package store

import (
	"sync"
	"time"

	"notenexus/models"
)

// AutoSaver implements the editor's save-on-dirty-timeout: marking the
// session dirty schedules one delayed commit of the accumulated patch.
// There is never more than one pending commit; an explicit Save or Close
// cancels it.
type AutoSaver struct {
	mu      sync.Mutex
	delay   time.Duration
	commit  func(models.NotePatch)
	timer   *time.Timer
	pending models.NotePatch
	dirty   bool
	closed  bool
}

// NewAutoSaver creates an autosaver for one editing session, committing
// through fn.
func NewAutoSaver(delay time.Duration, fn func(models.NotePatch)) *AutoSaver {
	return &AutoSaver{delay: delay, commit: fn}
}

// MarkDirty merges the fields into the pending patch and arms the commit
// timer if it is not already running.
func (a *AutoSaver) MarkDirty(patch models.NotePatch) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	mergePatch(&a.pending, patch)
	if !a.dirty {
		a.dirty = true
		a.timer = time.AfterFunc(a.delay, a.fire)
	}
}

// Save cancels the pending timer and commits the accumulated patch now.
// No-op when the session is clean.
func (a *AutoSaver) Save() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	if !a.dirty || a.closed {
		a.mu.Unlock()
		return
	}
	patch := a.pending
	a.pending = models.NotePatch{}
	a.dirty = false
	a.mu.Unlock()

	a.commit(patch)
}

// Close discards any pending commit; nothing fires afterwards.
func (a *AutoSaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.dirty = false
	a.pending = models.NotePatch{}
	if a.timer != nil {
		a.timer.Stop()
	}
}

// Dirty reports whether a commit is pending.
func (a *AutoSaver) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

func (a *AutoSaver) fire() {
	a.mu.Lock()
	if !a.dirty || a.closed {
		a.mu.Unlock()
		return
	}
	patch := a.pending
	a.pending = models.NotePatch{}
	a.dirty = false
	a.mu.Unlock()

	a.commit(patch)
}

func mergePatch(dst *models.NotePatch, src models.NotePatch) {
	if src.Title != nil {
		dst.Title = src.Title
	}
	if src.Content != nil {
		dst.Content = src.Content
	}
	if src.IsPinned != nil {
		dst.IsPinned = src.IsPinned
	}
	if src.IsPasswordProtected != nil {
		dst.IsPasswordProtected = src.IsPasswordProtected
	}
	if src.Color != nil {
		dst.Color = src.Color
	}
	if src.LabelIDs != nil {
		dst.LabelIDs = src.LabelIDs
	}
	if src.Images != nil {
		dst.Images = src.Images
	}
	if src.SharedWith != nil {
		dst.SharedWith = src.SharedWith
	}
}
