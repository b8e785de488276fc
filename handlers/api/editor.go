package api

import (
	"sync"
	"time"

	"notenexus/models"
	"notenexus/store"
	"notenexus/utils"

	"github.com/gofiber/fiber/v2"
)

// EditorHandler manages autosave sessions for open note editors. Each
// note gets at most one AutoSaver; marking it dirty schedules a delayed
// commit, an explicit save commits now, closing the editor discards.
type EditorHandler struct {
	notes *store.Notes
	delay time.Duration

	mu       sync.Mutex
	sessions map[string]*store.AutoSaver
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(notes *store.Notes, delay time.Duration) *EditorHandler {
	return &EditorHandler{
		notes:    notes,
		delay:    delay,
		sessions: make(map[string]*store.AutoSaver),
	}
}

func (h *EditorHandler) saver(noteID string) *store.AutoSaver {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[noteID]; ok {
		return s
	}
	var s *store.AutoSaver
	s = store.NewAutoSaver(h.delay, func(patch models.NotePatch) {
		h.notes.UpdateNote(noteID, patch)
		h.reap(noteID, s)
	})
	h.sessions[noteID] = s
	return s
}

// reap drops a session whose commit just fired, unless new edits
// arrived in the meantime. Editors abandoned without an explicit Close
// are cleaned up this way.
func (h *EditorHandler) reap(noteID string, s *store.AutoSaver) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.sessions[noteID]; ok && cur == s && !s.Dirty() {
		delete(h.sessions, noteID)
	}
}

// MarkDirty accumulates edits and arms the autosave timer
func (h *EditorHandler) MarkDirty(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.notes.Note(id); !ok {
		return utils.NotFoundError("Note not found", nil)
	}

	var patch models.NotePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	h.saver(id).MarkDirty(patch)

	return c.JSON(fiber.Map{
		"success": true,
		"dirty":   true,
	})
}

// Save commits any pending edits immediately
func (h *EditorHandler) Save(c *fiber.Ctx) error {
	id := c.Params("id")

	h.mu.Lock()
	s, ok := h.sessions[id]
	h.mu.Unlock()
	if ok {
		s.Save()
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// Close tears an editor session down, discarding unsaved edits
func (h *EditorHandler) Close(c *fiber.Ctx) error {
	id := c.Params("id")

	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok {
		s.Close()
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
