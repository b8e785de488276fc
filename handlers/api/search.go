package api

import (
	"time"

	"notenexus/store"
	"notenexus/utils"

	"github.com/gofiber/fiber/v2"
)

// SearchHandler commits search input into the notes store. Keystroke
// previews are coalesced through a debouncer so the store sees one
// query per typing burst; an explicit search commits immediately.
type SearchHandler struct {
	notes     *store.Notes
	debouncer *store.Debouncer
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(notes *store.Notes, debounce time.Duration) *SearchHandler {
	return &SearchHandler{
		notes:     notes,
		debouncer: store.NewDebouncer(debounce, notes.SetSearchQuery),
	}
}

// Close cancels any pending debounced commit.
func (h *SearchHandler) Close() {
	h.debouncer.Stop()
}

type searchRequest struct {
	Query string `json:"query"`
}

// HandleInput records a keystroke-level query; the commit fires once
// typing pauses. The response echoes results for the raw input so the
// preview list stays live.
func (h *SearchHandler) HandleInput(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	h.debouncer.Trigger(req.Query)

	view := store.BuildView(store.FilterNotes(h.notes.NotesList(), nil, req.Query))
	return c.JSON(fiber.Map{
		"success":  true,
		"pinned":   view.Pinned,
		"unpinned": view.Unpinned,
	})
}

// HandleSearch commits the query immediately and returns the filtered,
// partitioned, sorted view.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	h.debouncer.Cancel()
	h.notes.SetSearchQuery(req.Query)

	view := h.notes.VisibleNotes()
	return c.JSON(fiber.Map{
		"success":  true,
		"query":    req.Query,
		"pinned":   view.Pinned,
		"unpinned": view.Unpinned,
	})
}
