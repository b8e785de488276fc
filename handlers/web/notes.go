package web

import (
	"html/template"

	"github.com/gofiber/fiber/v2"

	"notenexus/models"
	"notenexus/store"
	"notenexus/utils"
)

const previewLength = 160

// NotesHandler renders the home screen: pinned and unpinned note
// partitions in the active view mode, with label badges resolved.
type NotesHandler struct {
	users *store.Session
	notes *store.Notes
	cache *utils.RenderCache
}

// NewNotesHandler creates a new notes page handler
func NewNotesHandler(users *store.Session, notes *store.Notes, cache *utils.RenderCache) *NotesHandler {
	return &NotesHandler{
		users: users,
		notes: notes,
		cache: cache,
	}
}

// NoteCard is the per-note view model handed to templates.
type NoteCard struct {
	Note        models.Note
	ContentHTML template.HTML
	Preview     string
	Labels      []models.Label
}

// HandleHome renders the main notes screen
func (h *NotesHandler) HandleHome(c *fiber.Ctx) error {
	user := h.users.User()
	if user == nil {
		return c.Redirect("/login")
	}

	view := h.notes.VisibleNotes()
	labelsByID := h.notes.LabelsByID()

	return c.Render("index", fiber.Map{
		"User":           user,
		"Pinned":         h.cards(view.Pinned, labelsByID),
		"Unpinned":       h.cards(view.Unpinned, labelsByID),
		"Labels":         h.notes.Labels(),
		"ViewMode":       h.notes.ViewMode(),
		"SelectedLabels": h.notes.SelectedLabels(),
		"SearchQuery":    h.notes.SearchQuery(),
		"CSRFToken":      c.Locals("csrf"),
	})
}

// HandleNotePartial renders one note card for HTMX swaps
func (h *NotesHandler) HandleNotePartial(c *fiber.Ctx) error {
	id := c.Params("id")
	note, ok := h.notes.Note(id)
	if !ok {
		return utils.NotFoundError("Note not found", nil)
	}

	cards := h.cards([]models.Note{note}, h.notes.LabelsByID())
	return c.Render("partials/note", cards[0], "")
}

func (h *NotesHandler) cards(notes []models.Note, labelsByID map[string]models.Label) []NoteCard {
	cards := make([]NoteCard, 0, len(notes))
	for _, n := range notes {
		cards = append(cards, NoteCard{
			Note:        n,
			ContentHTML: template.HTML(h.renderContent(&n)),
			Preview:     utils.PlainPreview(n.Content, previewLength),
			Labels:      resolveLabels(&n, labelsByID),
		})
	}
	return cards
}

// renderContent sanitizes note markup, memoized per (id, updatedAt).
func (h *NotesHandler) renderContent(n *models.Note) string {
	key := n.ID + "|" + n.UpdatedAt.Format("20060102150405.000000000")
	if html, ok := h.cache.Get(key); ok {
		return html
	}
	html := utils.SanitizeNoteContent(n.Content)
	h.cache.Set(key, html)
	return html
}

// resolveLabels maps label IDs to badges; dangling IDs are skipped.
func resolveLabels(n *models.Note, labelsByID map[string]models.Label) []models.Label {
	out := make([]models.Label, 0, len(n.LabelIDs))
	for _, id := range n.LabelIDs {
		if l, ok := labelsByID[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
