package api

import (
	"io"

	"notenexus/models"
	"notenexus/store"
	"notenexus/utils"

	"github.com/gofiber/fiber/v2"
)

// NotesHandler exposes the notes-store mutations as JSON endpoints. All
// business validation lives here; the store stays validation-free and
// treats unknown IDs as silent no-ops.
type NotesHandler struct {
	notes    *store.Notes
	session  *store.Session
	maxWidth uint
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(notes *store.Notes, session *store.Session, imageMaxWidth int) *NotesHandler {
	return &NotesHandler{
		notes:    notes,
		session:  session,
		maxWidth: uint(imageMaxWidth),
	}
}

type createNoteRequest struct {
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	IsPinned            bool     `json:"is_pinned"`
	IsPasswordProtected bool     `json:"is_password_protected"`
	Color               string   `json:"color"`
	LabelIDs            []string `json:"label_ids"`
}

// CreateNote adds a new note for the current user
func (h *NotesHandler) CreateNote(c *fiber.Ctx) error {
	user := h.session.User()
	if user == nil {
		return utils.UnauthorizedError("User not authenticated", nil)
	}

	var req createNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	if req.Title == "" && req.Content == "" {
		return utils.BadRequestError("Note title or content required", nil)
	}

	if req.Color == "" {
		req.Color = user.Preferences.DefaultNoteColor
	}

	note := h.notes.AddNote(models.Note{
		Title:               req.Title,
		Content:             req.Content,
		IsPinned:            req.IsPinned,
		IsPasswordProtected: req.IsPasswordProtected,
		Color:               req.Color,
		UserID:              user.ID,
		LabelIDs:            req.LabelIDs,
	})

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"note":    note,
	})
}

// UpdateNote merges a partial update into a note
func (h *NotesHandler) UpdateNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.BadRequestError("Note ID required", nil)
	}

	var patch models.NotePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	h.notes.UpdateNote(id, patch)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// DeleteNote removes a note
func (h *NotesHandler) DeleteNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.BadRequestError("Note ID required", nil)
	}

	h.notes.DeleteNote(id)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Note deleted",
	})
}

// TogglePin flips a note's pin flag
func (h *NotesHandler) TogglePin(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.BadRequestError("Note ID required", nil)
	}

	h.notes.TogglePin(id)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

type shareRequest struct {
	Email      string            `json:"email"`
	Permission models.Permission `json:"permission"`
}

// ShareNote grants a collaborator access to one note. Email format and
// duplicate shares are rejected here, before the store is touched.
func (h *NotesHandler) ShareNote(c *fiber.Ctx) error {
	id := c.Params("id")
	note, ok := h.notes.Note(id)
	if !ok {
		return utils.NotFoundError("Note not found", nil)
	}

	var req shareRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	if !ValidEmail(req.Email) {
		return utils.BadRequestError("Invalid email address", nil)
	}
	if !req.Permission.Valid() {
		req.Permission = models.PermissionRead
	}
	for _, su := range note.SharedWith {
		if su.Email == req.Email {
			return utils.BadRequestError("Note already shared with this user", nil)
		}
	}

	h.notes.ShareNote(id, req.Email, req.Permission)

	updated, _ := h.notes.Note(id)
	return c.JSON(fiber.Map{
		"success":     true,
		"shared_with": updated.SharedWith,
	})
}

// RemoveSharedUser revokes a collaborator's access
func (h *NotesHandler) RemoveSharedUser(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Params("userId")
	if id == "" || userID == "" {
		return utils.BadRequestError("Note ID and user ID required", nil)
	}

	h.notes.RemoveSharedUser(id, userID)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// AttachImage downscales an uploaded image and appends it to the note
func (h *NotesHandler) AttachImage(c *fiber.Ctx) error {
	id := c.Params("id")
	note, ok := h.notes.Note(id)
	if !ok {
		return utils.NotFoundError("Note not found", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.BadRequestError("Image file required", err)
	}

	contentType := file.Header.Get("Content-Type")
	if !utils.IsImage(contentType) {
		return utils.BadRequestError("Unsupported image type", nil)
	}

	src, err := file.Open()
	if err != nil {
		return utils.InternalServerError("Failed to read upload", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return utils.InternalServerError("Failed to read upload", err)
	}

	encoded, err := utils.EncodeNoteImage(data, contentType, h.maxWidth)
	if err != nil {
		return utils.BadRequestError("Failed to process image", err)
	}

	images := append(note.Images, encoded)
	h.notes.UpdateNote(id, models.NotePatch{Images: &images})

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(images),
	})
}
