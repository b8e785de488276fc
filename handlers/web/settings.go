package web

import (
	"github.com/gofiber/fiber/v2"

	"notenexus/models"
	"notenexus/store"
)

// SettingsHandler renders and updates the preferences page.
type SettingsHandler struct {
	users *store.Session
	notes *store.Notes
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(users *store.Session, notes *store.Notes) *SettingsHandler {
	return &SettingsHandler{users: users, notes: notes}
}

// ShowSettings renders the settings page
func (h *SettingsHandler) ShowSettings(c *fiber.Ctx) error {
	user := h.users.User()
	if user == nil {
		return c.Redirect("/login")
	}

	return c.Render("settings", fiber.Map{
		"User":      user,
		"Labels":    h.notes.Labels(),
		"ViewMode":  h.notes.ViewMode(),
		"Lang":      c.Locals("lang"),
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleSettingsUpdate applies preference changes
func (h *SettingsHandler) HandleSettingsUpdate(c *fiber.Ctx) error {
	user := h.users.User()
	if user == nil {
		return c.Redirect("/login")
	}

	prefs := user.Preferences

	if theme := c.FormValue("theme"); theme == "light" || theme == "dark" {
		prefs.Theme = theme
	}
	if size := c.FormValue("font_size"); size == "small" || size == "medium" || size == "large" {
		prefs.FontSize = size
	}
	if color := c.FormValue("default_note_color"); color != "" {
		prefs.DefaultNoteColor = color
	}

	h.users.UpdateUser(models.UserPatch{Preferences: &prefs})

	// Language preference lives in a cookie, read by the locale middleware
	if lang := c.FormValue("lang"); lang == "en" || lang == "es" {
		c.Cookie(&fiber.Cookie{Name: "lang", Value: lang})
	}

	return c.Render("settings", fiber.Map{
		"User":      h.users.User(),
		"Labels":    h.notes.Labels(),
		"ViewMode":  h.notes.ViewMode(),
		"Lang":      c.Locals("lang"),
		"Message":   "Settings saved",
		"CSRFToken": c.Locals("csrf"),
	})
}
