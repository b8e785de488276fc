package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"notenexus/handlers/api"
	"notenexus/models"
	"notenexus/store"
)

// ProfileHandler renders and updates the account profile page.
type ProfileHandler struct {
	users *store.Session
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users *store.Session) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// ShowProfile renders the profile page
func (h *ProfileHandler) ShowProfile(c *fiber.Ctx) error {
	user := h.users.User()
	if user == nil {
		return c.Redirect("/login")
	}

	return c.Render("profile", fiber.Map{
		"User":      user,
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleProfileUpdate applies display name / email / avatar changes
func (h *ProfileHandler) HandleProfileUpdate(c *fiber.Ctx) error {
	user := h.users.User()
	if user == nil {
		return c.Redirect("/login")
	}

	displayName := strings.TrimSpace(c.FormValue("display_name"))
	email := strings.TrimSpace(c.FormValue("email"))
	avatar := strings.TrimSpace(c.FormValue("avatar"))

	var patch models.UserPatch
	if displayName != "" {
		patch.DisplayName = &displayName
	}
	if email != "" {
		if !api.ValidEmail(email) {
			return c.Status(400).Render("profile", fiber.Map{
				"User":      user,
				"Error":     "Invalid email format",
				"CSRFToken": c.Locals("csrf"),
			})
		}
		patch.Email = &email
	}
	if avatar != "" {
		patch.Avatar = &avatar
	}

	h.users.UpdateUser(patch)

	return c.Render("profile", fiber.Map{
		"User":      h.users.User(),
		"Message":   "Profile updated",
		"CSRFToken": c.Locals("csrf"),
	})
}
