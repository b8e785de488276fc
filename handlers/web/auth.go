package web

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"notenexus/config"
	"notenexus/handlers/api"
	"notenexus/store"
	"notenexus/utils"
)

// AuthHandler drives the login / register / forgot-password pages over
// the session store.
type AuthHandler struct {
	sessions *session.Store
	config   *config.Config
	users    *store.Session
	notes    *store.Notes
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(sessions *session.Store, cfg *config.Config, users *store.Session, notes *store.Notes) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		config:   cfg,
		users:    users,
		notes:    notes,
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		if auth, ok := sess.Get("authenticated").(bool); ok && auth {
			return c.Redirect("/")
		}
	}
	return c.Render("login", fiber.Map{
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleLogin processes the login form
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(500).SendString("Session error")
	}

	email := strings.TrimSpace(c.FormValue("email"))
	password := strings.TrimSpace(c.FormValue("password"))

	if email == "" || password == "" {
		return c.Status(400).Render("login", fiber.Map{
			"Error":     "Email and password are required",
			"Email":     email,
			"CSRFToken": c.Locals("csrf"),
		})
	}

	if !api.ValidEmail(email) {
		return c.Status(400).Render("login", fiber.Map{
			"Error":     "Invalid email format",
			"Email":     email,
			"CSRFToken": c.Locals("csrf"),
		})
	}

	// The simulated backend accepts any credentials
	if err := h.users.Login(c.Context(), email, password); err != nil {
		return c.Status(500).Render("login", fiber.Map{
			"Error":     "Server error occurred during login",
			"Email":     email,
			"CSRFToken": c.Locals("csrf"),
		})
	}

	user := h.users.User()
	h.notes.SetUser(user)

	return h.establishSession(c, sess, user.ID, user.Email)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleRegister processes the registration form
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(500).SendString("Session error")
	}

	email := strings.TrimSpace(c.FormValue("email"))
	displayName := strings.TrimSpace(c.FormValue("display_name"))
	password := c.FormValue("password")

	if email == "" || displayName == "" || password == "" {
		return c.Status(400).Render("register", fiber.Map{
			"Error":       "All fields are required",
			"Email":       email,
			"DisplayName": displayName,
			"CSRFToken":   c.Locals("csrf"),
		})
	}

	if !api.ValidEmail(email) {
		return c.Status(400).Render("register", fiber.Map{
			"Error":       "Invalid email format",
			"Email":       email,
			"DisplayName": displayName,
			"CSRFToken":   c.Locals("csrf"),
		})
	}

	if err := h.users.Register(c.Context(), email, displayName, password); err != nil {
		return c.Status(500).Render("register", fiber.Map{
			"Error":       "Server error occurred during registration",
			"Email":       email,
			"DisplayName": displayName,
			"CSRFToken":   c.Locals("csrf"),
		})
	}

	user := h.users.User()
	h.notes.SetUser(user)

	return h.establishSession(c, sess, user.ID, user.Email)
}

// HandleLogout clears the browser session and both stores
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.users.Logout()
	h.notes.SetUser(nil)

	if sess, err := h.sessions.Get(c); err == nil {
		if err := sess.Destroy(); err != nil {
			utils.Log.Error("Failed to destroy session: %v", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:    api.TokenCookie,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})

	return c.Redirect("/login")
}

// ShowForgotPassword renders the password reset request page
func (h *AuthHandler) ShowForgotPassword(c *fiber.Ctx) error {
	return c.Render("forgot-password", fiber.Map{
		"CSRFToken": c.Locals("csrf"),
	})
}

// HandleForgotPassword acknowledges the reset request. No mail is sent;
// the backend is a stub.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if !api.ValidEmail(email) {
		return c.Status(400).Render("forgot-password", fiber.Map{
			"Error":     "Invalid email format",
			"Email":     email,
			"CSRFToken": c.Locals("csrf"),
		})
	}

	return c.Render("forgot-password", fiber.Map{
		"Message":   "If an account exists for that address, a reset link has been sent.",
		"CSRFToken": c.Locals("csrf"),
	})
}

func (h *AuthHandler) establishSession(c *fiber.Ctx, sess *session.Session, userID, email string) error {
	sess.Set("authenticated", true)
	sess.Set("userId", userID)
	if err := sess.Save(); err != nil {
		return c.Status(500).Render("login", fiber.Map{
			"Error":     "Failed to save session",
			"CSRFToken": c.Locals("csrf"),
		})
	}

	ttl := time.Duration(h.config.Session.ExpirationHours) * time.Hour
	token, err := api.GenerateToken(userID, email, h.config.Session.Secret, ttl)
	if err != nil {
		utils.Log.Error("Failed to create restore token: %v", err)
	} else {
		c.Cookie(&fiber.Cookie{
			Name:     api.TokenCookie,
			Value:    token,
			Expires:  time.Now().Add(ttl),
			HTTPOnly: true,
			SameSite: "Strict",
		})
	}

	return c.Redirect("/")
}
