package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"notenexus/store"
	"notenexus/utils"
)

// TokenCookie is the signed restore cookie set at login.
const TokenCookie = "nn_token"

// isAPIRequest distinguishes JSON/HTMX calls from page navigations.
func isAPIRequest(c *fiber.Ctx) bool {
	if c.Get("HX-Request") != "" {
		return true
	}
	return strings.HasPrefix(c.Path(), "/api")
}

// SessionMiddleware gates routes on an authenticated browser session.
// A valid restore token re-authenticates a fresh session against the
// user the session store recovered at startup. While the store is still
// restoring, page requests see the loading screen instead of a redirect.
func SessionMiddleware(sessions *session.Store, userStore *store.Session, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err == nil {
			if auth, ok := sess.Get("authenticated").(bool); ok && auth && userStore.User() != nil {
				if id, ok := sess.Get("userId").(string); ok {
					c.Locals("userId", id)
				}
				return c.Next()
			}
		}

		// Restore-token fallback for a browser whose session expired.
		if token := c.Cookies(TokenCookie); token != "" && sess != nil {
			if claims, err := ValidateToken(token, secret); err == nil {
				if user := userStore.User(); user != nil && user.ID == claims.UserID {
					sess.Set("authenticated", true)
					sess.Set("userId", user.ID)
					if err := sess.Save(); err != nil {
						utils.Log.Error("Failed to save session: %v", err)
					}
					c.Locals("userId", user.ID)
					return c.Next()
				}
			}
		}

		if isAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		if userStore.Loading() {
			return c.Render("loading", fiber.Map{})
		}
		return c.Redirect("/login")
	}
}
