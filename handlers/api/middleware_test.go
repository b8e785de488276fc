package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notenexus/storage"
	"notenexus/store"
)

// newGatedApp mirrors the server's route layout: health before the
// session gate, everything else behind it.
func newGatedApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	sessions := session.New()
	users := store.NewSession(storage.NewMemoryStore(), 0)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := app.Group("", SessionMiddleware(sessions, users, "secret"))
	protected.Get("/api/notes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	return app
}

func TestHealthReachableWithoutSession(t *testing.T) {
	app := newGatedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestSessionGateRejectsAnonymousAPICalls(t *testing.T) {
	app := newGatedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/notes", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
