package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notenexus/models"
	"notenexus/storage"
	"notenexus/store"
	"notenexus/utils"
)

// newTestApp wires a fiber app around freshly seeded stores, using the
// same error mapping the server installs.
func newTestApp(t *testing.T) (*fiber.App, *store.Notes) {
	t.Helper()

	persist := storage.NewMemoryStore()
	users := store.NewSession(persist, 0)
	require.NoError(t, users.Login(context.Background(), "user@example.com", "password"))

	notes := store.NewNotes(persist)
	notes.SetUser(users.User())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *utils.AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.Code).JSON(fiber.Map{
					"success": false,
					"error":   appErr.Message,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Internal server error",
			})
		},
	})

	h := NewNotesHandler(notes, users, 1200)
	app.Post("/api/notes", h.CreateNote)
	app.Put("/api/notes/:id", h.UpdateNote)
	app.Delete("/api/notes/:id", h.DeleteNote)
	app.Post("/api/notes/:id/pin", h.TogglePin)
	app.Post("/api/notes/:id/share", h.ShareNote)
	app.Delete("/api/notes/:id/share/:userId", h.RemoveSharedUser)

	labels := NewLabelHandler(notes)
	app.Post("/api/labels", labels.CreateLabel)
	app.Delete("/api/labels/:id", labels.DeleteLabel)

	view := NewViewHandler(notes)
	app.Post("/api/view/toggle", view.ToggleViewMode)

	return app, notes
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateNoteEndpoint(t *testing.T) {
	app, notes := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/notes", fiber.Map{
		"title":   "From the API",
		"content": "body text",
	}))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	created := body["note"].(map[string]interface{})
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "From the API", created["title"])
	// The user's preferred color fills in when the request omits one.
	assert.Equal(t, "#FEF7CD", created["color"])

	all := notes.NotesList()
	require.NotEmpty(t, all)
	assert.Equal(t, created["id"], all[0].ID, "new note is listed first")
}

func TestCreateNoteRejectsEmpty(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/notes", fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestUpdateUnknownNoteSucceedsQuietly(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, "PUT", "/api/notes/not-a-real-id", fiber.Map{
		"title": "whatever",
	}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestTogglePinEndpoint(t *testing.T) {
	app, notes := newTestApp(t)

	target := notes.NotesList()[0]
	wasPinned := target.IsPinned

	resp, err := app.Test(jsonRequest(t, "POST", "/api/notes/"+target.ID+"/pin", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	after, ok := notes.Note(target.ID)
	require.True(t, ok)
	assert.Equal(t, !wasPinned, after.IsPinned)
}

func TestShareNoteEndpoint(t *testing.T) {
	app, notes := newTestApp(t)
	target := notes.NotesList()[0]

	resp, err := app.Test(jsonRequest(t, "POST", "/api/notes/"+target.ID+"/share", fiber.Map{
		"email":      "colleague@example.com",
		"permission": "edit",
	}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	after, _ := notes.Note(target.ID)
	require.Len(t, after.SharedWith, 1)
	assert.Equal(t, "colleague@example.com", after.SharedWith[0].Email)
	assert.Equal(t, "colleague", after.SharedWith[0].DisplayName)
	assert.Equal(t, models.PermissionEdit, after.SharedWith[0].Permission)
}

func TestShareNoteRejectsBadEmailAndDuplicates(t *testing.T) {
	app, notes := newTestApp(t)
	target := notes.NotesList()[0]

	resp, err := app.Test(jsonRequest(t, "POST", "/api/notes/"+target.ID+"/share", fiber.Map{
		"email": "not-an-email",
	}))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	share := func() int {
		resp, err := app.Test(jsonRequest(t, "POST", "/api/notes/"+target.ID+"/share", fiber.Map{
			"email": "dup@example.com",
		}))
		require.NoError(t, err)
		return resp.StatusCode
	}
	assert.Equal(t, 200, share())
	assert.Equal(t, 400, share(), "second share of the same email is rejected")
}

func TestShareUnknownNoteIs404(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/notes/missing/share", fiber.Map{
		"email": "colleague@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteLabelEndpointCascades(t *testing.T) {
	app, notes := newTestApp(t)

	label, ok := notes.AddLabel("Temp")
	require.True(t, ok)
	target := notes.NotesList()[0]
	labelIDs := append(target.LabelIDs, label.ID)
	notes.UpdateNote(target.ID, models.NotePatch{LabelIDs: &labelIDs})

	resp, err := app.Test(jsonRequest(t, "DELETE", "/api/labels/"+label.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	after, _ := notes.Note(target.ID)
	assert.NotContains(t, after.LabelIDs, label.ID)
}

func TestToggleViewModeEndpoint(t *testing.T) {
	app, notes := newTestApp(t)
	before := notes.ViewMode()

	resp, err := app.Test(jsonRequest(t, "POST", "/api/view/toggle", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, before.Toggle(), notes.ViewMode())
}
