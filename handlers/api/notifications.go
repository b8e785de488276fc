package api

import (
	"bufio"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"notenexus/models"
	"notenexus/utils"
)

// NotificationHandler fans note-store change events out to connected
// clients over SSE and websocket, so open tabs refresh live.
type NotificationHandler struct {
	mu          sync.RWMutex
	subscribers map[string]chan models.NoteEvent
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{
		subscribers: make(map[string]chan models.NoteEvent),
	}
}

// Broadcast delivers an event to every subscriber. Slow consumers drop
// events rather than block the store.
func (h *NotificationHandler) Broadcast(ev models.NoteEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *NotificationHandler) subscribe() (string, chan models.NoteEvent) {
	id := uuid.New().String()
	ch := make(chan models.NoteEvent, 16)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	return id, ch
}

func (h *NotificationHandler) unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
	h.mu.Unlock()
}

// HandleSSE streams note events as Server-Sent Events
func (h *NotificationHandler) HandleSSE(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	id, ch := h.subscribe()
	utils.Log.Info("SSE subscriber connected: %s", id)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.unsubscribe(id)
			utils.Log.Info("SSE subscriber disconnected: %s", id)
		}()

		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				data, _ := json.Marshal(ev)
				if _, err := w.WriteString("data: " + string(data) + "\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}

			case <-ticker.C:
				// Keep-alive comment
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

// UpgradeWS allows only websocket upgrade requests through to HandleWS
func (h *NotificationHandler) UpgradeWS(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWS streams note events over a websocket connection
func (h *NotificationHandler) HandleWS() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id, ch := h.subscribe()
		defer h.unsubscribe(id)

		utils.Log.Info("WS subscriber connected: %s", id)
		defer utils.Log.Info("WS subscriber disconnected: %s", id)

		for ev := range ch {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	})
}
