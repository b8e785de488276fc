package api

import (
	"notenexus/store"
	"notenexus/utils"

	"github.com/gofiber/fiber/v2"
)

// ViewHandler covers the layout toggle and the label filter set.
type ViewHandler struct {
	notes *store.Notes
}

// NewViewHandler creates a new view handler
func NewViewHandler(notes *store.Notes) *ViewHandler {
	return &ViewHandler{notes: notes}
}

// ToggleViewMode flips between grid and list
func (h *ViewHandler) ToggleViewMode(c *fiber.Ctx) error {
	mode := h.notes.ToggleViewMode()
	return c.JSON(fiber.Map{
		"success":   true,
		"view_mode": mode,
	})
}

// ToggleLabelFilter adds or removes a label from the filter set
func (h *ViewHandler) ToggleLabelFilter(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.BadRequestError("Label ID required", nil)
	}

	h.notes.ToggleLabelFilter(id)

	return c.JSON(fiber.Map{
		"success":  true,
		"selected": h.notes.SelectedLabels(),
	})
}

// ClearLabelFilters empties the filter set
func (h *ViewHandler) ClearLabelFilters(c *fiber.Ctx) error {
	h.notes.ClearLabelFilters()

	return c.JSON(fiber.Map{
		"success": true,
	})
}
