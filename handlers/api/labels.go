package api

import (
	"notenexus/store"
	"notenexus/utils"

	"github.com/gofiber/fiber/v2"
)

// LabelHandler handles label management requests
type LabelHandler struct {
	notes *store.Notes
}

// NewLabelHandler creates a new label handler
func NewLabelHandler(notes *store.Notes) *LabelHandler {
	return &LabelHandler{notes: notes}
}

type labelRequest struct {
	Name string `json:"name"`
}

// CreateLabel creates a new label for the active user
func (h *LabelHandler) CreateLabel(c *fiber.Ctx) error {
	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}

	if req.Name == "" {
		return utils.BadRequestError("Label name required", nil)
	}

	label, ok := h.notes.AddLabel(req.Name)
	if !ok {
		return utils.UnauthorizedError("User not authenticated", nil)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"label":   label,
	})
}

// GetLabels retrieves all labels for the current user
func (h *LabelHandler) GetLabels(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"labels":  h.notes.Labels(),
	})
}

// UpdateLabel renames a label
func (h *LabelHandler) UpdateLabel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.BadRequestError("Label ID required", nil)
	}

	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request", err)
	}
	if req.Name == "" {
		return utils.BadRequestError("Label name required", nil)
	}

	h.notes.UpdateLabel(id, req.Name)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// DeleteLabel deletes a label and detaches it from every note
func (h *LabelHandler) DeleteLabel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.BadRequestError("Label ID required", nil)
	}

	h.notes.DeleteLabel(id)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Label deleted",
	})
}
