package api

import (
	"notenexus/utils"

	"github.com/gofiber/fiber/v2"
)

// I18nHandler handles i18n-related requests
type I18nHandler struct{}

// GetTranslations returns translations for the client-side JavaScript
func (h *I18nHandler) GetTranslations(c *fiber.Ctx) error {
	lang := c.Params("lang")
	if lang != "en" && lang != "es" {
		lang = "en"
	}

	localizer := utils.GetLocalizer(lang)

	// Common translation keys used by the client-side scripts
	translations := map[string]string{
		"note_saved":           utils.T(localizer, "note_saved"),
		"note_deleted":         utils.T(localizer, "note_deleted"),
		"note_pinned":          utils.T(localizer, "note_pinned"),
		"note_unpinned":        utils.T(localizer, "note_unpinned"),
		"note_shared":          utils.T(localizer, "note_shared"),
		"label_created":        utils.T(localizer, "label_created"),
		"label_deleted":        utils.T(localizer, "label_deleted"),
		"confirm_delete_note":  utils.T(localizer, "confirm_delete_note"),
		"confirm_yes":          utils.T(localizer, "confirm_yes"),
		"confirm_no":           utils.T(localizer, "confirm_no"),
		"error_invalid_email":  utils.T(localizer, "error_invalid_email"),
		"error_already_shared": utils.T(localizer, "error_already_shared"),
		"error_network":        utils.T(localizer, "error_network"),
		"error_404":            utils.T(localizer, "error_404"),
		"error_500":            utils.T(localizer, "error_500"),
	}

	return c.JSON(translations)
}
