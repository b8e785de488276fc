package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy strips all markup; used for titles and previews
	StrictPolicy *bluemonday.Policy
	// NotePolicy allows the formatting the note editor can produce
	NotePolicy *bluemonday.Policy
)

func init() {
	StrictPolicy = bluemonday.StrictPolicy()

	NotePolicy = bluemonday.UGCPolicy()

	// Formatting elements the editor toolbar emits
	NotePolicy.AllowElements("p", "br", "div", "span", "h1", "h2", "h3")
	NotePolicy.AllowElements("strong", "em", "u", "s", "code", "pre")
	NotePolicy.AllowElements("ul", "ol", "li", "blockquote")
	NotePolicy.AllowElements("a", "img")

	NotePolicy.AllowAttrs("href").OnElements("a")
	NotePolicy.AllowAttrs("src", "alt").OnElements("img")
	NotePolicy.AllowAttrs("class").Globally()
	NotePolicy.RequireParseableURLs(true)
	NotePolicy.AllowURLSchemes("http", "https", "data")
}

// SanitizeNoteContent cleans note body markup before rendering
func SanitizeNoteContent(content string) string {
	return NotePolicy.Sanitize(content)
}

// PlainPreview strips markup and truncates for list/grid cards
func PlainPreview(content string, max int) string {
	plain := strings.TrimSpace(StrictPolicy.Sanitize(content))
	if max > 0 {
		if runes := []rune(plain); len(runes) > max {
			return string(runes[:max]) + "…"
		}
	}
	return plain
}
