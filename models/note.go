package models

import "time"

// Permission is the access level granted to a shared user.
type Permission string

const (
	PermissionRead Permission = "read"
	PermissionEdit Permission = "edit"
)

// Valid reports whether p is one of the two supported permissions.
func (p Permission) Valid() bool {
	return p == PermissionRead || p == PermissionEdit
}

// ViewMode is the home-screen layout toggle.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// Toggle returns the other view mode.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewModeGrid {
		return ViewModeList
	}
	return ViewModeGrid
}

// SharedUser is a collaborator granted access to a single note.
type SharedUser struct {
	UserID      string     `json:"user_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Permission  Permission `json:"permission"`
}

// Note is a user-authored text record.
//
// LabelIDs has set semantics; order is irrelevant and dangling IDs are
// tolerated by filtering. Images holds base64-encoded payloads in
// attachment order.
type Note struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Content             string       `json:"content"`
	IsPinned            bool         `json:"is_pinned"`
	IsPasswordProtected bool         `json:"is_password_protected"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
	Color               string       `json:"color"`
	UserID              string       `json:"user_id"`
	LabelIDs            []string     `json:"label_ids"`
	Images              []string     `json:"images,omitempty"`
	SharedWith          []SharedUser `json:"shared_with,omitempty"`
}

// HasLabel reports whether the note carries the given label ID.
func (n *Note) HasLabel(labelID string) bool {
	for _, id := range n.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing store-owned slices.
func (n *Note) Clone() Note {
	c := *n
	if n.LabelIDs != nil {
		c.LabelIDs = append([]string(nil), n.LabelIDs...)
	}
	if n.Images != nil {
		c.Images = append([]string(nil), n.Images...)
	}
	if n.SharedWith != nil {
		c.SharedWith = append([]SharedUser(nil), n.SharedWith...)
	}
	return c
}

// NotePatch carries the fields an update may change. Nil fields are left
// untouched; slices replace the existing value wholesale.
type NotePatch struct {
	Title               *string       `json:"title,omitempty"`
	Content             *string       `json:"content,omitempty"`
	IsPinned            *bool         `json:"is_pinned,omitempty"`
	IsPasswordProtected *bool         `json:"is_password_protected,omitempty"`
	Color               *string       `json:"color,omitempty"`
	LabelIDs            *[]string     `json:"label_ids,omitempty"`
	Images              *[]string     `json:"images,omitempty"`
	SharedWith          *[]SharedUser `json:"shared_with,omitempty"`
}

// Apply merges the patch into the note in place. Timestamps are the
// store's responsibility, not the patch's.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.IsPasswordProtected != nil {
		n.IsPasswordProtected = *p.IsPasswordProtected
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.LabelIDs != nil {
		n.LabelIDs = append([]string(nil), (*p.LabelIDs)...)
	}
	if p.Images != nil {
		n.Images = append([]string(nil), (*p.Images)...)
	}
	if p.SharedWith != nil {
		n.SharedWith = append([]SharedUser(nil), (*p.SharedWith)...)
	}
}

// NoteEvent is emitted on every notes-store mutation and fans out to the
// live change feeds.
type NoteEvent struct {
	Type string `json:"type"` // "created", "updated", "deleted"
	Note *Note  `json:"note,omitempty"`
	ID   string `json:"id"`
}
