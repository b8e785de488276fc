package models

// Label is a user-defined tag attachable to notes for filtering.
type Label struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
