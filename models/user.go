package models

// User represents the account that owns the notes in this single-user app.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"display_name"`
	Avatar       string      `json:"avatar,omitempty"`
	IsVerified   bool        `json:"is_verified"`
	PasswordHash string      `json:"-"` // Never expose in JSON
	Preferences  Preferences `json:"preferences"`
}

// Preferences holds per-user display settings.
type Preferences struct {
	Theme            string `json:"theme"`     // "light" or "dark"
	FontSize         string `json:"font_size"` // "small", "medium", "large"
	DefaultNoteColor string `json:"default_note_color"`
}

// UserPatch carries the fields a profile or settings update may change.
// Nil fields are left untouched.
type UserPatch struct {
	Email       *string      `json:"email,omitempty"`
	DisplayName *string      `json:"display_name,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	IsVerified  *bool        `json:"is_verified,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Apply merges the patch into the user in place.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
	if p.Preferences != nil {
		u.Preferences = *p.Preferences
	}
}

// DefaultPreferences returns the preferences assigned to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:            "light",
		FontSize:         "medium",
		DefaultNoteColor: "#FEF7CD",
	}
}
