// Package storage provides the client-side persistence port: a small
// JSON slot store the state containers call synchronously after each
// mutation. Slots mirror the persisted browser-storage layout of the
// original app: "user" and "viewMode".
package storage

import "errors"

// Slot keys known to the application.
const (
	SlotUser     = "user"
	SlotViewMode = "viewMode"
)

// ErrSlotNotFound is returned when a slot has no persisted value.
var ErrSlotNotFound = errors.New("storage: slot not found")

// Store is the persistence port. Values are JSON-encoded by the
// implementation; Load decodes into v. Implementations must be safe for
// concurrent use.
type Store interface {
	Save(slot string, v interface{}) error
	Load(slot string, v interface{}) error
	Delete(slot string) error
	Close() error
}
