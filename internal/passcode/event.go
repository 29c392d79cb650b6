package passcode

import (
	"time"

	"github.com/ayusman/mudra/internal/gesture"
)

// EventType names an accumulator state change.
type EventType string

const (
	// EventShift is emitted when shift mode turns on or off.
	EventShift EventType = "shift"
	// EventCommit is emitted for every letter accepted past the cooldown.
	EventCommit EventType = "commit"
	// EventDelete is emitted for every accepted delete, even on an empty buffer.
	EventDelete EventType = "delete"
	// EventComplete is emitted when the buffer reaches capacity.
	EventComplete EventType = "complete"
	// EventReset is emitted when the buffer is cleared.
	EventReset EventType = "reset"
)

// Event describes a state change together with the resulting buffer.
type Event struct {
	Type     EventType      `json:"type"`
	Symbol   gesture.Symbol `json:"symbol,omitempty"`
	Passcode string         `json:"passcode"`
	Display  string         `json:"display"`
	Length   int            `json:"length"`
	Shift    bool           `json:"shift"`
	// Dropped is set on a commit that arrived while the buffer was full.
	Dropped bool `json:"dropped,omitempty"`
	// Auto is set on a reset fired by the completion timer.
	Auto bool      `json:"auto,omitempty"`
	At   time.Time `json:"at"`
}
