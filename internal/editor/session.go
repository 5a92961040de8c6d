package editor

import (
	"fmt"

	"autoborder/internal/catalog"
)

// Action represents a session input action.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect
	ActionPaint
	ActionErase
	ActionToggleOptional
	ActionRefresh
	ActionQuit
)

// Edit carries a session action into the edit loop. Key is the palette
// key for ActionSelect.
type Edit struct {
	SessionID string
	Action    Action
	Key       rune
}

// Session holds the editing state of one connected user.
type Session struct {
	ID    string
	Name  string
	X, Y  int
	Color int // index into the render cursor palette
	Brush catalog.PaletteEntry
}

// SessionSnapshot is a read-only copy of a session for rendering.
type SessionSnapshot struct {
	ID    string
	Name  string
	X, Y  int
	Color int
	Brush catalog.PaletteEntry
}

// Snapshot returns a read-only copy of the session.
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:    s.ID,
		Name:  s.Name,
		X:     s.X,
		Y:     s.Y,
		Color: s.Color,
		Brush: s.Brush,
	}
}

// Describe returns a one-line summary of the session's brush for HUDs.
func (s SessionSnapshot) Describe() string {
	if s.Brush.Name == "" {
		return fmt.Sprintf("%s (%d,%d)", s.Name, s.X, s.Y)
	}
	return fmt.Sprintf("%s (%d,%d) [%c] %s", s.Name, s.X, s.Y, s.Brush.Key, s.Brush.Name)
}

const numCursorColors = 6
