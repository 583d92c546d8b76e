package components

import (
	"github.com/automoto/saberbeat/xr"
	"github.com/yohamta/donburi"
)

// SessionData tracks the XR session and the player-facing toggles (singleton
// component).
type SessionData struct {
	Support    xr.Support
	Presenting bool
	ShowStats  bool
	Debug      bool
	Quit       bool

	// Viewport is the current logical screen size.
	ViewWidth, ViewHeight int

	// Status is a transient message shown by the HUD until StatusTimer
	// runs out.
	Status      string
	StatusTimer float64
}

// SetStatus shows msg for seconds.
func (s *SessionData) SetStatus(msg string, seconds float64) {
	s.Status = msg
	s.StatusTimer = seconds
}

// Viewport returns the screen size, falling back to def while unknown.
func (s *SessionData) Viewport(defW, defH int) (int, int) {
	if s.ViewWidth <= 0 || s.ViewHeight <= 0 {
		return defW, defH
	}
	return s.ViewWidth, s.ViewHeight
}

var Session = donburi.NewComponentType[SessionData]()
