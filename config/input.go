package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionTogglePlay
	ActionToggleXR
	ActionSwapHand
	ActionToggleStats
	ActionToggleDebug
	ActionQuit
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Gamepad right stick drives the active saber when no mouse movement is seen
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.15,
		Bindings: map[ActionID]InputBinding{
			ActionTogglePlay: {
				Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter},
				// Start / Options button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterRight,
				},
			},
			ActionToggleXR: {
				Keys: []ebiten.Key{ebiten.KeyX},
				// Back / Share button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterLeft,
				},
			},
			ActionSwapHand: {
				Keys: []ebiten.Key{ebiten.KeyTab},
				// Either bumper
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopLeft,
					ebiten.StandardGamepadButtonFrontTopRight,
				},
			},
			ActionToggleStats: {
				Keys: []ebiten.Key{ebiten.KeyF3},
			},
			ActionToggleDebug: {
				Keys: []ebiten.Key{ebiten.KeyF4},
			},
			ActionQuit: {
				Keys: []ebiten.Key{ebiten.KeyEscape},
			},
		},
	}
}
