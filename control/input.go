package control

import (
	"math"
	"strings"

	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Cache controller types to avoid string allocation every frame
var controllerTypeCache = make(map[ebiten.GamepadID]components.InputMethod)

// UpdateInput polls raw input and updates the Input component.
// Must run BEFORE UpdateSession in the system order.
func UpdateInput(e *ecs.ECS) {
	input := getOrCreateInput(e)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var keyboardUsed, gamepadUsed bool
	var activeGamepadID ebiten.GamepadID

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
					activeGamepadID = gpID
				}
			}
		}
	}

	// The right stick aims the saber; otherwise the mouse does.
	if x, y, gpID, ok := getAimStickState(gamepadIDs); ok {
		input.PointerX, input.PointerY = x, y
		gamepadUsed = true
		activeGamepadID = gpID
	} else {
		cx, cy := ebiten.CursorPosition()
		w, h := cfg.C.Width, cfg.C.Height
		if entry, ok := components.Session.First(e.World); ok {
			w, h = components.Session.Get(entry).Viewport(w, h)
		}
		input.PointerX, input.PointerY = normalizePointer(cx, cy, w, h)
	}

	// Update last input method - gamepad takes priority if both used
	if gamepadUsed {
		input.LastInputMethod = getControllerType(activeGamepadID)
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

// normalizePointer maps a cursor position to [-1, 1] on both axes with +Y up.
func normalizePointer(x, y, width, height int) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := float64(x)/float64(width)*2 - 1
	ny := 1 - float64(y)/float64(height)*2
	return math.Max(-1, math.Min(1, nx)), math.Max(-1, math.Min(1, ny))
}

// getControllerType returns cached controller type, detecting on first access
func getControllerType(gpID ebiten.GamepadID) components.InputMethod {
	if method, ok := controllerTypeCache[gpID]; ok {
		return method
	}

	name := strings.ToLower(ebiten.GamepadName(gpID))
	var method components.InputMethod
	if strings.Contains(name, "ps4") || strings.Contains(name, "ps5") ||
		strings.Contains(name, "playstation") || strings.Contains(name, "dualshock") ||
		strings.Contains(name, "dualsense") {
		method = components.InputPlayStation
	} else {
		// Default gamepad to Xbox-style
		method = components.InputXbox
	}

	controllerTypeCache[gpID] = method
	return method
}

// getAimStickState reads the right analog stick of the first gamepad that
// is pushed past the deadzone.
func getAimStickState(gamepads []ebiten.GamepadID) (x, y float64, activeGpID ebiten.GamepadID, ok bool) {
	deadzone := cfg.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(h, v) > deadzone {
			// Stick axes grow downwards
			return h, -v, gpID, true
		}
	}
	return 0, 0, 0, false
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(e *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}
