// Package xr describes the immersive session runtime the game talks to.
// Device drivers live behind Runtime; the game only asks whether a session
// mode is available, starts or ends sessions and reads controller poses.
package xr

import (
	"context"
	"errors"
	"log"

	"github.com/automoto/saberbeat/scene"
)

// Hand indexes a tracked controller.
type Hand int

const (
	Left Hand = iota
	Right
)

func (h Hand) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// Mode is an immersive session mode.
type Mode string

const (
	ModeVR Mode = "immersive-vr"
	ModeAR Mode = "immersive-ar"
)

// Support is the result of probing the runtime for session modes.
type Support string

const (
	SupportedAR Support = "supported_ar"
	SupportedVR Support = "supported_vr"
	NotFound    Support = "not found"
)

var ErrUnsupported = errors.New("xr: session mode not supported")

// Pose is a controller transform relative to the player rig.
type Pose struct {
	Position scene.Vec3
	Rotation scene.Euler
}

// Runtime is the immersive session backend.
type Runtime interface {
	// Supported reports whether mode can be started. It may block while the
	// runtime probes devices.
	Supported(ctx context.Context, mode Mode) (bool, error)
	RequestSession(ctx context.Context, mode Mode) error
	EndSession() error
	Presenting() bool
	Pose(h Hand) Pose
}

// Detect probes rt for AR first, then VR. Probe failures are logged and
// treated as absence of the capability.
func Detect(ctx context.Context, rt Runtime) Support {
	if rt == nil {
		return NotFound
	}
	for _, probe := range []struct {
		mode   Mode
		result Support
	}{
		{ModeAR, SupportedAR},
		{ModeVR, SupportedVR},
	} {
		ok, err := rt.Supported(ctx, probe.mode)
		if err != nil {
			log.Printf("Warning: XR capability probe for %s failed: %v", probe.mode, err)
			continue
		}
		if ok {
			return probe.result
		}
	}
	return NotFound
}

// ModeFor returns the session mode to request for a support level.
func ModeFor(s Support) (Mode, bool) {
	switch s {
	case SupportedAR:
		return ModeAR, true
	case SupportedVR:
		return ModeVR, true
	default:
		return "", false
	}
}
