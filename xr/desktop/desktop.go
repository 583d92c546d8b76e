// Package desktop simulates an immersive VR session on a regular window.
// The pointer drives the active hand; the other hand rests beside the body.
package desktop

import (
	"context"
	"math"
	"sync"

	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/xr"
)

// Reach limits how far the simulated hands move from their rest position.
type Reach struct {
	X, Y  float64 // metres
	Pitch float64 // radians
	Yaw   float64 // radians
}

var DefaultReach = Reach{X: 0.6, Y: 0.5, Pitch: 1.2, Yaw: 0.6}

var restPose = [2]xr.Pose{
	xr.Left:  {Position: scene.V(-0.25, 0, -0.3)},
	xr.Right: {Position: scene.V(0.25, 0, -0.3)},
}

// Runtime is a desktop xr.Runtime. It supports VR only.
type Runtime struct {
	mu         sync.Mutex
	reach      Reach
	presenting bool
	active     xr.Hand
	poses      [2]xr.Pose
}

func New(reach Reach) *Runtime {
	return &Runtime{reach: reach, active: xr.Right, poses: restPose}
}

func (r *Runtime) Supported(_ context.Context, mode xr.Mode) (bool, error) {
	return mode == xr.ModeVR, nil
}

func (r *Runtime) RequestSession(_ context.Context, mode xr.Mode) error {
	if mode != xr.ModeVR {
		return xr.ErrUnsupported
	}
	r.mu.Lock()
	r.presenting = true
	r.mu.Unlock()
	return nil
}

func (r *Runtime) EndSession() error {
	r.mu.Lock()
	r.presenting = false
	r.poses = restPose
	r.mu.Unlock()
	return nil
}

func (r *Runtime) Presenting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presenting
}

func (r *Runtime) Pose(h xr.Hand) xr.Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.poses[h]
}

// ActiveHand returns the hand driven by the pointer.
func (r *Runtime) ActiveHand() xr.Hand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// SwapHands hands pointer control to the other hand, which is sent back to
// rest.
func (r *Runtime) SwapHands() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poses[r.active] = restPose[r.active]
	r.active = 1 - r.active
}

// SetPointer places the active hand from a pointer position normalised to
// [-1, 1] on both axes, +Y up. The saber tilts towards the pointer so a
// sweep across the window swings it.
func (r *Runtime) SetPointer(nx, ny float64) {
	nx = math.Max(-1, math.Min(1, nx))
	ny = math.Max(-1, math.Min(1, ny))

	r.mu.Lock()
	defer r.mu.Unlock()
	rest := restPose[r.active]
	r.poses[r.active] = xr.Pose{
		Position: scene.V(
			rest.Position.X+nx*r.reach.X,
			rest.Position.Y+ny*r.reach.Y,
			rest.Position.Z,
		),
		Rotation: scene.Euler{
			X: ny * r.reach.Pitch,
			Y: -nx * r.reach.Yaw,
		},
	}
}
