package systems

import (
	"context"

	"github.com/automoto/saberbeat/collision"
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/xr"
)

// System is a unit of game logic with its own set of entities. Init runs
// once before the first Update; OnXRPresent is called whenever an immersive
// session starts or ends.
type System interface {
	Init(ctx context.Context) error
	Update(dt float64)
	OnXRPresent(presenting bool)
	Dispose()
}

// Stage is the shared state systems build on.
type Stage struct {
	World  *engine.World
	Scene  *scene.Scene
	Camera *scene.Camera
	Space  *collision.Space
	XR     xr.Runtime
}
