package systems

import (
	"context"

	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/entities"
	"github.com/automoto/saberbeat/xr"
)

// RigParams places the player rig.
type RigParams struct {
	entities.RigParams
	// RigHeight is the eye height above the floor.
	RigHeight float64
}

// RigSystem owns the controller rig. The rig is only part of the scene while
// an immersive session is presenting; the camera is parented to it then so
// head tracking and hands share one origin.
type RigSystem struct {
	*engine.System
	stage  *Stage
	params RigParams
	rig    *entities.Rig
}

func NewRigSystem(stage *Stage, params RigParams) *RigSystem {
	return &RigSystem{
		System: engine.NewSystem(stage.World, stage.Scene.Root),
		stage:  stage,
		params: params,
	}
}

// Init builds the rig without adding it to the scene.
func (s *RigSystem) Init(context.Context) error {
	if s.rig == nil {
		s.rig = entities.NewRig(s.stage.World, s.stage.Space, s.stage.XR, s.params.RigParams)
	}
	return nil
}

func (s *RigSystem) Update(dt float64) {
	s.UpdateEntities(dt)
}

// OnXRPresent attaches the rig and camera while presenting and parks them
// otherwise. Repeated calls with the same state are no-ops.
func (s *RigSystem) OnXRPresent(presenting bool) {
	if s.rig == nil {
		return
	}
	cam := s.stage.Camera
	found := s.Has(s.rig.ID())
	switch {
	case presenting && !found:
		cam.Position.Y = s.params.RigHeight - s.params.HandHeight
		s.rig.Node().Add(cam.Node)
		s.AddEntity(s.rig, nil)
	case !presenting && found:
		cam.Position.Y = s.params.RigHeight
		s.stage.Scene.Add(cam.Node)
		s.RemoveEntity(s.rig.ID())
	}
}

// Rig returns the rig, which is nil before Init.
func (s *RigSystem) Rig() *entities.Rig { return s.rig }

// Sabers maps saber ids to hands; nil before Init.
func (s *RigSystem) Sabers() map[engine.EntityID]xr.Hand {
	if s.rig == nil {
		return nil
	}
	return s.rig.Sabers()
}

func (s *RigSystem) SaberIDs() []engine.EntityID {
	if s.rig == nil {
		return nil
	}
	return s.rig.SaberIDs()
}

// Dispose returns the camera to the scene and releases the rig, parked or not.
func (s *RigSystem) Dispose() {
	if s.rig == nil {
		return
	}
	if s.stage.Camera.Node.IsDescendantOf(s.rig.Node()) {
		s.stage.Scene.Add(s.stage.Camera.Node)
	}
	if !s.Has(s.rig.ID()) {
		s.rig.Dispose()
	}
	s.DisposeEntities()
	s.rig = nil
}
