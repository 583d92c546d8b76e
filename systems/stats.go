package systems

import (
	"context"
	"fmt"

	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/entities"
	"github.com/automoto/saberbeat/scene"
)

// StatsParams places the statistics panel in front of the player.
type StatsParams struct {
	Position     scene.Vec3
	TiltX        float64
	Scale        float64
	Width        float64
	Height       float64
	SampleFrames int
}

// StatsSystem shows frame rate and renderer statistics on a panel that is
// only in the scene while presenting.
type StatsSystem struct {
	*engine.System
	stage  *Stage
	params StatsParams
	info   func() scene.RenderInfo
	panel  *entities.StatsPanel
	frames *Clock

	samples []float64
	next    int
	filled  bool
}

// NewStatsSystem reads renderer counters through info, which may be nil.
// Frame times come from frames, a wall clock when nil.
func NewStatsSystem(stage *Stage, params StatsParams, info func() scene.RenderInfo, frames *Clock) *StatsSystem {
	if params.SampleFrames <= 0 {
		params.SampleFrames = 1
	}
	if frames == nil {
		frames = NewClock(nil)
	}
	return &StatsSystem{
		System:  engine.NewSystem(stage.World, stage.Scene.Root),
		stage:   stage,
		params:  params,
		info:    info,
		frames:  frames,
		samples: make([]float64, params.SampleFrames),
	}
}

func (s *StatsSystem) Init(context.Context) error {
	if s.panel != nil {
		return nil
	}
	s.frames.Start()
	p := s.params
	s.panel = entities.NewStatsPanel(s.World(), p.Width, p.Height)
	node := s.panel.Node()
	node.Position = p.Position
	node.Rotation.X = p.TiltX
	node.Scale = scene.V(p.Scale, p.Scale, p.Scale)
	return nil
}

func (s *StatsSystem) OnXRPresent(presenting bool) {
	if s.panel == nil {
		return
	}
	found := s.Has(s.panel.ID())
	switch {
	case presenting && !found:
		s.AddEntity(s.panel, nil)
	case !presenting && found:
		s.RemoveEntity(s.panel.ID())
	}
}

// Update samples the real time since the previous frame; dt is the fixed
// step and only drives the panel entities.
func (s *StatsSystem) Update(dt float64) {
	if frame := s.frames.Delta(); frame > 0 {
		s.samples[s.next] = frame
		s.next = (s.next + 1) % len(s.samples)
		if s.next == 0 {
			s.filled = true
		}
	}
	if s.panel != nil {
		s.panel.SetLines(s.Lines())
	}
	s.UpdateEntities(dt)
}

// FPS is the mean frame rate over the sample window.
func (s *StatsSystem) FPS() float64 {
	n := s.next
	if s.filled {
		n = len(s.samples)
	}
	var total float64
	for _, d := range s.samples[:n] {
		total += d
	}
	if total == 0 {
		return 0
	}
	return float64(n) / total
}

// Lines formats the current statistics.
func (s *StatsSystem) Lines() []string {
	lines := []string{fmt.Sprintf("FPS: %.0f", s.FPS())}
	if s.info == nil {
		return lines
	}
	info := s.info()
	return append(lines,
		fmt.Sprintf("Frame number: %d", info.Frame),
		fmt.Sprintf("Geometries: %d", info.Geometries),
		fmt.Sprintf("Textures: %d", info.Textures),
		fmt.Sprintf("Calls: %d", info.Calls),
		fmt.Sprintf("Triangles: %d", info.Triangles),
		fmt.Sprintf("Points: %d", info.Points),
		fmt.Sprintf("Lines: %d", info.Lines),
		fmt.Sprintf("Programs: %d", info.Programs),
	)
}

func (s *StatsSystem) Panel() *entities.StatsPanel { return s.panel }

func (s *StatsSystem) Dispose() {
	if s.panel != nil && !s.Has(s.panel.ID()) {
		s.panel.Dispose()
	}
	s.DisposeEntities()
	s.panel = nil
}
