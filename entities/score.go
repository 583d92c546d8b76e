package entities

import (
	"strconv"

	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Score shows the running score as a label floating above the runway. Every
// change makes the label pulse.
type Score struct {
	engine.Base
	value      int
	pulse      *gween.Tween
	pulseScale float32
	pulseTime  float32
	scale      float32
}

func NewScore(w *engine.World, pulseScale, pulseTime float32) *Score {
	label := scene.NewMaterial(scene.HexColor(0xffffff))
	label.Map = scene.NewTexture("score")
	label.Transparent = true
	node := scene.NewMesh("score", scene.NewPlaneGeometry(1, 0.25), label)

	s := &Score{
		Base:       engine.NewBase(w, node, tags.Score),
		pulseScale: pulseScale,
		pulseTime:  pulseTime,
		scale:      1,
	}
	w.Bind(s)
	return s
}

func (s *Score) Add(delta int) {
	if delta == 0 {
		return
	}
	s.value += delta
	if s.pulseTime > 0 {
		s.pulse = gween.New(s.pulseScale, 1, s.pulseTime, ease.OutQuad)
	}
}

func (s *Score) Reset() {
	s.value = 0
	s.pulse = nil
	s.scale = 1
	s.Node().Scale = scene.V(1, 1, 1)
}

func (s *Score) Value() int { return s.value }

func (s *Score) Text() string { return strconv.Itoa(s.value) }

// Scale is the current pulse factor applied to the label.
func (s *Score) Scale() float32 { return s.scale }

func (s *Score) Update(dt float64) {
	if s.pulse != nil {
		v, done := s.pulse.Update(float32(dt))
		s.scale = v
		if done {
			s.pulse = nil
			s.scale = 1
		}
		k := float64(s.scale)
		s.Node().Scale = scene.V(k, k, k)
	}
	s.Base.Update(dt)
}
