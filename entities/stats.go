package entities

import (
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/tags"
)

// StatsPanel is a floating panel listing renderer statistics.
type StatsPanel struct {
	engine.Base
	lines []string
}

func NewStatsPanel(w *engine.World, width, height float64) *StatsPanel {
	face := scene.NewMaterial(scene.HexColor(0x000000))
	face.Map = scene.NewTexture("stats")
	face.Opacity = 0.7
	face.Transparent = true
	p := &StatsPanel{Base: engine.NewBase(w, scene.NewMesh("stats", scene.NewPlaneGeometry(width, height), face), tags.Stats)}
	w.Bind(p)
	return p
}

func (p *StatsPanel) SetLines(lines []string) { p.lines = lines }
func (p *StatsPanel) Lines() []string         { return p.lines }
