package entities

import (
	"image/color"
	"math"

	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/tags"
)

// Floor is the runway the notes travel along.
type Floor struct {
	engine.Base
}

// NewFloor lays a width x length plane flat on the ground, centred on its
// node's origin.
func NewFloor(w *engine.World, width, length float64, c color.RGBA) *Floor {
	node := scene.NewMesh("floor", scene.NewPlaneGeometry(width, length), scene.NewMaterial(c))
	node.Rotation.X = -math.Pi / 2
	f := &Floor{Base: engine.NewBase(w, node, tags.Floor)}
	w.Bind(f)
	return f
}
