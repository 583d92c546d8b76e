package entities

import (
	"image/color"

	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/collision"
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/tags"
)

// NoteColors maps note types to their instance colours.
type NoteColors struct {
	Red     color.RGBA
	Blue    color.RGBA
	Neutral color.RGBA
}

func (c NoteColors) For(t chart.NoteType) color.RGBA {
	switch t {
	case chart.Red:
		return c.Red
	case chart.Blue:
		return c.Blue
	default:
		return c.Neutral
	}
}

// NoteParams describes the runway shared by every note of a pool.
type NoteParams struct {
	// Cell is the width of one lane and the height of one layer.
	Cell float64
	// YOffset lifts the bottom layer off the floor.
	YOffset float64
	// Velocity is the travel speed in metres per second.
	Velocity float64
	// MaxFlyDist is the local depth past which a note expires.
	MaxFlyDist float64
	Colors     NoteColors
}

// Note is a pooled note instance. Idle notes sit hidden at the pool origin.
type Note struct {
	engine.Base
	index    int
	params   *NoteParams
	collider *collision.Collider
	desc     chart.Note
	color    color.RGBA
	playing  bool
}

func (n *Note) init(w *engine.World, space *collision.Space, g *scene.Geometry, index int, params *NoteParams, sabers []engine.EntityID) {
	node := scene.NewMesh("note", g)
	node.Visible = false
	n.Base = engine.NewBase(w, node, tags.Note)
	n.index = index
	n.params = params
	n.collider = collision.NewCollider(space, n.ID(), node, tags.ResolvNote, sabers...)
	n.AddComponent(n.collider)
	w.Bind(n)
}

// Play places the note at its lane and layer, depth units into the runway,
// and starts moving it.
func (n *Note) Play(desc chart.Note, depth float64) {
	p := n.params
	n.desc = desc
	n.color = p.Colors.For(desc.Type)

	node := n.Node()
	node.Position = scene.V((float64(desc.LineIndex)-1.5)*p.Cell, float64(desc.LineLayer)*p.Cell+p.YOffset, depth)
	node.Rotation = scene.Euler{Z: desc.CutDirection.Angle()}
	node.Visible = true
	n.playing = true
}

// Stop returns the note to the idle state. Stopping an idle note is a no-op.
func (n *Note) Stop() {
	if !n.playing {
		return
	}
	n.playing = false
	node := n.Node()
	node.Position = scene.Vec3{}
	node.Rotation = scene.Euler{}
	node.Visible = false
	n.collider.Reset()
}

// Update moves a playing note towards the player and refreshes its contacts.
// A note that has travelled past the end of the runway stops.
func (n *Note) Update(dt float64) {
	if !n.playing || dt <= 0 {
		return
	}
	node := n.Node()
	if node.Position.Z > n.params.MaxFlyDist {
		n.Stop()
		return
	}
	node.Position.Z += n.params.Velocity * dt
	n.UpdateComponents(dt)
}

func (n *Note) Playing() bool                 { return n.playing }
func (n *Note) Desc() chart.Note              { return n.desc }
func (n *Note) Color() color.RGBA             { return n.color }
func (n *Note) Index() int                    { return n.index }
func (n *Note) Collider() *collision.Collider { return n.collider }
