package entities

import (
	"image/color"

	"github.com/automoto/saberbeat/collision"
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/tags"
	"github.com/automoto/saberbeat/xr"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const flashTime = 0.15

// Saber is the blade held by one hand. Its box extends forward from the grip.
type Saber struct {
	engine.Base
	hand     xr.Hand
	collider *collision.Collider
	flash    *gween.Tween
	glow     float32
	base     color.RGBA
}

// NewSaber builds a width x height x length blade whose grip sits at the
// origin of its parent.
func NewSaber(w *engine.World, space *collision.Space, hand xr.Hand, size scene.Vec3, c color.RGBA) *Saber {
	node := scene.NewMesh("saber-"+hand.String(), scene.NewBoxGeometry(size.X, size.Y, size.Z), scene.NewMaterial(c))
	node.Position.Z = -size.Z / 2
	s := &Saber{Base: engine.NewBase(w, node, tags.Saber), hand: hand, base: c}
	s.collider = collision.NewCollider(space, s.ID(), node, tags.ResolvSaber)
	s.AddComponent(s.collider)
	w.Bind(s)
	return s
}

func (s *Saber) Hand() xr.Hand { return s.hand }

// Flash lights the blade up briefly.
func (s *Saber) Flash() {
	s.flash = gween.New(1, 0, flashTime, ease.OutQuad)
	s.glow = 1
}

// Glow is the remaining flash intensity in [0, 1].
func (s *Saber) Glow() float32 { return s.glow }

func (s *Saber) Update(dt float64) {
	if s.flash != nil {
		v, done := s.flash.Update(float32(dt))
		s.glow = v
		if done {
			s.flash = nil
			s.glow = 0
		}
		s.Node().Materials[0].Color = lighten(s.base, s.glow)
	}
	s.Base.Update(dt)
}

// lighten blends c towards white by k.
func lighten(c color.RGBA, k float32) color.RGBA {
	mix := func(v uint8) uint8 { return v + uint8(float32(255-v)*k) }
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}

// Hand follows a controller pose reported by the XR runtime.
type Hand struct {
	engine.Base
	hand    xr.Hand
	runtime xr.Runtime
	saber   *Saber
}

func NewHand(w *engine.World, space *collision.Space, rt xr.Runtime, hand xr.Hand, saberSize scene.Vec3, c color.RGBA) *Hand {
	h := &Hand{
		Base:    engine.NewBase(w, scene.NewGroup("hand-"+hand.String()), tags.Hand),
		hand:    hand,
		runtime: rt,
	}
	h.saber = NewSaber(w, space, hand, saberSize, c)
	h.AddChild(h.saber)
	w.Bind(h)
	return h
}

func (h *Hand) Saber() *Saber { return h.saber }

func (h *Hand) Update(dt float64) {
	if h.runtime != nil {
		pose := h.runtime.Pose(h.hand)
		node := h.Node()
		node.Position = pose.Position
		node.Rotation = pose.Rotation
	}
	h.Base.Update(dt)
}

// RigParams sizes the player rig.
type RigParams struct {
	HandHeight float64
	SaberSize  scene.Vec3
	LeftColor  color.RGBA
	RightColor color.RGBA
}

// Rig groups both hands at controller height.
type Rig struct {
	engine.Base
	hands [2]*Hand
}

func NewRig(w *engine.World, space *collision.Space, rt xr.Runtime, p RigParams) *Rig {
	node := scene.NewGroup("rig")
	node.Position.Y = p.HandHeight
	r := &Rig{Base: engine.NewBase(w, node, tags.Rig)}
	r.hands[xr.Left] = NewHand(w, space, rt, xr.Left, p.SaberSize, p.LeftColor)
	r.hands[xr.Right] = NewHand(w, space, rt, xr.Right, p.SaberSize, p.RightColor)
	for _, h := range r.hands {
		r.AddChild(h)
	}
	w.Bind(r)
	return r
}

func (r *Rig) Hand(h xr.Hand) *Hand   { return r.hands[h] }
func (r *Rig) Saber(h xr.Hand) *Saber { return r.hands[h].saber }

// Sabers maps each saber's id to the hand holding it.
func (r *Rig) Sabers() map[engine.EntityID]xr.Hand {
	return map[engine.EntityID]xr.Hand{
		r.hands[xr.Left].saber.ID():  xr.Left,
		r.hands[xr.Right].saber.ID(): xr.Right,
	}
}

// SaberIDs lists the saber ids, left first.
func (r *Rig) SaberIDs() []engine.EntityID {
	return []engine.EntityID{r.hands[xr.Left].saber.ID(), r.hands[xr.Right].saber.ID()}
}
