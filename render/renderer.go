package render

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/automoto/saberbeat/components"
	"github.com/automoto/saberbeat/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const maxBatchTriangles = 65535 / 3

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type triangle struct {
	pts   [3][2]float32
	depth float64
	c     color.RGBA
	alpha float32
}

// Renderer rasterizes the scene graph with flat-shaded, fogged triangles
// sorted back to front.
type Renderer struct {
	info     scene.RenderInfo
	tris     []triangle
	vertices []ebiten.Vertex
	indices  []uint16
	op       ebiten.DrawTrianglesOptions
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Info returns the counters of the last frame.
func (r *Renderer) Info() scene.RenderInfo {
	return r.info
}

// DrawWorld renders the game scene.
func (r *Renderer) DrawWorld(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Game.First(e.World)
	if !ok {
		return
	}
	stage := components.Game.Get(entry).Stage
	r.Draw(screen, stage.Scene, stage.Camera)
}

func (r *Renderer) Draw(screen *ebiten.Image, sc *scene.Scene, cam *scene.Camera) {
	r.info.Reset()
	screen.Fill(sc.Background)

	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	view := cam.ViewMatrix()
	r.tris = r.tris[:0]

	sc.Root.TraverseVisible(func(n *scene.Node) {
		if n.Geometry == nil || len(n.Materials) == 0 || n.Geometry.Disposed() {
			return
		}
		mat := n.Materials[0]
		// Texture-mapped planes are labels; the HUD draws their text.
		if mat.Map != nil {
			return
		}
		world := n.WorldMatrix()
		if in := n.Instances; in != nil {
			for i := 0; i < in.Count(); i++ {
				if in.VisibleAt(i) {
					r.addMesh(sc, cam, n.Geometry, world.Mul4(in.MatrixAt(i)), view, in.ColorAt(i), mat.Opacity, w, h)
				}
			}
		} else {
			r.addMesh(sc, cam, n.Geometry, world, view, mat.Color, mat.Opacity, w, h)
		}
		r.info.Calls++
	})

	slices.SortFunc(r.tris, func(a, b triangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	for start := 0; start < len(r.tris); start += maxBatchTriangles {
		end := min(start+maxBatchTriangles, len(r.tris))
		r.flush(screen, r.tris[start:end])
	}
	r.info.Triangles += len(r.tris)
}

func (r *Renderer) addMesh(sc *scene.Scene, cam *scene.Camera, g *scene.Geometry, model, view scene.Mat4, base color.RGBA, opacity float64, w, h float64) {
	light := sc.Light
	lightDir := light.Direction.Scale(-1).Normalize()

	for _, f := range g.Faces() {
		var wp, vp [3]scene.Vec3
		for i, p := range f {
			wp[i] = scene.TransformPoint(model, p)
			vp[i] = scene.TransformPoint(view, wp[i])
		}
		normal := vp[1].Sub(vp[0]).Cross(vp[2].Sub(vp[0]))
		// Back faces point away from the eye at the origin of view space.
		if normal.Dot(vp[0]) >= 0 {
			continue
		}

		wn := wp[1].Sub(wp[0]).Cross(wp[2].Sub(wp[0])).Normalize()
		diffuse := math.Max(0, wn.Dot(lightDir)) * light.Intensity

		poly := clipNear(vp[:], cam.Near+1e-6)
		for i := 1; i+1 < len(poly); i++ {
			var tri triangle
			ok := true
			for j, p := range [3]scene.Vec3{poly[0], poly[i], poly[i+1]} {
				x, y, visible := cam.ProjectView(p, w, h)
				if !visible {
					ok = false
					break
				}
				tri.pts[j] = [2]float32{float32(x), float32(y)}
			}
			if !ok {
				continue
			}
			tri.depth = -(poly[0].Z + poly[i].Z + poly[i+1].Z) / 3
			tri.c = shade(base, light, diffuse, sc.Fog, tri.depth)
			tri.alpha = float32(opacity)
			r.tris = append(r.tris, tri)
		}
	}
}

// clipNear cuts a view-space polygon against the near plane.
func clipNear(poly []scene.Vec3, near float64) []scene.Vec3 {
	inside := func(p scene.Vec3) bool { return -p.Z >= near }
	out := make([]scene.Vec3, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		if inside(cur) != inside(prev) {
			t := (-near - prev.Z) / (cur.Z - prev.Z)
			out = append(out, prev.Add(cur.Sub(prev).Scale(t)))
		}
		if inside(cur) {
			out = append(out, cur)
		}
	}
	return out
}

func shade(base color.RGBA, light scene.Light, diffuse float64, fog scene.Fog, depth float64) color.RGBA {
	channel := func(c, lc, ac uint8) float64 {
		lit := float64(c) / 255 * (float64(ac)/255 + diffuse*float64(lc)/255)
		return math.Min(1, lit)
	}
	f := fog.Factor(depth)
	mix := func(v float64, fc uint8) uint8 {
		return uint8(math.Round((v*(1-f) + float64(fc)/255*f) * 255))
	}
	return color.RGBA{
		R: mix(channel(base.R, light.Color.R, light.Ambient.R), fog.Color.R),
		G: mix(channel(base.G, light.Color.G, light.Ambient.G), fog.Color.G),
		B: mix(channel(base.B, light.Color.B, light.Ambient.B), fog.Color.B),
		A: base.A,
	}
}

func (r *Renderer) flush(screen *ebiten.Image, tris []triangle) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, t := range tris {
		i := uint16(len(r.vertices))
		for _, p := range t.pts {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   p[0],
				DstY:   p[1],
				SrcX:   1.5,
				SrcY:   1.5,
				ColorR: float32(t.c.R) / 255,
				ColorG: float32(t.c.G) / 255,
				ColorB: float32(t.c.B) / 255,
				ColorA: t.alpha,
			})
		}
		r.indices = append(r.indices, i, i+1, i+2)
	}
	screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, &r.op)
}
