package render

import (
	"image/color"

	"github.com/automoto/saberbeat/collision"
	"github.com/automoto/saberbeat/components"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// Pairs of Box3.Corners indices forming the box outline.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawDebug outlines every collider registered in the broad phase.
func (r *Renderer) DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	sessionEntry, ok := components.Session.First(e.World)
	if !ok || !components.Session.Get(sessionEntry).Debug {
		return
	}
	gameEntry, ok := components.Game.First(e.World)
	if !ok {
		return
	}
	stage := components.Game.Get(gameEntry).Stage
	cam := stage.Camera
	view := cam.ViewMatrix()
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	for _, obj := range stage.Space.Objects() {
		collider, ok := obj.Data.(*collision.Collider)
		if !ok {
			continue
		}
		box := collider.Box()
		if box.IsEmpty() {
			continue
		}

		// Determine color based on tags
		c := color.RGBA{0, 255, 255, 255} // Cyan default
		if obj.HasTags(tags.ResolvSaber) {
			c = color.RGBA{255, 255, 0, 255} // Yellow
		} else if obj.HasTags(tags.ResolvNote) {
			c = color.RGBA{0, 255, 0, 255} // Green
			if len(collider.Contacts()) > 0 {
				c = color.RGBA{255, 0, 255, 255} // Magenta
			}
		}

		corners := box.Corners()
		for _, edge := range boxEdges {
			a, b := scene.TransformPoint(view, corners[edge[0]]), scene.TransformPoint(view, corners[edge[1]])
			ax, ay, okA := cam.ProjectView(a, w, h)
			bx, by, okB := cam.ProjectView(b, w, h)
			if !okA || !okB {
				continue
			}
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, c, false)
			r.info.Lines++
		}
	}
}
