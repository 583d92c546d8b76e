package render

import (
	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const statsLineHeight = 13

// DrawStats shows renderer statistics. While presenting they are drawn at
// the in-world panel, otherwise in the top-right corner when enabled.
func DrawStats(e *ecs.ECS, screen *ebiten.Image) {
	gameEntry, ok := components.Game.First(e.World)
	if !ok {
		return
	}
	game := components.Game.Get(gameEntry)
	if game.Stats == nil {
		return
	}

	width := screen.Bounds().Dx()
	margin := cfg.UI.Margin
	lines := game.Stats.Lines()
	panelW := 150.0
	panelH := float64(len(lines)*statsLineHeight) + margin

	x, y := float64(width)-panelW-margin, margin
	panel := game.Stats.Panel()
	switch {
	case panel != nil && game.Stage.Scene.Contains(panel.Node()):
		w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
		px, py, ok := game.Stage.Camera.Project(panel.Node().WorldPosition(), w, h)
		if !ok {
			return
		}
		x, y = px-panelW/2, py-panelH/2
	case !showStats(e):
		return
	}

	vector.FillRect(screen, float32(x), float32(y), float32(panelW), float32(panelH), cfg.UI.PanelColor, false)
	face := fonts.Small.Get()
	for i, line := range lines {
		text.Draw(screen, line, face, int(x+margin/2), int(y)+(i+1)*statsLineHeight, cfg.UI.TextColor)
	}
}

func showStats(e *ecs.ECS) bool {
	entry, ok := components.Session.First(e.World)
	if !ok {
		return false
	}
	return components.Session.Get(entry).ShowStats
}
