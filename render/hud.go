package render

import (
	"fmt"

	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	textv2 "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	scoreFontSize = 48
	hintText      = "Space play/stop   X enter/exit XR   Tab swap hand   F3 stats   F4 debug   Esc quit"
)

var scoreDrawOp = &textv2.DrawOptions{}

// DrawHUD renders the floating score and the desktop overlay with song
// info, status messages and key hints.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	gameEntry, ok := components.Game.First(e.World)
	if !ok {
		return
	}
	game := components.Game.Get(gameEntry)
	bs := game.BeatSaber
	if bs == nil {
		return
	}

	drawScore(screen, game)

	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	margin := int(cfg.UI.Margin)
	hud := fonts.HUD.Get()

	song := bs.Song()
	title := fmt.Sprintf("%s [%s]", song.Info.SongName, song.Difficulty)
	text.Draw(screen, title, hud, margin, margin+16, cfg.UI.TextColor)

	state := "stopped"
	if bs.Playing() {
		state = fmt.Sprintf("beat %.1f", bs.Beat())
	}
	text.Draw(screen, fmt.Sprintf("%s   best %d", state, bs.Best()), hud, margin, margin+36, cfg.UI.TextColor)

	if sessionEntry, ok := components.Session.First(e.World); ok {
		session := components.Session.Get(sessionEntry)
		if session.StatusTimer > 0 && session.Status != "" {
			drawBanner(screen, session.Status, width, height)
		}
	}

	small := fonts.Small.Get()
	bounds := text.BoundString(small, hintText)
	text.Draw(screen, hintText, small, (width-bounds.Dx())/2, height-margin, cfg.UI.TextColor)
}

// drawScore places the score text where the score label sits in the world.
func drawScore(screen *ebiten.Image, game *components.GameData) {
	score := game.BeatSaber.Score()
	if score == nil || !game.Stage.Scene.Contains(score.Node()) {
		return
	}
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	x, y, ok := game.Stage.Camera.Project(score.Node().WorldPosition(), w, h)
	if !ok {
		return
	}

	face := fonts.UIFace(scoreFontSize)
	s := score.Text()
	tw, th := textv2.Measure(s, face, 0)
	scale := float64(score.Scale())

	scoreDrawOp.GeoM.Reset()
	scoreDrawOp.GeoM.Translate(-tw/2, -th/2)
	scoreDrawOp.GeoM.Scale(scale, scale)
	scoreDrawOp.GeoM.Translate(x, y)
	scoreDrawOp.ColorScale.Reset()
	scoreDrawOp.ColorScale.ScaleWithColor(cfg.UI.TextColor)
	textv2.Draw(screen, s, face, scoreDrawOp)
}

func drawBanner(screen *ebiten.Image, msg string, width, height int) {
	face := fonts.HUD.Get()
	bounds := text.BoundString(face, msg)
	pad := int(cfg.UI.Margin)
	bw, bh := bounds.Dx()+2*pad, bounds.Dy()+2*pad
	bx, by := (width-bw)/2, height/3

	vector.FillRect(screen, float32(bx), float32(by), float32(bw), float32(bh), cfg.UI.PanelColor, false)
	text.Draw(screen, msg, face, bx+pad, by+pad-bounds.Min.Y, cfg.UI.TextColor)
}
