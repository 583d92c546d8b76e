package ui

import (
	"image/color"

	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/control"
	"github.com/automoto/saberbeat/fonts"
	"github.com/automoto/saberbeat/xr"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/yohamta/donburi/ecs"
)

// SaberUI holds the clickable session controls drawn over the game
type SaberUI struct {
	UI *ebitenui.UI

	session *components.SessionData
	game    *components.GameData

	xrButton   *widget.Button
	playButton *widget.Button

	normalFace text.Face
}

// NewSaberUI creates the XR and play buttons in the bottom-right corner
func NewSaberUI() *SaberUI {
	sui := &SaberUI{
		normalFace: fonts.UIFace(14),
	}
	sui.buildUI()
	return sui
}

func (sui *SaberUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(int(cfg.UI.Margin))),
			widget.RowLayoutOpts.Spacing(cfg.UI.ButtonSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)

	sui.xrButton = sui.newButton("Enter XR", func() {
		control.ToggleXR(sui.session, sui.game)
	})
	sui.playButton = sui.newButton("Play", func() {
		sui.game.BeatSaber.Toggle()
	})
	buttons.AddChild(sui.xrButton)
	buttons.AddChild(sui.playButton)

	rootContainer.AddChild(buttons)
	sui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (sui *SaberUI) newButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(cfg.UI.ButtonWidth, cfg.UI.ButtonHeight),
		),
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(label, &sui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{255, 255, 200, 255},
			Pressed:  color.RGBA{200, 200, 200, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if sui.game != nil {
				onClick()
			}
		}),
	)
}

func buttonImage() *widget.ButtonImage {
	idle := image.NewNineSliceColor(color.RGBA{60, 60, 80, 220})
	hover := image.NewNineSliceColor(color.RGBA{80, 80, 100, 230})
	pressed := image.NewNineSliceColor(color.RGBA{40, 40, 60, 230})
	disabled := image.NewNineSliceColor(color.RGBA{40, 40, 40, 200})

	return &widget.ButtonImage{
		Idle:     idle,
		Hover:    hover,
		Pressed:  pressed,
		Disabled: disabled,
	}
}

// xrLabel names what the XR button will do for the session state.
func xrLabel(session *components.SessionData) string {
	switch {
	case session.Presenting:
		return "Exit XR"
	case session.Support == xr.NotFound:
		return "XR not found"
	default:
		return "Enter XR"
	}
}

func playLabel(playing bool) string {
	if playing {
		return "Stop"
	}
	return "Play"
}

// UpdateUI refreshes the labels from the current session and game state.
func (sui *SaberUI) UpdateUI() {
	if textWidget := sui.xrButton.Text(); textWidget != nil {
		textWidget.Label = xrLabel(sui.session)
	}
	sui.xrButton.GetWidget().Disabled = sui.session.Support == xr.NotFound && !sui.session.Presenting
	if textWidget := sui.playButton.Text(); textWidget != nil {
		textWidget.Label = playLabel(sui.game.BeatSaber.Playing())
	}
}

// UpdateSystem is the ECS system driving the widgets.
func (sui *SaberUI) UpdateSystem(e *ecs.ECS) {
	sessionEntry, ok := components.Session.First(e.World)
	if !ok {
		return
	}
	gameEntry, ok := components.Game.First(e.World)
	if !ok {
		return
	}
	sui.session = components.Session.Get(sessionEntry)
	sui.game = components.Game.Get(gameEntry)

	sui.UI.Update()
	sui.UpdateUI()
}

// Draw is the ECS renderer for the widgets.
func (sui *SaberUI) Draw(_ *ecs.ECS, screen *ebiten.Image) {
	sui.UI.Draw(screen)
}
