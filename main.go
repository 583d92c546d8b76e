package main

import (
	"image"
	"log"
	"os"

	"github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/fonts"
	"github.com/automoto/saberbeat/scenes"
	"github.com/automoto/saberbeat/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
	Resize(width, height int)
	Quitting() bool
	Close()
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(p *systems.Persistence) *Game {
	fonts.LoadDefaults()

	return &Game{
		bounds: image.Rectangle{},
		scene:  scenes.NewSaberScene(p),
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	if g.scene.Quitting() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout follows the window size so the camera aspect tracks resizes.
func (g *Game) Layout(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		width, height = config.C.Width, config.C.Height
	}
	if g.bounds.Dx() != width || g.bounds.Dy() != height {
		g.bounds = image.Rect(0, 0, width, height)
		g.scene.Resize(width, height)
	}
	return width, height
}

// applySavedSettings restores the previous session's toggles. Flags given on
// the command line win.
func applySavedSettings(saved *systems.SavedSettings, flags *config.Flags, defaultDifficulty string) {
	config.Audio.DefaultVolume = saved.Volume
	config.Debug.ShowStats = config.Debug.ShowStats || saved.ShowStats
	config.Debug.Enabled = config.Debug.Enabled || saved.Debug
	if saved.Difficulty != "" && flags.Difficulty == defaultDifficulty {
		config.Song.Difficulty = saved.Difficulty
	}
}

func main() {
	defaultDifficulty := config.Song.Difficulty
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	flags.Apply()

	if flags.Tuning != "" {
		tuning, err := config.LoadTuning(flags.Tuning)
		if err != nil {
			log.Fatal(err)
		}
		tuning.Apply()
	}

	// Initialize persistence and load saved settings
	// A nil persistence keeps nothing; OpenPersistence logs why.
	persistence, _ := systems.OpenPersistence("saberbeat")
	if saved, err := persistence.LoadSettings(); err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
	} else if saved != nil {
		applySavedSettings(saved, flags, defaultDifficulty)
	}

	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(persistence)
	defer game.scene.Close()
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
