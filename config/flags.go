package config

import (
	"errors"
	"fmt"

	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.1.0"

// Flags holds the parsed command line.
type Flags struct {
	SongDir    string
	Difficulty string
	XR         string
	Tuning     string
	Stats      bool
	Debug      bool
	Watch      bool
	Width      int
	Height     int
}

// ParseFlags parses args (without the program name).
func ParseFlags(args []string) (*Flags, error) {
	app := kingpin.New("saberbeat", "Swing two sabers through notes in time with the music.")
	app.Version(Version)

	var (
		songDir    = app.Flag("song", "Song directory containing Info.dat").Short('s').ExistingDir()
		difficulty = app.Flag("difficulty", "Difficulty to play").Default(Song.Difficulty).Short('d').String()
		xrMode     = app.Flag("xr", "Immersive session to enter at startup").Default(XR.AutoEnter).Enum("none", "vr", "ar")
		tuning     = app.Flag("tuning", "YAML file overriding gameplay tuning").Short('t').ExistingFile()
		stats      = app.Flag("stats", "Show renderer statistics").Bool()
		debug      = app.Flag("debug", "Draw collider boxes").Bool()
		watch      = app.Flag("watch", "Reload the chart when it changes on disk").Short('w').Bool()
		width      = app.Flag("width", "Window width").Default(fmt.Sprint(C.Width)).Int()
		height     = app.Flag("height", "Window height").Default(fmt.Sprint(C.Height)).Int()
	)

	if _, err := app.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if *watch && *songDir == "" {
		return nil, errors.New("config: --watch needs --song")
	}

	return &Flags{
		SongDir:    *songDir,
		Difficulty: *difficulty,
		XR:         *xrMode,
		Tuning:     *tuning,
		Stats:      *stats,
		Debug:      *debug,
		Watch:      *watch,
		Width:      *width,
		Height:     *height,
	}, nil
}

// Apply copies the flags into the global configuration.
func (f *Flags) Apply() {
	Song.Dir = f.SongDir
	Song.Difficulty = f.Difficulty
	Song.Watch = f.Watch
	XR.AutoEnter = f.XR
	Debug.Enabled = f.Debug
	Debug.ShowStats = f.Stats
	if f.Width > 0 {
		C.Width = f.Width
	}
	if f.Height > 0 {
		C.Height = f.Height
	}
}
