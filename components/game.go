package components

import (
	"io/fs"

	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/systems"
	"github.com/automoto/saberbeat/xr/desktop"
	"github.com/yohamta/donburi"
)

// GameData links the frame pipeline to the gameplay systems (singleton
// component).
type GameData struct {
	Stage     *systems.Stage
	Systems   []systems.System
	Rig       *systems.RigSystem
	BeatSaber *systems.BeatSaberSystem
	Stats     *systems.StatsSystem

	// Desktop is set when the XR runtime is the pointer-driven simulation.
	Desktop *desktop.Runtime

	Persistence *systems.Persistence

	// SongFS and Difficulty locate the chart for hot reloads.
	SongFS     fs.FS
	Difficulty string
	Watcher    *chart.Watcher
	// ReloadPending defers a chart reload until the song stops.
	ReloadPending bool
}

var Game = donburi.NewComponentType[GameData]()
