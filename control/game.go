package control

import (
	"log"

	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// UpdateGame steps every gameplay system once and queues a cue for each cut
// resolved this frame.
func UpdateGame(e *ecs.ECS) {
	gameEntry, ok := components.Game.First(e.World)
	if !ok {
		return
	}
	game := components.Game.Get(gameEntry)

	dt := 1 / float64(ebiten.TPS())
	for _, s := range game.Systems {
		s.Update(dt)
	}

	hits := game.BeatSaber.Hits()
	if len(hits) == 0 {
		return
	}
	audio := getOrCreateAudio(e)
	for _, hit := range hits {
		if hit.Delta > 0 {
			audio.PendingCues = append(audio.PendingCues, components.CueHit)
		} else {
			audio.PendingCues = append(audio.PendingCues, components.CueMiss)
		}
	}
}

// UpdateWatch reloads the chart after its files change on disk. A change
// seen mid-song is applied once the song stops.
func UpdateWatch(e *ecs.ECS) {
	session, game, ok := sessionAndGame(e)
	if !ok || game.Watcher == nil {
		return
	}

	changed, err := game.Watcher.Poll()
	if err != nil {
		log.Printf("Warning: Chart watcher: %v", err)
	}
	if changed {
		game.ReloadPending = true
	}
	if !game.ReloadPending || game.BeatSaber.Playing() {
		return
	}
	game.ReloadPending = false

	song, err := chart.Load(game.SongFS, game.Difficulty)
	if err != nil {
		log.Printf("Warning: Could not reload chart: %v", err)
		session.SetStatus("Chart reload failed", statusSeconds)
		return
	}
	game.BeatSaber.Reload(song)
	session.SetStatus("Chart reloaded", statusSeconds)
}
