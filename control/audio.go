package control

import (
	"sync"

	"github.com/automoto/saberbeat/assets"
	"github.com/automoto/saberbeat/assets/songs"
	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/yohamta/donburi/ecs"
)

var (
	cues     *assets.Cues
	cuesOnce sync.Once
)

func initCues() {
	cuesOnce.Do(func() {
		click := func(freq float64) songs.Click {
			return songs.Click{
				Frequency: freq,
				Length:    cfg.Audio.ClickLength.Seconds(),
				Volume:    cfg.Audio.CueVolume,
			}
		}
		ctx := assets.AudioContext(cfg.Audio.SampleRate)
		cues = assets.NewCues(ctx, click(cfg.Audio.HitFrequency), click(cfg.Audio.MissFrequency))
	})
}

// UpdateAudio plays the cues queued during the frame.
func UpdateAudio(e *ecs.ECS) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	audioData := components.Audio.Get(entry)
	if len(audioData.PendingCues) == 0 {
		return
	}

	initCues()
	for _, cue := range audioData.PendingCues {
		switch cue {
		case components.CueHit:
			cues.Hit()
		case components.CueMiss:
			cues.Miss()
		}
	}
	audioData.PendingCues = audioData.PendingCues[:0]
}

// getOrCreateAudio returns the singleton Audio component, creating if needed
func getOrCreateAudio(e *ecs.ECS) *components.AudioData {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Audio))
	}
	return components.Audio.Get(entry)
}
