package scenes

import (
	"testing"

	"github.com/automoto/saberbeat/chart"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/stretchr/testify/assert"
)

func TestTrackOptions(t *testing.T) {
	old := cfg.Audio
	t.Cleanup(func() { cfg.Audio = old })
	cfg.Audio.DefaultVolume = 0.4

	opts := trackOptions(&chart.Song{Notes: []chart.Note{{Time: 8}}})
	assert.Equal(t, 0.4, opts.Volume)
	assert.Equal(t, 1.0, opts.Click.Volume, "the player applies the volume, not the samples")
	assert.Equal(t, int(8+cfg.Gameplay.SongEndPaddingBeats+1), opts.ClickBeats)
}
