package songs

import (
	"encoding/binary"
	"testing"

	"github.com/automoto/saberbeat/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSong(t *testing.T) {
	for _, difficulty := range []string{"Easy", "Expert", ""} {
		song, err := chart.Load(Default(), difficulty)
		require.NoError(t, err, difficulty)
		assert.Equal(t, 120.0, song.Info.BeatsPerMinute)
		assert.Empty(t, song.Info.SongFilename, "the bundled song plays a click track")
		assert.NotEmpty(t, song.Notes)
	}

	_, err := chart.Load(Default(), "Expert+")
	assert.ErrorIs(t, err, chart.ErrNoDifficulty)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	_, err := chart.Load(Open(dir), "")
	assert.Error(t, err, "an empty directory has no Info.dat")

	_, err = chart.Load(Open(""), "Expert")
	assert.NoError(t, err)
}

func TestMetronome(t *testing.T) {
	click := Click{Frequency: 1000, Length: 0.01, AccentEvery: 4, Volume: 0.5}
	pcm := Metronome(8000, 120, 8, click)
	require.Len(t, pcm, 4000*8*bytesPerFrame)

	sample := func(frame int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[frame*bytesPerFrame:]))
	}
	assert.Zero(t, sample(0), "ticks start at a zero crossing")
	assert.NotZero(t, sample(2))
	assert.Zero(t, sample(100), "silence between ticks")
	assert.NotZero(t, sample(4002), "the next beat ticks again")
	assert.Equal(t, pcm[bytesPerFrame*3:bytesPerFrame*3+2], pcm[bytesPerFrame*3+2:bytesPerFrame*4], "both channels carry the tick")

	assert.Nil(t, Metronome(8000, 0, 8, click))
	assert.Nil(t, Metronome(8000, 120, 0, click))
	assert.Len(t, Tick(8000, click), 80*bytesPerFrame)
}
