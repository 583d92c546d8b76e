package chart

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInfo = `{
  "_version": "2.0.0",
  "_songName": "Test",
  "_beatsPerMinute": 120,
  "_songFilename": "song.ogg",
  "_difficultyBeatmapSets": [{
    "_beatmapCharacteristicName": "Standard",
    "_difficultyBeatmaps": [
      {"_difficulty": "Easy", "_difficultyRank": 1, "_beatmapFilename": "Easy.dat"},
      {"_difficulty": "Expert", "_difficultyRank": 7, "_beatmapFilename": "Expert.dat"}
    ]
  }]
}`

const testExpert = `{
  "_version": "2.0.0",
  "_notes": [
    {"_time": 6.0, "_lineIndex": 1, "_lineLayer": 0, "_type": 0, "_cutDirection": 1},
    {"_time": 6.5, "_lineIndex": 2, "_lineLayer": 0, "_type": 1, "_cutDirection": 1},
    {"_time": 8.25, "_lineIndex": 0, "_lineLayer": 2, "_type": 3, "_cutDirection": 8}
  ]
}`

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"Info.dat":   {Data: []byte(testInfo)},
		"Expert.dat": {Data: []byte(testExpert)},
	}

	song, err := Load(fsys, "expert")
	require.NoError(t, err)
	assert.Equal(t, 120.0, song.Info.BeatsPerMinute)
	assert.Equal(t, "Expert", song.Difficulty)
	require.Len(t, song.Notes, 3)
	assert.Equal(t, Blue, song.Notes[1].Type)
	assert.Equal(t, CutDown, song.Notes[1].CutDirection)
	assert.Equal(t, 8.25, song.LastBeat())

	_, err = Load(fsys, "Hard")
	assert.ErrorIs(t, err, ErrNoDifficulty)

	_, err = Load(fsys, "Easy")
	assert.Error(t, err, "Easy.dat is missing")
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := ParseInfo([]byte(`{"_beatsPerMinute": 0}`))
	assert.ErrorIs(t, err, ErrInvalidTempo)

	_, err = ParseInfo([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseDifficulty([]byte(`{"_notes": [{"_time": 1, "_lineIndex": 4}]}`))
	assert.ErrorContains(t, err, "line index")

	_, err = ParseDifficulty([]byte(`{"_notes": [{"_time": 1, "_cutDirection": 9}]}`))
	assert.ErrorContains(t, err, "cut direction")
}

func TestBake(t *testing.T) {
	notes := []Note{
		{Time: 0.9},
		{Time: 6.0, LineIndex: 1},
		{Time: 6.99, LineIndex: 2},
		{Time: 7.0},
	}
	s := Bake(notes)

	assert.Len(t, s[0], 1)
	require.Len(t, s[6], 2)
	assert.Equal(t, 1, s[6][0].LineIndex, "chart order is kept")
	assert.Len(t, s[7], 1)
	assert.Empty(t, s[5])
	assert.Equal(t, 4, s.Len())
}

func TestTiming(t *testing.T) {
	tm := NewTiming(120, 25, 3)
	assert.InDelta(t, 2.0, tm.BPS, 1e-9)
	assert.InDelta(t, 0.5, tm.SecondsPerBeat, 1e-9)
	assert.InDelta(t, 25.0/3.0, tm.Velocity, 1e-9)
	assert.InDelta(t, 6.0, tm.BeatsForFly, 1e-9)

	assert.Equal(t, 6, tm.DueKey(0))
	assert.Equal(t, 7, tm.DueKey(1.2))

	n := Note{Time: 6}
	assert.InDelta(t, 0, tm.SpawnDepth(n, 0), 1e-9)
	assert.InDelta(t, 25, tm.SpawnDepth(n, 6), 1e-9)
	assert.InDelta(t, -25.0/3.0*0.5*0.5, tm.SpawnDepth(Note{Time: 6.5}, 0), 1e-9)
}

func TestWatcherReportsChartChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Expert.dat"), []byte(testExpert), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "Expert.dat", filepath.Base(name))
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")
}

func TestPollAfterClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for range 100 {
		changed, err := w.Poll()
		assert.False(t, changed)
		assert.NoError(t, err)
	}
}
