package main

import (
	"testing"

	"github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type resizeLog struct {
	sizes [][2]int
}

func (r *resizeLog) Update()                  {}
func (r *resizeLog) Draw(*ebiten.Image)       {}
func (r *resizeLog) Resize(width, height int) { r.sizes = append(r.sizes, [2]int{width, height}) }
func (r *resizeLog) Quitting() bool           { return false }
func (r *resizeLog) Close()                   {}

func TestLayoutFollowsWindow(t *testing.T) {
	scene := &resizeLog{}
	g := &Game{scene: scene}

	w, h := g.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	// Same size again does not resize.
	g.Layout(800, 600)
	g.Layout(1920, 1080)
	assert.Equal(t, [][2]int{{800, 600}, {1920, 1080}}, scene.sizes)

	w, h = g.Layout(0, 0)
	assert.Equal(t, config.C.Width, w)
	assert.Equal(t, config.C.Height, h)
}

func TestApplySavedSettings(t *testing.T) {
	oldAudio, oldDebug, oldSong := config.Audio, config.Debug, config.Song
	t.Cleanup(func() { config.Audio, config.Debug, config.Song = oldAudio, oldDebug, oldSong })

	saved := &systems.SavedSettings{Volume: 0.3, ShowStats: true, Difficulty: "Easy"}

	applySavedSettings(saved, &config.Flags{Difficulty: "Expert"}, "Expert")
	assert.Equal(t, 0.3, config.Audio.DefaultVolume)
	assert.True(t, config.Debug.ShowStats)
	assert.False(t, config.Debug.Enabled)
	assert.Equal(t, "Easy", config.Song.Difficulty)

	config.Song.Difficulty = "Hard"
	applySavedSettings(saved, &config.Flags{Difficulty: "Hard"}, "Expert")
	assert.Equal(t, "Hard", config.Song.Difficulty, "an explicit flag wins")
}
