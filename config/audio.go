package config

import "time"

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	DefaultVolume float64
	LoadTimeout   time.Duration // how long to wait for the track to become playable

	// Metronome used when a song ships without an audio file
	ClickFrequency float64 // Hz
	ClickLength    time.Duration
	AccentEvery    int // beats per bar, the first beat is accented

	// Cut feedback
	CueVolume     float64
	HitFrequency  float64 // Hz
	MissFrequency float64 // Hz
}

var Audio AudioConfig

func init() {
	Audio = AudioConfig{
		SampleRate:     44100,
		DefaultVolume:  0.75,
		LoadTimeout:    10 * time.Second,
		ClickFrequency: 1000,
		ClickLength:    30 * time.Millisecond,
		AccentEvery:    4,
		CueVolume:      0.5,
		HitFrequency:   1760,
		MissFrequency:  220,
	}
}
