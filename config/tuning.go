package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the subset of configuration that may be overridden from a YAML
// file. Absent keys keep their defaults.
type Tuning struct {
	Gameplay *struct {
		FloorWidth  *float64 `yaml:"floor_width"`
		FloorLength *float64 `yaml:"floor_length"`
		NoteFlyTime *float64 `yaml:"note_fly_time"`
		MaxNotes    *int     `yaml:"max_notes"`
		HitScore    *int     `yaml:"hit_score"`
		MissScore   *int     `yaml:"miss_score"`
	} `yaml:"gameplay"`
	Rig *struct {
		RigHeight   *float64 `yaml:"rig_height"`
		HandHeight  *float64 `yaml:"hand_height"`
		SaberLength *float64 `yaml:"saber_length"`
	} `yaml:"rig"`
	Audio *struct {
		Volume *float64 `yaml:"volume"`
	} `yaml:"audio"`
}

// LoadTuning reads a tuning file.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read tuning %s: %w", path, err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes tuning YAML and validates the values it sets.
func ParseTuning(data []byte) (*Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("config: parse tuning: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("config: tuning: %w", err)
	}
	return &t, nil
}

func (t *Tuning) validate() error {
	if g := t.Gameplay; g != nil {
		if g.FloorWidth != nil && *g.FloorWidth <= 0 {
			return errors.New("floor_width must be positive")
		}
		if g.FloorLength != nil && *g.FloorLength <= 0 {
			return errors.New("floor_length must be positive")
		}
		if g.NoteFlyTime != nil && *g.NoteFlyTime <= 0 {
			return errors.New("note_fly_time must be positive")
		}
		if g.MaxNotes != nil && *g.MaxNotes <= 0 {
			return errors.New("max_notes must be positive")
		}
	}
	if a := t.Audio; a != nil && a.Volume != nil && (*a.Volume < 0 || *a.Volume > 1) {
		return errors.New("volume must be within [0, 1]")
	}
	return nil
}

// Apply writes the overrides into the global configuration.
func (t *Tuning) Apply() {
	if g := t.Gameplay; g != nil {
		set(&Gameplay.FloorWidth, g.FloorWidth)
		set(&Gameplay.FloorLength, g.FloorLength)
		set(&Gameplay.NoteFlyTime, g.NoteFlyTime)
		set(&Gameplay.MaxNotes, g.MaxNotes)
		set(&Gameplay.HitScore, g.HitScore)
		set(&Gameplay.MissScore, g.MissScore)
	}
	if r := t.Rig; r != nil {
		set(&Rig.RigHeight, r.RigHeight)
		set(&Rig.HandHeight, r.HandHeight)
		set(&Rig.SaberLength, r.SaberLength)
	}
	if a := t.Audio; a != nil {
		set(&Audio.DefaultVolume, a.Volume)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
