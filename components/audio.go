package components

import "github.com/yohamta/donburi"

// Cue is a one-shot sound request.
type Cue int

const (
	CueHit Cue = iota
	CueMiss
)

// AudioData queues cues raised during the frame (singleton component)
type AudioData struct {
	PendingCues []Cue
}

var Audio = donburi.NewComponentType[AudioData]()
