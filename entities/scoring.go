package entities

import (
	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/xr"
)

// Scoring holds the points awarded for a correct and a wrong cut.
type Scoring struct {
	Hit  int
	Miss int
}

var DefaultScoring = Scoring{Hit: 100, Miss: -50}

// Delta returns the score change for hand cutting a note of type t. The left
// saber may cut anything but blue notes, the right saber anything but red
// ones. Bombs always cost points.
func (s Scoring) Delta(hand xr.Hand, t chart.NoteType) int {
	if t == chart.Bomb {
		return s.Miss
	}
	switch {
	case hand == xr.Left && t != chart.Blue:
		return s.Hit
	case hand == xr.Right && t != chart.Red:
		return s.Hit
	}
	return s.Miss
}

// ScoreDelta applies DefaultScoring.
func ScoreDelta(hand xr.Hand, t chart.NoteType) int {
	return DefaultScoring.Delta(hand, t)
}

// ScoreKeeper accumulates points.
type ScoreKeeper interface {
	Add(delta int)
	Reset()
	Value() int
}
