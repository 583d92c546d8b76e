package chart

import "math"

// Schedule buckets notes by integer beat.
type Schedule map[int][]Note

// Bake groups notes by floor(time). Notes keep their chart order within a
// bucket.
func Bake(notes []Note) Schedule {
	s := make(Schedule)
	for _, n := range notes {
		key := int(math.Floor(n.Time))
		s[key] = append(s[key], n)
	}
	return s
}

// Len returns the number of notes in the schedule.
func (s Schedule) Len() int {
	var n int
	for _, bucket := range s {
		n += len(bucket)
	}
	return n
}

// Timing holds the flight parameters derived from a song's tempo and the
// runway geometry.
type Timing struct {
	BPS            float64 // beats per second
	SecondsPerBeat float64
	Velocity       float64 // metres per second
	BeatsForFly    float64 // beats a note needs to cover the runway
	FlyDistance    float64
	FlyTime        float64
}

// NewTiming derives flight parameters for a runway of length flyDistance
// crossed in flyTime seconds.
func NewTiming(bpm, flyDistance, flyTime float64) Timing {
	bps := bpm / 60
	velocity := flyDistance / flyTime
	return Timing{
		BPS:            bps,
		SecondsPerBeat: 1 / bps,
		Velocity:       velocity,
		BeatsForFly:    bps * (flyDistance / velocity),
		FlyDistance:    flyDistance,
		FlyTime:        flyTime,
	}
}

// DueKey returns the bucket that has to be launched when the clock reaches
// beat so those notes arrive on time.
func (t Timing) DueKey(beat float64) int {
	return int(math.Floor(beat + t.BeatsForFly))
}

// SpawnDepth is the distance along the runway a note launched at beat has
// already covered, so that it reaches the end of the runway exactly at its
// own time. Notes due later than one full flight start behind the runway
// (negative depth).
func (t Timing) SpawnDepth(n Note, beat float64) float64 {
	return t.Velocity * t.SecondsPerBeat * (beat + t.BeatsForFly - n.Time)
}
