package systems

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/entities"
	"github.com/automoto/saberbeat/scene"
)

// Track is the song audio.
type Track interface {
	Load(ctx context.Context) error
	Play()
	Pause()
	Rewind() error
}

// ScoreRecorder receives the final score of every run.
type ScoreRecorder interface {
	RecordScore(song, difficulty string, score int)
}

// BeatSaberParams sizes the runway and the note pool.
type BeatSaberParams struct {
	FloorWidth  float64
	FloorLength float64
	// FlyTime is how long a note takes to travel the runway, in seconds.
	FlyTime     float64
	NoteYOffset float64
	MaxNotes    int
	Scoring     entities.Scoring
	NoteColors  entities.NoteColors
	FloorColor  color.RGBA
	// ScorePosition places the score label in world space.
	ScorePosition scene.Vec3
	PulseScale    float32
	PulseTime     float32
	// EndPadding is how many beats past the last note the song keeps running.
	EndPadding float64
}

// BeatSaberSystem plays a song: it schedules notes onto the runway in time
// with the music, resolves saber hits and keeps the score.
type BeatSaberSystem struct {
	*engine.System
	stage    *Stage
	params   BeatSaberParams
	song     *chart.Song
	track    Track
	rig      *RigSystem
	clock    *Clock
	recorder ScoreRecorder

	timing   chart.Timing
	schedule chart.Schedule
	floor    *entities.Floor
	notes    *entities.Notes
	score    *entities.Score

	playing  bool
	beat     float64
	prevBeat int
	prevKey  int
	endBeat  float64
	best     int
	hits     []entities.Hit
}

func NewBeatSaberSystem(stage *Stage, params BeatSaberParams, song *chart.Song, track Track, rig *RigSystem, clock *Clock) *BeatSaberSystem {
	if clock == nil {
		clock = NewClock(nil)
	}
	return &BeatSaberSystem{
		System:   engine.NewSystem(stage.World, stage.Scene.Root),
		stage:    stage,
		params:   params,
		song:     song,
		track:    track,
		rig:      rig,
		clock:    clock,
		prevBeat: -1,
		prevKey:  -1,
	}
}

// SetRecorder registers where final scores go.
func (s *BeatSaberSystem) SetRecorder(r ScoreRecorder) {
	s.recorder = r
}

// Init loads the audio, bakes the chart and builds the floor, note pool and
// score label. The rig system must be initialised first.
func (s *BeatSaberSystem) Init(ctx context.Context) error {
	if err := s.track.Load(ctx); err != nil {
		return fmt.Errorf("beat saber: load track: %w", err)
	}

	p := s.params
	s.timing = chart.NewTiming(s.song.Info.BeatsPerMinute, p.FloorLength, p.FlyTime)
	s.schedule = chart.Bake(s.song.Notes)
	s.endBeat = s.songEnd()

	s.floor = entities.NewFloor(s.World(), p.FloorWidth, p.FloorLength, p.FloorColor)
	s.floor.Node().Position.Z = -p.FloorLength / 2
	s.AddEntity(s.floor, nil)

	cell := p.FloorWidth / chart.Lanes
	s.notes = entities.NewNotes(s.World(), s.stage.Space, entities.NoteParams{
		Cell:       cell,
		YOffset:    p.NoteYOffset,
		Velocity:   s.timing.Velocity,
		MaxFlyDist: s.timing.FlyDistance,
		Colors:     p.NoteColors,
	}, p.MaxNotes, s.rig.SaberIDs())
	s.notes.Node().Position.Z = -p.FloorLength
	s.AddEntity(s.notes, nil)

	s.score = entities.NewScore(s.World(), p.PulseScale, p.PulseTime)
	s.score.Node().Position = p.ScorePosition
	s.AddEntity(s.score, nil)

	s.clock.Stop()
	return nil
}

// Play starts the song from the current position. It is a no-op while
// playing or before Init.
func (s *BeatSaberSystem) Play() {
	if s.playing || s.notes == nil {
		return
	}
	s.playing = true
	s.clock.Start()
	s.track.Play()
}

// Stop ends the run: the song rewinds, the score resets and every note
// returns to the pool.
func (s *BeatSaberSystem) Stop() {
	if !s.playing {
		return
	}
	s.playing = false
	s.clock.Stop()
	s.track.Pause()
	if err := s.track.Rewind(); err != nil {
		log.Printf("Warning: Could not rewind track: %v", err)
	}

	final := s.score.Value()
	if final > s.best {
		s.best = final
	}
	if s.recorder != nil {
		s.recorder.RecordScore(s.song.Info.SongName, s.song.Difficulty, final)
	}

	s.score.Reset()
	s.notes.Stop()
	s.beat = 0
	s.prevBeat = -1
	s.prevKey = -1
}

// Toggle switches between Play and Stop.
func (s *BeatSaberSystem) Toggle() {
	if s.playing {
		s.Stop()
		return
	}
	s.Play()
}

func (s *BeatSaberSystem) Update(float64) {
	s.hits = s.hits[:0]
	delta := s.clock.Delta()
	if s.playing {
		s.beat = s.clock.Elapsed() * s.timing.BPS
		s.playNotes(s.beat)
	}

	s.UpdateEntities(delta)

	if !s.playing {
		return
	}
	if s.rig != nil && s.rig.Rig() != nil {
		for _, hit := range s.notes.ResolveHits(s.rig.Sabers(), s.params.Scoring, s.score) {
			s.rig.Rig().Saber(hit.Hand).Flash()
			s.hits = append(s.hits, hit)
		}
	}
	if s.beat > s.endBeat {
		s.Stop()
	}
}

// playNotes launches the buckets that became due since the last integer
// beat. Buckets are keyed by the beat their notes reach the player, so
// launching them BeatsForFly early lets them arrive on time.
func (s *BeatSaberSystem) playNotes(beat float64) {
	b := int(math.Floor(beat))
	if b == s.prevBeat {
		return
	}
	s.prevBeat = b

	due := s.timing.DueKey(beat)
	for key := s.prevKey + 1; key <= due; key++ {
		descs := s.schedule[key]
		if len(descs) == 0 {
			continue
		}
		s.notes.Spawn(descs, func(n chart.Note) float64 {
			return s.timing.SpawnDepth(n, beat)
		})
	}
	if due > s.prevKey {
		s.prevKey = due
	}
}

// OnXRPresent has nothing to do: the runway is the same in and out of XR.
func (s *BeatSaberSystem) OnXRPresent(bool) {}

func (s *BeatSaberSystem) Dispose() {
	if s.playing {
		s.Stop()
	}
	s.DisposeEntities()
	s.floor, s.notes, s.score = nil, nil, nil
}

func (s *BeatSaberSystem) Playing() bool          { return s.playing }
func (s *BeatSaberSystem) Beat() float64          { return s.beat }
func (s *BeatSaberSystem) Song() *chart.Song      { return s.song }
func (s *BeatSaberSystem) Notes() *entities.Notes { return s.notes }
func (s *BeatSaberSystem) Score() *entities.Score { return s.score }

// Hits returns the cuts resolved during the last update.
func (s *BeatSaberSystem) Hits() []entities.Hit { return s.hits }

// Best returns the highest final score seen since the system was created.
func (s *BeatSaberSystem) Best() int { return s.best }

// SetBest seeds the best score, typically from saved data.
func (s *BeatSaberSystem) SetBest(best int) { s.best = best }

// Reload swaps in a new chart. A running song is stopped first.
func (s *BeatSaberSystem) Reload(song *chart.Song) {
	s.Stop()
	s.song = song
	s.timing = chart.NewTiming(song.Info.BeatsPerMinute, s.params.FloorLength, s.params.FlyTime)
	s.schedule = chart.Bake(song.Notes)
	s.endBeat = s.songEnd()
}

// songEnd is the beat after which a run stops: the last note plus padding,
// or the end of the audio when that is later.
func (s *BeatSaberSystem) songEnd() float64 {
	end := s.song.LastBeat() + s.params.EndPadding
	if d, ok := s.track.(interface{ Duration() time.Duration }); ok {
		end = math.Max(end, d.Duration().Seconds()*s.timing.BPS)
	}
	return end
}
