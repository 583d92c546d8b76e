package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/automoto/saberbeat/assets/songs"
	"github.com/automoto/saberbeat/chart"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

var ErrNotReady = errors.New("assets: track not ready")

var (
	audioContext *audio.Context
	audioOnce    sync.Once
)

// AudioContext returns the process-wide audio context. ebiten allows only
// one.
func AudioContext(sampleRate int) *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(sampleRate)
	})
	return audioContext
}

// stream is what every ebiten decoder returns.
type stream interface {
	io.ReadSeeker
	Length() int64
}

// TrackOptions configures a Track.
type TrackOptions struct {
	Volume float64
	// Click is used to synthesize a click track when the song has no audio.
	Click songs.Click
	// ClickBeats is the click track length in beats.
	ClickBeats int
}

// Track plays a song's audio file, or a click track when the song has none.
type Track struct {
	ctx    *audio.Context
	fsys   fs.FS
	info   chart.Info
	opts   TrackOptions
	player *audio.Player
	length time.Duration
}

func NewTrack(ctx *audio.Context, fsys fs.FS, info chart.Info, opts TrackOptions) *Track {
	return &Track{ctx: ctx, fsys: fsys, info: info, opts: opts}
}

// Load decodes the audio. It gives up when ctx is done first.
func (t *Track) Load(ctx context.Context) error {
	type result struct {
		s   stream
		err error
	}
	done := make(chan result, 1)
	go func() {
		s, err := t.decode()
		done <- result{s, err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return r.err
		}
		player, err := t.ctx.NewPlayer(r.s)
		if err != nil {
			return fmt.Errorf("assets: create player: %w", err)
		}
		player.SetVolume(t.opts.Volume)
		t.player = player
		t.length = bytesToDuration(r.s.Length(), t.ctx.SampleRate())
		return nil
	}
}

func (t *Track) decode() (stream, error) {
	sr := t.ctx.SampleRate()
	name := t.info.SongFilename
	if name == "" {
		pcm := songs.Metronome(sr, t.info.BeatsPerMinute, t.opts.ClickBeats, t.opts.Click)
		return pcmStream{bytes.NewReader(pcm)}, nil
	}

	data, err := fs.ReadFile(t.fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("assets: read audio %s: %w", name, err)
	}

	var s stream
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".ogg", ".egg":
		s, err = vorbis.DecodeWithSampleRate(sr, bytes.NewReader(data))
	case ".mp3":
		s, err = mp3.DecodeWithSampleRate(sr, bytes.NewReader(data))
	case ".wav":
		s, err = wav.DecodeWithSampleRate(sr, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("assets: unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return s, nil
}

type pcmStream struct {
	*bytes.Reader
}

func (p pcmStream) Length() int64 { return p.Size() }

func bytesToDuration(n int64, sampleRate int) time.Duration {
	frames := n / 4
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}

func (t *Track) Play() {
	if t.player != nil {
		t.player.Play()
	}
}

func (t *Track) Pause() {
	if t.player != nil {
		t.player.Pause()
	}
}

func (t *Track) Rewind() error {
	if t.player == nil {
		return ErrNotReady
	}
	return t.player.SetPosition(0)
}

// Duration is the decoded length of the audio.
func (t *Track) Duration() time.Duration { return t.length }

func (t *Track) SetVolume(v float64) {
	t.opts.Volume = v
	if t.player != nil {
		t.player.SetVolume(v)
	}
}

// Close releases the player.
func (t *Track) Close() error {
	if t.player == nil {
		return nil
	}
	err := t.player.Close()
	t.player = nil
	return err
}

// Cues plays short one-shot sounds for cut feedback.
type Cues struct {
	ctx  *audio.Context
	hit  []byte
	miss []byte
	vol  [2]float64
}

// NewCues synthesises the ticks at full scale and plays them at each
// click's volume.
func NewCues(ctx *audio.Context, hit, miss songs.Click) *Cues {
	sr := ctx.SampleRate()
	return &Cues{
		ctx:  ctx,
		hit:  songs.Tick(sr, fullScale(hit)),
		miss: songs.Tick(sr, fullScale(miss)),
		vol:  [2]float64{hit.Volume, miss.Volume},
	}
}

func fullScale(c songs.Click) songs.Click {
	c.Volume = 1
	return c
}

func (c *Cues) Hit()  { c.play(c.hit, c.vol[0]) }
func (c *Cues) Miss() { c.play(c.miss, c.vol[1]) }

func (c *Cues) play(pcm []byte, volume float64) {
	player := c.ctx.NewPlayerFromBytes(pcm)
	player.SetVolume(volume)
	player.Play()
}
