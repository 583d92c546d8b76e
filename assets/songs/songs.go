// Package songs provides the bundled song and a click track for charts that
// ship without audio.
package songs

import (
	"embed"
	"encoding/binary"
	"io/fs"
	"math"
	"os"
)

//go:embed default
var defaultFS embed.FS

// Default returns the bundled song directory.
func Default() fs.FS {
	sub, err := fs.Sub(defaultFS, "default")
	if err != nil {
		panic(err)
	}
	return sub
}

// Open returns dir as a file system, or the bundled song when dir is empty.
func Open(dir string) fs.FS {
	if dir == "" {
		return Default()
	}
	return os.DirFS(dir)
}

// Click describes the metronome tick.
type Click struct {
	Frequency float64 // Hz
	Length    float64 // seconds
	// AccentEvery raises the pitch of every n-th beat; 0 disables accents.
	AccentEvery int
	Volume      float64
}

const bytesPerFrame = 4 // 16-bit stereo

// Metronome renders beats clicks at bpm as 16-bit little-endian stereo PCM,
// the format ebiten's audio players consume.
func Metronome(sampleRate int, bpm float64, beats int, c Click) []byte {
	if bpm <= 0 || beats <= 0 {
		return nil
	}
	framesPerBeat := int(math.Round(float64(sampleRate) * 60 / bpm))
	buf := make([]byte, framesPerBeat*beats*bytesPerFrame)
	tick := clickFrames(sampleRate, c)
	for b := 0; b < beats; b++ {
		freq := c.Frequency
		if c.AccentEvery > 0 && b%c.AccentEvery == 0 {
			freq *= 1.5
		}
		writeTick(buf[b*framesPerBeat*bytesPerFrame:], sampleRate, tick, freq, c.Volume)
	}
	return buf
}

// Tick renders a single click.
func Tick(sampleRate int, c Click) []byte {
	frames := clickFrames(sampleRate, c)
	buf := make([]byte, frames*bytesPerFrame)
	writeTick(buf, sampleRate, frames, c.Frequency, c.Volume)
	return buf
}

func clickFrames(sampleRate int, c Click) int {
	return int(float64(sampleRate) * c.Length)
}

func writeTick(dst []byte, sampleRate, frames int, freq, volume float64) {
	frames = min(frames, len(dst)/bytesPerFrame)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		decay := 1 - float64(i)/float64(frames)
		v := int16(math.Sin(2*math.Pi*freq*t) * decay * volume * math.MaxInt16)
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint16(dst[off:], uint16(v))
		binary.LittleEndian.PutUint16(dst[off+2:], uint16(v))
	}
}
