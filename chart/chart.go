package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"strings"
)

// NoteType is the colour class of a note.
type NoteType int

const (
	Red NoteType = iota
	Blue
	Unused
	Bomb
)

func (t NoteType) String() string {
	switch t {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Unused:
		return "unused"
	case Bomb:
		return "bomb"
	default:
		return fmt.Sprintf("NoteType(%d)", int(t))
	}
}

// CutDirection is the direction a note has to be cut in.
type CutDirection int

const (
	CutUp CutDirection = iota
	CutDown
	CutLeft
	CutRight
	CutUpLeft
	CutUpRight
	CutDownLeft
	CutDownRight
	CutAny
)

// Angle returns the roll, in radians about the runway axis, that points a
// note's arrow along the cut direction.
func (d CutDirection) Angle() float64 {
	switch d {
	case CutDown:
		return math.Pi
	case CutLeft:
		return math.Pi / 2
	case CutRight:
		return -math.Pi / 2
	case CutUpLeft:
		return -3 * math.Pi / 4
	case CutUpRight:
		return 3 * math.Pi / 4
	case CutDownLeft:
		return -math.Pi / 4
	case CutDownRight:
		return math.Pi / 4
	default:
		return 0
	}
}

// Lane and layer limits of the note grid.
const (
	Lanes  = 4
	Layers = 3
)

// Note is one entry of a difficulty's _notes array.
type Note struct {
	Time         float64      `json:"_time"`
	LineIndex    int          `json:"_lineIndex"`
	LineLayer    int          `json:"_lineLayer"`
	Type         NoteType     `json:"_type"`
	CutDirection CutDirection `json:"_cutDirection"`
}

func (n Note) validate() error {
	switch {
	case n.Time < 0:
		return fmt.Errorf("negative time %v", n.Time)
	case n.LineIndex < 0 || n.LineIndex >= Lanes:
		return fmt.Errorf("line index %d out of range", n.LineIndex)
	case n.LineLayer < 0 || n.LineLayer >= Layers:
		return fmt.Errorf("line layer %d out of range", n.LineLayer)
	case n.Type < Red || n.Type > Bomb:
		return fmt.Errorf("unknown note type %d", n.Type)
	case n.CutDirection < CutUp || n.CutDirection > CutAny:
		return fmt.Errorf("unknown cut direction %d", n.CutDirection)
	}
	return nil
}

// Info mirrors the fields of Info.dat that the game uses.
type Info struct {
	Version         string       `json:"_version"`
	SongName        string       `json:"_songName"`
	SongSubName     string       `json:"_songSubName"`
	SongAuthorName  string       `json:"_songAuthorName"`
	LevelAuthorName string       `json:"_levelAuthorName"`
	BeatsPerMinute  float64      `json:"_beatsPerMinute"`
	SongTimeOffset  float64      `json:"_songTimeOffset"`
	SongFilename    string       `json:"_songFilename"`
	BeatmapSets     []BeatmapSet `json:"_difficultyBeatmapSets"`
}

type BeatmapSet struct {
	Characteristic string    `json:"_beatmapCharacteristicName"`
	Beatmaps       []Beatmap `json:"_difficultyBeatmaps"`
}

type Beatmap struct {
	Difficulty     string  `json:"_difficulty"`
	DifficultyRank int     `json:"_difficultyRank"`
	Filename       string  `json:"_beatmapFilename"`
	NoteJumpSpeed  float64 `json:"_noteJumpMovementSpeed"`
}

// Difficulty is the content of a difficulty .dat file.
type Difficulty struct {
	Version string `json:"_version"`
	Notes   []Note `json:"_notes"`
}

// Song is a loaded chart ready to be baked.
type Song struct {
	Info       Info
	Difficulty string
	Notes      []Note
}

var (
	ErrNoDifficulty = errors.New("chart: difficulty not found")
	ErrInvalidTempo = errors.New("chart: beats per minute must be positive")
)

// InfoFile is the file name of the song descriptor inside a song directory.
const InfoFile = "Info.dat"

// ParseInfo decodes Info.dat.
func ParseInfo(data []byte) (Info, error) {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("chart: parse info: %w", err)
	}
	if info.BeatsPerMinute <= 0 {
		return Info{}, ErrInvalidTempo
	}
	return info, nil
}

// ParseDifficulty decodes a difficulty file and validates its notes.
func ParseDifficulty(data []byte) (Difficulty, error) {
	var d Difficulty
	if err := json.Unmarshal(data, &d); err != nil {
		return Difficulty{}, fmt.Errorf("chart: parse difficulty: %w", err)
	}
	for i, n := range d.Notes {
		if err := n.validate(); err != nil {
			return Difficulty{}, fmt.Errorf("chart: note %d: %w", i, err)
		}
	}
	return d, nil
}

// Beatmap returns the beatmap entry for difficulty, matched case-insensitively.
// An empty difficulty selects the first beatmap of the first set.
func (i Info) Beatmap(difficulty string) (Beatmap, error) {
	for _, set := range i.BeatmapSets {
		for _, bm := range set.Beatmaps {
			if difficulty == "" || strings.EqualFold(bm.Difficulty, difficulty) {
				return bm, nil
			}
		}
	}
	return Beatmap{}, fmt.Errorf("%w: %q", ErrNoDifficulty, difficulty)
}

// Load reads Info.dat and the selected difficulty from fsys.
func Load(fsys fs.FS, difficulty string) (*Song, error) {
	raw, err := fs.ReadFile(fsys, InfoFile)
	if err != nil {
		return nil, fmt.Errorf("chart: read info: %w", err)
	}
	info, err := ParseInfo(raw)
	if err != nil {
		return nil, err
	}
	bm, err := info.Beatmap(difficulty)
	if err != nil {
		return nil, err
	}
	raw, err = fs.ReadFile(fsys, path.Clean(bm.Filename))
	if err != nil {
		return nil, fmt.Errorf("chart: read difficulty %s: %w", bm.Filename, err)
	}
	d, err := ParseDifficulty(raw)
	if err != nil {
		return nil, err
	}
	return &Song{Info: info, Difficulty: bm.Difficulty, Notes: d.Notes}, nil
}

// LastBeat returns the time of the latest note, or 0 for an empty chart.
func (s *Song) LastBeat() float64 {
	var last float64
	for _, n := range s.Notes {
		if n.Time > last {
			last = n.Time
		}
	}
	return last
}
