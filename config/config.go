package config

import "image/color"

// Config holds general window configuration
type Config struct {
	Title  string
	Width  int
	Height int
}

// GameplayConfig contains the runway and note flight parameters
type GameplayConfig struct {
	FloorWidth  float64 // metres, split into Lanes cells
	FloorLength float64 // metres, also the note fly distance
	NoteFlyTime float64 // seconds for a note to cross the runway
	NoteYOffset float64 // height of the lowest note layer above the floor
	MaxNotes    int     // note pool size

	HitScore  int
	MissScore int

	// Beats after the last note's arrival before the song stops itself
	SongEndPaddingBeats float64
}

// RigConfig contains player rig dimensions
type RigConfig struct {
	RigHeight   float64 // eye height in metres
	HandHeight  float64 // rig origin height in metres
	SaberWidth  float64
	SaberHeight float64
	SaberLength float64
}

// SceneConfig contains camera and environment settings
type SceneConfig struct {
	CameraFOV  float64
	CameraNear float64
	CameraFar  float64
	CameraY    float64

	Background color.RGBA
	FogColor   color.RGBA
	FogNear    float64
	FogFar     float64

	LightDirection [3]float64 // direction the light travels
	LightColor     color.RGBA
	LightIntensity float64
	AmbientColor   color.RGBA

	ScoreY float64
	ScoreZ float64
}

// ColorConfig contains the palette of gameplay objects
type ColorConfig struct {
	RedNote     color.RGBA
	BlueNote    color.RGBA
	NeutralNote color.RGBA
	LeftSaber   color.RGBA
	RightSaber  color.RGBA
	Floor       color.RGBA
}

// UIConfig contains HUD and overlay layout
type UIConfig struct {
	Margin          float64
	ButtonWidth     int
	ButtonHeight    int
	ButtonSpacing   int
	ScorePulseScale float32
	ScorePulseTime  float32 // seconds
	TextColor       color.RGBA
	PanelColor      color.RGBA
}

// StatsConfig contains the placement of the in-world stats panel
type StatsConfig struct {
	PanelX, PanelY, PanelZ float64
	PanelTiltX             float64
	PanelScale             float64
	PanelWidth             float64
	PanelHeight            float64
	SampleFrames           int // frames averaged for fps
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	Enabled   bool // Draw collider boxes and broad phase cells
	ShowStats bool // Show renderer statistics overlay
}

// SongConfig selects the chart to play
type SongConfig struct {
	Dir        string // empty selects the built-in song
	Difficulty string
	Watch      bool // reload the chart when its files change
}

// XRConfig selects the immersive session to enter at startup
type XRConfig struct {
	AutoEnter string // "none", "vr" or "ar"
}

// Global configuration instances
var C *Config
var Gameplay GameplayConfig
var Rig RigConfig
var Scene SceneConfig
var Colors ColorConfig
var UI UIConfig
var Stats StatsConfig
var Debug DebugConfig
var Song SongConfig
var XR XRConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue         = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Title:  "Saber Beat",
		Width:  1280,
		Height: 720,
	}

	Gameplay = GameplayConfig{
		FloorWidth:          2,
		FloorLength:         25,
		NoteFlyTime:         3,
		NoteYOffset:         0.5,
		MaxNotes:            20,
		HitScore:            100,
		MissScore:           -50,
		SongEndPaddingBeats: 4,
	}

	Rig = RigConfig{
		RigHeight:   1.6,
		HandHeight:  1.2,
		SaberWidth:  0.02,
		SaberHeight: 0.02,
		SaberLength: 2,
	}

	Scene = SceneConfig{
		CameraFOV:  45,
		CameraNear: 0.1,
		CameraFar:  1000,
		CameraY:    1,

		Background: color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff},
		FogColor:   color.RGBA{R: 0x3f, G: 0x7b, B: 0x9d, A: 0xff},
		FogNear:    17,
		FogFar:     24,

		LightDirection: [3]float64{-0.5, -1, -0.8},
		LightColor:     White,
		LightIntensity: 1,
		AmbientColor:   color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},

		ScoreY: 0.2,
		ScoreZ: -18,
	}

	Colors = ColorConfig{
		RedNote:     Red,
		BlueNote:    Blue,
		NeutralNote: Black,
		LeftSaber:   Red,
		RightSaber:  Blue,
		Floor:       color.RGBA{R: 0x70, G: 0xcb, B: 0xff, A: 0xff},
	}

	UI = UIConfig{
		Margin:          12,
		ButtonWidth:     120,
		ButtonHeight:    32,
		ButtonSpacing:   8,
		ScorePulseScale: 1.5,
		ScorePulseTime:  0.25,
		TextColor:       White,
		PanelColor:      BlackOverlay,
	}

	Stats = StatsConfig{
		PanelX:       0,
		PanelY:       1.8,
		PanelZ:       -1,
		PanelTiltX:   0.7853981633974483, // pi/4
		PanelScale:   2.5,
		PanelWidth:   0.3,
		PanelHeight:  0.2,
		SampleFrames: 60,
	}

	Debug = DebugConfig{}

	Song = SongConfig{
		Difficulty: "Expert",
	}

	XR = XRConfig{
		AutoEnter: "none",
	}
}
