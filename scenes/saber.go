package scenes

import (
	"context"
	"log"
	"sync"

	"github.com/automoto/saberbeat/assets"
	"github.com/automoto/saberbeat/assets/songs"
	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/collision"
	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/control"
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/entities"
	"github.com/automoto/saberbeat/render"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/systems"
	"github.com/automoto/saberbeat/ui"
	"github.com/automoto/saberbeat/xr"
	"github.com/automoto/saberbeat/xr/desktop"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SaberScene is the single gameplay scene: runway, notes, rig and overlays.
type SaberScene struct {
	ecs         *ecs.ECS
	persistence *systems.Persistence
	renderer    *render.Renderer
	ui          *ui.SaberUI
	game        *components.GameData
	session     *components.SessionData
	track       *assets.Track
	once        sync.Once

	width, height int
}

func NewSaberScene(p *systems.Persistence) *SaberScene {
	return &SaberScene{persistence: p, width: cfg.C.Width, height: cfg.C.Height}
}

func (ss *SaberScene) Update() {
	ss.once.Do(ss.configure)
	ss.ecs.Update()
}

func (ss *SaberScene) Draw(screen *ebiten.Image) {
	if ss.ecs == nil {
		return
	}
	ss.ecs.Draw(screen)
}

// Resize keeps the camera aspect in step with the window.
func (ss *SaberScene) Resize(width, height int) {
	ss.width, ss.height = width, height
	if ss.session != nil {
		ss.session.ViewWidth, ss.session.ViewHeight = width, height
	}
	if ss.game != nil {
		ss.game.Stage.Camera.SetAspect(width, height)
	}
}

// Quitting reports whether the player asked to leave.
func (ss *SaberScene) Quitting() bool {
	return ss.session != nil && ss.session.Quit
}

// Close releases the systems, the audio player and the chart watcher.
func (ss *SaberScene) Close() {
	if ss.game == nil {
		return
	}
	for i := len(ss.game.Systems) - 1; i >= 0; i-- {
		ss.game.Systems[i].Dispose()
	}
	if ss.track != nil {
		if err := ss.track.Close(); err != nil {
			log.Printf("Warning: Could not close track: %v", err)
		}
	}
	if ss.game.Watcher != nil {
		if err := ss.game.Watcher.Close(); err != nil {
			log.Printf("Warning: Could not close chart watcher: %v", err)
		}
	}
}

func (ss *SaberScene) configure() {
	ss.ecs = ecs.NewECS(donburi.NewWorld())
	ss.renderer = render.NewRenderer()

	stage, rt := newStage(ss.width, ss.height)
	songFS := songs.Open(cfg.Song.Dir)
	song, err := chart.Load(songFS, cfg.Song.Difficulty)
	if err != nil {
		log.Fatalf("Failed to load song: %v", err)
	}

	ss.track = assets.NewTrack(assets.AudioContext(cfg.Audio.SampleRate), songFS, song.Info, trackOptions(song))

	rig := systems.NewRigSystem(stage, rigParams())
	beatSaber := systems.NewBeatSaberSystem(stage, beatSaberParams(), song, ss.track, rig, nil)
	beatSaber.SetRecorder(ss.persistence)
	beatSaber.SetBest(ss.persistence.BestScore(song.Info.SongName, song.Difficulty))
	stats := systems.NewStatsSystem(stage, statsParams(), ss.renderer.Info, nil)

	ss.game = &components.GameData{
		Stage:       stage,
		Systems:     []systems.System{rig, beatSaber, stats},
		Rig:         rig,
		BeatSaber:   beatSaber,
		Stats:       stats,
		Desktop:     rt,
		Persistence: ss.persistence,
		SongFS:      songFS,
		Difficulty:  song.Difficulty,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Audio.LoadTimeout)
	defer cancel()
	for _, s := range ss.game.Systems {
		if err := s.Init(ctx); err != nil {
			log.Fatalf("Failed to initialise systems: %v", err)
		}
	}

	if cfg.Song.Watch {
		w, err := chart.NewWatcher(cfg.Song.Dir)
		if err != nil {
			log.Printf("Warning: Could not watch %s: %v", cfg.Song.Dir, err)
		} else {
			ss.game.Watcher = w
		}
	}

	gameEntry := ss.ecs.World.Entry(ss.ecs.World.Create(components.Game))
	components.Game.Set(gameEntry, ss.game)
	ss.game = components.Game.Get(gameEntry)

	sessionEntry := ss.ecs.World.Entry(ss.ecs.World.Create(components.Session))
	components.Session.SetValue(sessionEntry, components.SessionData{
		Support:    xr.Detect(ctx, rt),
		ShowStats:  cfg.Debug.ShowStats,
		Debug:      cfg.Debug.Enabled,
		ViewWidth:  ss.width,
		ViewHeight: ss.height,
	})
	ss.session = components.Session.Get(sessionEntry)

	ss.ui = ui.NewSaberUI()

	ss.ecs.AddSystem(control.UpdateInput)
	ss.ecs.AddSystem(control.UpdateSession)
	ss.ecs.AddSystem(ss.ui.UpdateSystem)
	ss.ecs.AddSystem(control.UpdateWatch)
	ss.ecs.AddSystem(control.UpdateGame)
	ss.ecs.AddSystem(control.UpdateAudio)

	ss.ecs.AddRenderer(cfg.Default, ss.renderer.DrawWorld)
	ss.ecs.AddRenderer(cfg.Default, ss.renderer.DrawDebug)
	ss.ecs.AddRenderer(cfg.LayerHUD, render.DrawHUD)
	ss.ecs.AddRenderer(cfg.LayerHUD, render.DrawStats)
	ss.ecs.AddRenderer(cfg.LayerOverlay, ss.ui.Draw)

	ss.autoEnter()
}

// autoEnter starts the session requested on the command line.
func (ss *SaberScene) autoEnter() {
	var mode xr.Mode
	switch cfg.XR.AutoEnter {
	case "vr":
		mode = xr.ModeVR
	case "ar":
		mode = xr.ModeAR
	default:
		return
	}
	if err := ss.game.Stage.XR.RequestSession(context.Background(), mode); err != nil {
		log.Printf("Warning: Could not enter %s: %v", mode, err)
		ss.session.SetStatus("Could not enter XR", 2.5)
	}
}

func newStage(width, height int) (*systems.Stage, *desktop.Runtime) {
	sc := scene.New()
	sc.Background = cfg.Scene.Background
	sc.Fog = scene.Fog{Color: cfg.Scene.FogColor, Near: cfg.Scene.FogNear, Far: cfg.Scene.FogFar}
	d := cfg.Scene.LightDirection
	sc.Light = scene.Light{
		Direction: scene.V(d[0], d[1], d[2]),
		Color:     cfg.Scene.LightColor,
		Intensity: cfg.Scene.LightIntensity,
		Ambient:   cfg.Scene.AmbientColor,
	}

	cam := scene.NewCamera(cfg.Scene.CameraFOV, 1, cfg.Scene.CameraNear, cfg.Scene.CameraFar)
	cam.SetAspect(width, height)
	cam.Position.Y = cfg.Scene.CameraY
	sc.Add(cam.Node)

	l := cfg.Gameplay.FloorLength
	bounds := scene.Box3{
		Min: scene.V(-5, -5, -l-5),
		Max: scene.V(5, 10, 5),
	}
	rt := desktop.New(desktop.DefaultReach)
	return &systems.Stage{
		World:  engine.NewWorld(),
		Scene:  sc,
		Camera: cam,
		Space:  collision.NewSpace(sc.Root, bounds),
		XR:     rt,
	}, rt
}

// trackOptions synthesises the metronome at full scale; the player volume
// is applied once, by the track.
func trackOptions(song *chart.Song) assets.TrackOptions {
	return assets.TrackOptions{
		Volume: cfg.Audio.DefaultVolume,
		Click: songs.Click{
			Frequency:   cfg.Audio.ClickFrequency,
			Length:      cfg.Audio.ClickLength.Seconds(),
			AccentEvery: cfg.Audio.AccentEvery,
			Volume:      1,
		},
		ClickBeats: int(song.LastBeat() + cfg.Gameplay.SongEndPaddingBeats + 1),
	}
}

func rigParams() systems.RigParams {
	return systems.RigParams{
		RigParams: entities.RigParams{
			HandHeight: cfg.Rig.HandHeight,
			SaberSize:  scene.V(cfg.Rig.SaberWidth, cfg.Rig.SaberHeight, cfg.Rig.SaberLength),
			LeftColor:  cfg.Colors.LeftSaber,
			RightColor: cfg.Colors.RightSaber,
		},
		RigHeight: cfg.Rig.RigHeight,
	}
}

func beatSaberParams() systems.BeatSaberParams {
	g := cfg.Gameplay
	return systems.BeatSaberParams{
		FloorWidth:  g.FloorWidth,
		FloorLength: g.FloorLength,
		FlyTime:     g.NoteFlyTime,
		NoteYOffset: g.NoteYOffset,
		MaxNotes:    g.MaxNotes,
		Scoring:     entities.Scoring{Hit: g.HitScore, Miss: g.MissScore},
		NoteColors: entities.NoteColors{
			Red:     cfg.Colors.RedNote,
			Blue:    cfg.Colors.BlueNote,
			Neutral: cfg.Colors.NeutralNote,
		},
		FloorColor:    cfg.Colors.Floor,
		ScorePosition: scene.V(0, cfg.Scene.ScoreY, cfg.Scene.ScoreZ),
		PulseScale:    cfg.UI.ScorePulseScale,
		PulseTime:     cfg.UI.ScorePulseTime,
		EndPadding:    g.SongEndPaddingBeats,
	}
}

func statsParams() systems.StatsParams {
	s := cfg.Stats
	return systems.StatsParams{
		Position:     scene.V(s.PanelX, s.PanelY, s.PanelZ),
		TiltX:        s.PanelTiltX,
		Scale:        s.PanelScale,
		Width:        s.PanelWidth,
		Height:       s.PanelHeight,
		SampleFrames: s.SampleFrames,
	}
}
