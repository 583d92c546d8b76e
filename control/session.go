package control

import (
	"context"
	"log"
	"time"

	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/systems"
	"github.com/automoto/saberbeat/xr"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const (
	statusSeconds  = 2.5
	sessionTimeout = 5 * time.Second
)

// UpdateSession handles the global toggles and keeps the session state in
// step with the XR runtime. Systems are told when presentation starts or
// ends.
func UpdateSession(e *ecs.ECS) {
	session, game, ok := sessionAndGame(e)
	if !ok {
		return
	}
	input := getOrCreateInput(e)

	if input.Action(cfg.ActionToggleXR).JustPressed {
		ToggleXR(session, game)
	}
	if input.Action(cfg.ActionTogglePlay).JustPressed {
		game.BeatSaber.Toggle()
	}
	if input.Action(cfg.ActionSwapHand).JustPressed && game.Desktop != nil {
		game.Desktop.SwapHands()
		session.SetStatus(game.Desktop.ActiveHand().String()+" hand", statusSeconds)
	}
	if input.Action(cfg.ActionToggleStats).JustPressed {
		session.ShowStats = !session.ShowStats
		saveSettings(session, game)
	}
	if input.Action(cfg.ActionToggleDebug).JustPressed {
		session.Debug = !session.Debug
		saveSettings(session, game)
	}
	if input.Action(cfg.ActionQuit).JustPressed {
		session.Quit = true
	}

	syncPresenting(session, game)

	if game.Desktop != nil && session.Presenting {
		game.Desktop.SetPointer(input.PointerX, input.PointerY)
	}

	if session.StatusTimer > 0 {
		session.StatusTimer -= 1 / float64(ebiten.TPS())
	}
}

// ToggleXR ends a running session or requests the best supported one.
func ToggleXR(session *components.SessionData, game *components.GameData) {
	rt := game.Stage.XR
	if rt == nil {
		session.SetStatus("XR not found", statusSeconds)
		return
	}
	if rt.Presenting() {
		if err := rt.EndSession(); err != nil {
			log.Printf("Warning: Could not end XR session: %v", err)
		}
		syncPresenting(session, game)
		return
	}

	mode, ok := xr.ModeFor(session.Support)
	if !ok {
		log.Printf("Warning: No immersive session mode available")
		session.SetStatus("XR not found", statusSeconds)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
	defer cancel()
	if err := rt.RequestSession(ctx, mode); err != nil {
		log.Printf("Warning: Could not start %s session: %v", mode, err)
		session.SetStatus("Could not enter XR", statusSeconds)
		return
	}
	syncPresenting(session, game)
}

// syncPresenting notifies every system when the runtime's presentation
// state differs from the last one seen.
func syncPresenting(session *components.SessionData, game *components.GameData) {
	presenting := game.Stage.XR != nil && game.Stage.XR.Presenting()
	if presenting == session.Presenting {
		return
	}
	session.Presenting = presenting
	for _, s := range game.Systems {
		s.OnXRPresent(presenting)
	}
}

func saveSettings(session *components.SessionData, game *components.GameData) {
	err := game.Persistence.SaveSettings(&systems.SavedSettings{
		Volume:     cfg.Audio.DefaultVolume,
		ShowStats:  session.ShowStats,
		Debug:      session.Debug,
		Difficulty: game.Difficulty,
	})
	if err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
	}
}

func sessionAndGame(e *ecs.ECS) (*components.SessionData, *components.GameData, bool) {
	sessionEntry, ok := components.Session.First(e.World)
	if !ok {
		return nil, nil, false
	}
	gameEntry, ok := components.Game.First(e.World)
	if !ok {
		return nil, nil, false
	}
	return components.Session.Get(sessionEntry), components.Game.Get(gameEntry), true
}
