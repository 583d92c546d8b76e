package control

import (
	"context"
	"testing"

	"github.com/automoto/saberbeat/components"
	cfg "github.com/automoto/saberbeat/config"
	"github.com/automoto/saberbeat/systems"
	"github.com/automoto/saberbeat/xr"
	"github.com/automoto/saberbeat/xr/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type presentLog struct {
	calls []bool
}

func (p *presentLog) Init(context.Context) error  { return nil }
func (p *presentLog) Update(float64)              {}
func (p *presentLog) OnXRPresent(presenting bool) { p.calls = append(p.calls, presenting) }
func (p *presentLog) Dispose()                    {}

type harness struct {
	ecs     *ecs.ECS
	rt      *desktop.Runtime
	log     *presentLog
	session *components.SessionData
	input   *components.InputData
}

func newHarness(t *testing.T, support xr.Support) *harness {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	rt := desktop.New(desktop.DefaultReach)
	log := &presentLog{}

	sessionEntry := e.World.Entry(e.World.Create(components.Session))
	components.Session.SetValue(sessionEntry, components.SessionData{Support: support})

	gameEntry := e.World.Entry(e.World.Create(components.Game))
	components.Game.SetValue(gameEntry, components.GameData{
		Stage:   &systems.Stage{XR: rt},
		Systems: []systems.System{log},
		Desktop: rt,
	})

	return &harness{
		ecs:     e,
		rt:      rt,
		log:     log,
		session: components.Session.Get(sessionEntry),
		input:   getOrCreateInput(e),
	}
}

// press starts a frame with only the given actions held.
func (h *harness) press(actions ...cfg.ActionID) {
	h.input.Previous = h.input.Current
	h.input.Current = [cfg.ActionCount]bool{}
	for _, a := range actions {
		h.input.Current[a] = true
	}
	UpdateSession(h.ecs)
}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		nx, ny float64
	}{
		{"centre", 640, 360, 0, 0},
		{"top left", 0, 0, -1, 1},
		{"bottom right", 1280, 720, 1, -1},
		{"outside", 2000, -50, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nx, ny := normalizePointer(tt.x, tt.y, 1280, 720)
			assert.InDelta(t, tt.nx, nx, 1e-9)
			assert.InDelta(t, tt.ny, ny, 1e-9)
		})
	}

	nx, ny := normalizePointer(10, 10, 0, 0)
	assert.Zero(t, nx)
	assert.Zero(t, ny)
}

func TestSessionViewport(t *testing.T) {
	var s components.SessionData
	w, h := s.Viewport(1280, 720)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	s.ViewWidth, s.ViewHeight = 1920, 1080
	w, h = s.Viewport(1280, 720)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestToggleXR(t *testing.T) {
	h := newHarness(t, xr.SupportedVR)

	h.press(cfg.ActionToggleXR)
	assert.True(t, h.rt.Presenting())
	assert.True(t, h.session.Presenting)
	assert.Equal(t, []bool{true}, h.log.calls)

	// Held keys do not toggle again.
	h.press(cfg.ActionToggleXR)
	assert.True(t, h.rt.Presenting())
	assert.Len(t, h.log.calls, 1)

	h.press()
	h.press(cfg.ActionToggleXR)
	assert.False(t, h.rt.Presenting())
	assert.False(t, h.session.Presenting)
	assert.Equal(t, []bool{true, false}, h.log.calls)
}

func TestToggleXRUnsupported(t *testing.T) {
	h := newHarness(t, xr.NotFound)

	h.press(cfg.ActionToggleXR)
	assert.False(t, h.rt.Presenting())
	assert.Empty(t, h.log.calls)
	assert.Equal(t, "XR not found", h.session.Status)
	assert.Positive(t, h.session.StatusTimer)
}

func TestSessionFollowsRuntime(t *testing.T) {
	h := newHarness(t, xr.SupportedVR)

	// A session started outside the game is still picked up.
	require.NoError(t, h.rt.RequestSession(context.Background(), xr.ModeVR))
	h.press()
	assert.True(t, h.session.Presenting)
	assert.Equal(t, []bool{true}, h.log.calls)
}

func TestPointerDrivesActiveHand(t *testing.T) {
	h := newHarness(t, xr.SupportedVR)

	rest := h.rt.Pose(xr.Right).Position.X

	// Ignored outside a session.
	h.input.PointerX = 1
	h.press()
	assert.Equal(t, rest, h.rt.Pose(xr.Right).Position.X)

	h.press(cfg.ActionToggleXR)
	h.input.PointerX = 1
	h.press()
	assert.InDelta(t, rest+desktop.DefaultReach.X, h.rt.Pose(xr.Right).Position.X, 1e-9)

	h.press(cfg.ActionSwapHand)
	assert.Equal(t, xr.Left, h.rt.ActiveHand())
	assert.Equal(t, "left hand", h.session.Status)
}

func TestSessionToggles(t *testing.T) {
	h := newHarness(t, xr.SupportedVR)

	h.press(cfg.ActionToggleStats, cfg.ActionToggleDebug)
	assert.True(t, h.session.ShowStats)
	assert.True(t, h.session.Debug)

	h.press(cfg.ActionQuit)
	assert.True(t, h.session.Quit)
}
