package xr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/automoto/saberbeat/xr"
	"github.com/automoto/saberbeat/xr/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeRuntime struct {
	xr.Runtime
	modes map[xr.Mode]bool
	err   error
}

func (p probeRuntime) Supported(_ context.Context, m xr.Mode) (bool, error) {
	return p.modes[m], p.err
}

func TestDetect(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, xr.SupportedAR, xr.Detect(ctx, probeRuntime{modes: map[xr.Mode]bool{xr.ModeAR: true, xr.ModeVR: true}}))
	assert.Equal(t, xr.SupportedVR, xr.Detect(ctx, probeRuntime{modes: map[xr.Mode]bool{xr.ModeVR: true}}))
	assert.Equal(t, xr.NotFound, xr.Detect(ctx, probeRuntime{}))
	assert.Equal(t, xr.NotFound, xr.Detect(ctx, probeRuntime{err: errors.New("no device")}))
	assert.Equal(t, xr.NotFound, xr.Detect(ctx, nil))

	mode, ok := xr.ModeFor(xr.SupportedVR)
	assert.True(t, ok)
	assert.Equal(t, xr.ModeVR, mode)
	_, ok = xr.ModeFor(xr.NotFound)
	assert.False(t, ok)
}

func TestDesktopSession(t *testing.T) {
	ctx := context.Background()
	rt := desktop.New(desktop.DefaultReach)

	assert.Equal(t, xr.SupportedVR, xr.Detect(ctx, rt))
	assert.ErrorIs(t, rt.RequestSession(ctx, xr.ModeAR), xr.ErrUnsupported)
	assert.False(t, rt.Presenting())

	require.NoError(t, rt.RequestSession(ctx, xr.ModeVR))
	assert.True(t, rt.Presenting())

	require.NoError(t, rt.EndSession())
	assert.False(t, rt.Presenting())
}

func TestDesktopPointerDrivesActiveHand(t *testing.T) {
	rt := desktop.New(desktop.Reach{X: 1, Y: 1, Pitch: 1, Yaw: 1})
	restLeft := rt.Pose(xr.Left)

	assert.Equal(t, xr.Right, rt.ActiveHand())
	rt.SetPointer(0.5, 2)

	right := rt.Pose(xr.Right)
	assert.InDelta(t, 0.75, right.Position.X, 1e-9)
	assert.InDelta(t, 1.0, right.Position.Y, 1e-9, "pointer is clamped")
	assert.InDelta(t, 1.0, right.Rotation.X, 1e-9)
	assert.Equal(t, restLeft, rt.Pose(xr.Left))

	rt.SwapHands()
	assert.Equal(t, xr.Left, rt.ActiveHand())
	assert.InDelta(t, 0.25, rt.Pose(xr.Right).Position.X, 1e-9, "released hand returns to rest")

	rt.SetPointer(-1, 0)
	assert.InDelta(t, -1.25, rt.Pose(xr.Left).Position.X, 1e-9)
}
