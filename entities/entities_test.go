package entities

import (
	"context"
	"image/color"
	"testing"

	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/collision"
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/xr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type poseRuntime struct {
	poses [2]xr.Pose
}

func (r *poseRuntime) Supported(context.Context, xr.Mode) (bool, error) { return true, nil }
func (r *poseRuntime) RequestSession(context.Context, xr.Mode) error    { return nil }
func (r *poseRuntime) EndSession() error                                { return nil }
func (r *poseRuntime) Presenting() bool                                 { return true }
func (r *poseRuntime) Pose(h xr.Hand) xr.Pose                           { return r.poses[h] }

var testParams = NoteParams{
	Cell:       0.5,
	YOffset:    0.5,
	Velocity:   25.0 / 3,
	MaxFlyDist: 10,
	Colors: NoteColors{
		Red:     color.RGBA{R: 255, A: 255},
		Blue:    color.RGBA{B: 255, A: 255},
		Neutral: color.RGBA{A: 255},
	},
}

func newStage() (*engine.World, *scene.Node, *collision.Space) {
	root := scene.NewGroup("root")
	space := collision.NewSpace(root, scene.Box3{Min: scene.V(-5, -5, -30), Max: scene.V(5, 5, 5)})
	return engine.NewWorld(), root, space
}

func TestScoreDelta(t *testing.T) {
	cases := []struct {
		hand xr.Hand
		typ  chart.NoteType
		want int
	}{
		{xr.Left, chart.Red, 100},
		{xr.Left, chart.Blue, -50},
		{xr.Left, chart.Unused, 100},
		{xr.Left, chart.Bomb, -50},
		{xr.Right, chart.Red, -50},
		{xr.Right, chart.Blue, 100},
		{xr.Right, chart.Unused, 100},
		{xr.Right, chart.Bomb, -50},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreDelta(tc.hand, tc.typ), "%s hand on %s note", tc.hand, tc.typ)
	}

	custom := Scoring{Hit: 10, Miss: -1}
	assert.Equal(t, 10, custom.Delta(xr.Right, chart.Blue))
	assert.Equal(t, -1, custom.Delta(xr.Right, chart.Red))
}

func TestNoteLifecycle(t *testing.T) {
	w, root, space := newStage()
	notes := NewNotes(w, space, testParams, 2, nil)
	root.Add(notes.Node())

	desc := chart.Note{Time: 4, LineIndex: 0, LineLayer: 1, Type: chart.Red, CutDirection: chart.CutLeft}
	require.Equal(t, 1, notes.Spawn([]chart.Note{desc}, func(chart.Note) float64 { return 2 }))

	n := notes.Note(0)
	require.True(t, n.Playing())
	pos := n.Node().Position
	assert.InDelta(t, -0.75, pos.X, 1e-9)
	assert.InDelta(t, 1.0, pos.Y, 1e-9)
	assert.InDelta(t, 2.0, pos.Z, 1e-9)
	assert.InDelta(t, chart.CutLeft.Angle(), n.Node().Rotation.Z, 1e-9)
	assert.Equal(t, testParams.Colors.Red, n.Color())
	assert.Equal(t, desc, n.Desc())

	notes.Update(0)
	assert.InDelta(t, 2.0, n.Node().Position.Z, 1e-9, "zero delta does not move")

	notes.Update(0.6)
	assert.InDelta(t, 7.0, n.Node().Position.Z, 1e-9)
	assert.True(t, notes.Node().Instances.VisibleAt(0))
	assert.Equal(t, testParams.Colors.Red, notes.Node().Instances.ColorAt(0))

	notes.Update(0.6)
	assert.InDelta(t, 12.0, n.Node().Position.Z, 1e-9)
	assert.True(t, n.Playing(), "expiry is checked before moving")

	notes.Update(0.6)
	assert.False(t, n.Playing())
	assert.Equal(t, scene.Vec3{}, n.Node().Position)
	assert.False(t, n.Node().Visible)
	assert.False(t, notes.Node().Instances.VisibleAt(0))

	n.Stop()
	assert.False(t, n.Playing())
	assert.Equal(t, 0, notes.Playing())
}

func TestNotePoolRecycles(t *testing.T) {
	w, root, space := newStage()
	notes := NewNotes(w, space, testParams, 2, nil)
	root.Add(notes.Node())

	depth := func(chart.Note) float64 { return 0 }
	batch := []chart.Note{{Time: 1}, {Time: 1, LineIndex: 1}, {Time: 1, LineIndex: 2}}

	assert.Equal(t, 2, notes.Spawn(batch, depth))
	assert.Equal(t, 2, notes.Playing())
	assert.Equal(t, 1, notes.Dropped())

	notes.Stop()
	assert.Equal(t, 0, notes.Playing())

	assert.Equal(t, 2, notes.Spawn(batch[1:], depth))
	assert.Equal(t, 1, notes.Dropped())
	assert.InDelta(t, -0.25, notes.Note(0).Node().Position.X, 1e-9, "first idle slot is reused")
	assert.InDelta(t, 0.25, notes.Note(1).Node().Position.X, 1e-9)
}

func TestResolveHits(t *testing.T) {
	w, root, space := newStage()
	rt := &poseRuntime{}
	rt.poses[xr.Left].Position = scene.V(3, 0, 0)
	rt.poses[xr.Right].Position = scene.V(-0.25, 0, 0)

	rig := NewRig(w, space, rt, RigParams{
		HandHeight: 1.2,
		SaberSize:  scene.V(0.02, 0.02, 2),
		LeftColor:  color.RGBA{R: 255, A: 255},
		RightColor: color.RGBA{B: 255, A: 255},
	})
	root.Add(rig.Node())

	params := testParams
	params.YOffset = 0.7
	notes := NewNotes(w, space, params, 4, rig.SaberIDs())
	notes.Node().Position.Z = -1
	root.Add(notes.Node())

	score := NewScore(w, 1.5, 0.25)
	depth := func(chart.Note) float64 { return 0 }
	notes.Spawn([]chart.Note{
		{Time: 1, LineIndex: 1, LineLayer: 1, Type: chart.Blue},
		{Time: 1, LineIndex: 3, LineLayer: 1, Type: chart.Red},
	}, depth)

	rig.Update(0.016)
	notes.Update(0.016)
	hits := notes.ResolveHits(rig.Sabers(), DefaultScoring, score)

	require.Len(t, hits, 1)
	assert.Equal(t, xr.Right, hits[0].Hand)
	assert.Equal(t, chart.Blue, hits[0].Note.Type)
	assert.Equal(t, 100, score.Value())
	assert.False(t, notes.Note(0).Playing())
	assert.True(t, notes.Note(1).Playing(), "note out of reach keeps flying")

	rig.Update(0.016)
	notes.Update(0.016)
	assert.Empty(t, notes.ResolveHits(rig.Sabers(), DefaultScoring, score), "a stopped note cannot be hit again")
	assert.Equal(t, 100, score.Value())
}

func TestScorePulse(t *testing.T) {
	w := engine.NewWorld()
	s := NewScore(w, 1.5, 0.25)

	s.Add(0)
	assert.Equal(t, float32(1), s.Scale())

	s.Add(100)
	s.Add(-50)
	assert.Equal(t, 50, s.Value())
	assert.Equal(t, "50", s.Text())

	s.Update(0.1)
	assert.Greater(t, s.Scale(), float32(1))
	assert.Greater(t, s.Node().Scale.X, 1.0)

	s.Update(1)
	assert.Equal(t, float32(1), s.Scale())

	s.Add(100)
	s.Reset()
	assert.Equal(t, 0, s.Value())
	assert.Equal(t, float32(1), s.Scale())
	assert.Equal(t, 1.0, s.Node().Scale.X)
}

func TestSaberFlash(t *testing.T) {
	w, _, space := newStage()
	s := NewSaber(w, space, xr.Left, scene.V(0.02, 0.02, 2), color.RGBA{R: 255, A: 255})
	assert.InDelta(t, -1.0, s.Node().Position.Z, 1e-9)
	assert.Zero(t, s.Glow())

	s.Flash()
	assert.Equal(t, float32(1), s.Glow())
	s.Update(0.05)
	assert.Greater(t, s.Glow(), float32(0))
	assert.Less(t, s.Glow(), float32(1))
	assert.Greater(t, s.Node().Materials[0].Color.G, uint8(0), "the blade lightens while glowing")
	s.Update(1)
	assert.Zero(t, s.Glow())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, s.Node().Materials[0].Color)
}

func TestDisposeReleasesResources(t *testing.T) {
	before := scene.Memory()
	w, root, space := newStage()
	rig := NewRig(w, space, nil, RigParams{HandHeight: 1.2, SaberSize: scene.V(0.02, 0.02, 2)})
	notes := NewNotes(w, space, testParams, 3, rig.SaberIDs())
	floor := NewFloor(w, 2, 25, color.RGBA{A: 255})
	root.Add(rig.Node())
	root.Add(notes.Node())
	root.Add(floor.Node())

	assert.Equal(t, 5+4+1, w.Len(), "rig with hands and sabers, pool with notes, floor")
	assert.Greater(t, scene.Memory().Geometries, before.Geometries)

	notes.Dispose()
	rig.Dispose()
	floor.Dispose()

	assert.Equal(t, 0, w.Len())
	assert.Empty(t, root.Children())
	assert.Equal(t, before, scene.Memory())
	_, ok := space.Collider(rig.Saber(xr.Left).ID())
	assert.False(t, ok)
}
