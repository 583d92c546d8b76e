package entities

import (
	"image/color"
	"log"
	"math"

	"github.com/automoto/saberbeat/chart"
	"github.com/automoto/saberbeat/collision"
	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/automoto/saberbeat/tags"
	"github.com/automoto/saberbeat/xr"
)

// Hit records a note cut by a saber.
type Hit struct {
	Hand  xr.Hand
	Note  chart.Note
	Delta int
}

// Notes owns a fixed pool of notes drawn as one instanced mesh.
type Notes struct {
	engine.Base
	params  NoteParams
	notes   []Note
	dropped int
}

// NewNotes allocates count idle notes that report contacts with sabers.
func NewNotes(w *engine.World, space *collision.Space, params NoteParams, count int, sabers []engine.EntityID) *Notes {
	size := math.Sqrt(params.Cell * params.Cell / 2)
	g := scene.NewBoxGeometry(size, size, size)
	node := scene.NewInstancedMesh("notes", g, scene.NewMaterial(color.RGBA{R: 255, G: 255, B: 255, A: 255}), count)

	ns := &Notes{
		Base:   engine.NewBase(w, node, tags.Notes),
		params: params,
		notes:  make([]Note, count),
	}
	for i := range ns.notes {
		n := &ns.notes[i]
		n.init(w, space, g, i, &ns.params, sabers)
		ns.AddChild(n)
	}
	w.Bind(ns)
	return ns
}

// Len returns the pool size.
func (ns *Notes) Len() int { return len(ns.notes) }

// Note returns the i-th pooled note.
func (ns *Notes) Note(i int) *Note { return &ns.notes[i] }

// Playing returns the number of notes in flight.
func (ns *Notes) Playing() int {
	count := 0
	for i := range ns.notes {
		if ns.notes[i].playing {
			count++
		}
	}
	return count
}

// Dropped returns how many notes could not be spawned because the pool was
// exhausted.
func (ns *Notes) Dropped() int { return ns.dropped }

// Spawn plays one idle note per descriptor, placed at depth(desc). Notes that
// find no idle slot are dropped.
func (ns *Notes) Spawn(descs []chart.Note, depth func(chart.Note) float64) int {
	spawned, next := 0, 0
	for i, desc := range descs {
		for next < len(ns.notes) && ns.notes[next].playing {
			next++
		}
		if next == len(ns.notes) {
			dropped := len(descs) - i
			ns.dropped += dropped
			log.Printf("Warning: note pool exhausted, dropping %d notes at beat %v", dropped, desc.Time)
			break
		}
		ns.notes[next].Play(desc, depth(desc))
		spawned++
	}
	return spawned
}

// Stop returns every note to the pool.
func (ns *Notes) Stop() {
	for i := range ns.notes {
		ns.notes[i].Stop()
	}
}

// Update advances the notes and mirrors their transforms into the instances.
func (ns *Notes) Update(dt float64) {
	ns.Base.Update(dt)
	ns.sync()
}

func (ns *Notes) sync() {
	in := ns.Node().Instances
	for i := range ns.notes {
		n := &ns.notes[i]
		in.SetVisibleAt(i, n.playing)
		if !n.playing {
			continue
		}
		in.SetMatrixAt(i, n.Node().LocalMatrix())
		in.SetColorAt(i, n.color)
	}
}

// ResolveHits stops every playing note touched by one of the sabers in hands
// and credits keeper. A note touched by both sabers counts once, for the
// first saber in its contact list.
func (ns *Notes) ResolveHits(hands map[engine.EntityID]xr.Hand, scoring Scoring, keeper ScoreKeeper) []Hit {
	var hits []Hit
	for i := range ns.notes {
		n := &ns.notes[i]
		if !n.playing {
			continue
		}
		for _, id := range n.collider.Contacts() {
			hand, ok := hands[id]
			if !ok {
				continue
			}
			hit := Hit{Hand: hand, Note: n.desc, Delta: scoring.Delta(hand, n.desc.Type)}
			keeper.Add(hit.Delta)
			hits = append(hits, hit)
			n.Stop()
			ns.Node().Instances.SetVisibleAt(i, false)
			break
		}
	}
	return hits
}
