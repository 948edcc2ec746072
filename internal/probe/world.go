// Package probe provides the line-intersection capability the satellite uses
// to look beneath itself. World is an in-memory set of box colliders filtered
// by layer, standing in for a physics engine.
package probe

import (
	"sort"
	"sync"

	"satscan/internal/geom"
)

// Layer indexes a collision layer (0..31).
type Layer uint8

// Well-known layers.
const (
	LayerDefault  Layer = 0
	LayerBoundary Layer = 8
)

// LayerMask selects layers; bit n set means layer n is tested.
type LayerMask uint32

// AllLayers tests every layer.
const AllLayers LayerMask = ^LayerMask(0)

// Bit returns the mask selecting only l.
func (l Layer) Bit() LayerMask { return 1 << LayerMask(l) }

// Excluding returns m with l removed.
func (m LayerMask) Excluding(l Layer) LayerMask { return m &^ l.Bit() }

// Has reports whether l is selected by m.
func (m LayerMask) Has(l Layer) bool { return m&l.Bit() != 0 }

// Collider is anything the world can intersect. Position is the owning
// object's world position, which is what a hit reports, not the contact point.
type Collider interface {
	ID() string
	Tag() string
	Layer() Layer
	Bounds() geom.Bounds
	Position() geom.Vec3
}

// Hit describes the nearest collider a segment touched.
type Hit struct {
	Tag      string
	Position geom.Vec3
	Point    geom.Vec3
	Collider Collider
}

// World is a registry of colliders. Safe for concurrent use.
type World struct {
	mu        sync.RWMutex
	colliders map[string]Collider
}

func NewWorld() *World {
	return &World{colliders: make(map[string]Collider)}
}

// Add registers c, replacing any collider with the same ID.
func (w *World) Add(c Collider) {
	w.mu.Lock()
	w.colliders[c.ID()] = c
	w.mu.Unlock()
}

// Remove unregisters the collider with the given id. Missing ids are ignored.
func (w *World) Remove(id string) {
	w.mu.Lock()
	delete(w.colliders, id)
	w.mu.Unlock()
}

// Len returns the number of registered colliders.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.colliders)
}

// LineIntersects returns the collider nearest to from along the segment
// from->to, considering only layers selected by mask. Ties on distance are
// broken by collider ID so results are deterministic.
func (w *World) LineIntersects(from, to geom.Vec3, mask LayerMask) (Hit, bool) {
	w.mu.RLock()
	cands := make([]Collider, 0, len(w.colliders))
	for _, c := range w.colliders {
		if mask.Has(c.Layer()) {
			cands = append(cands, c)
		}
	}
	w.mu.RUnlock()
	sort.Slice(cands, func(i, j int) bool { return cands[i].ID() < cands[j].ID() })

	var (
		best  Collider
		bestT float64
	)
	for _, c := range cands {
		t, ok := c.Bounds().SegmentHit(from, to)
		if !ok {
			continue
		}
		if best == nil || t < bestT {
			best, bestT = c, t
		}
	}
	if best == nil {
		return Hit{}, false
	}
	return Hit{
		Tag:      best.Tag(),
		Position: best.Position(),
		Point:    from.Add(to.Sub(from).Scale(bestT)),
		Collider: best,
	}, true
}

// StaticBox is a fixed collider, e.g. the patrol boundary volume.
type StaticBox struct {
	Name  string
	Label string
	On    Layer
	Box   geom.Bounds
}

func (s *StaticBox) ID() string          { return s.Name }
func (s *StaticBox) Tag() string         { return s.Label }
func (s *StaticBox) Layer() Layer        { return s.On }
func (s *StaticBox) Bounds() geom.Bounds { return s.Box }
func (s *StaticBox) Position() geom.Vec3 { return s.Box.Center }
