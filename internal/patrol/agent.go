// Package patrol implements the satellite: an agent that sweeps left and
// right inside a boundary volume, probes straight down every tick and
// publishes TargetFound when the probe lands on the target.
package patrol

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"satscan/internal/events"
	"satscan/internal/geom"
	"satscan/internal/probe"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultTargetTag = "Army"
	defaultInset     = 0.01
	defaultID        = "satellite"
)

var logger = zerolog.Nop()

// SetLogger installs the package logger.
func SetLogger(l zerolog.Logger) { logger = l.With().Str("component", "patrol").Logger() }

// Prober is the line-intersection capability used for the downward scan.
type Prober interface {
	LineIntersects(from, to geom.Vec3, mask probe.LayerMask) (probe.Hit, bool)
}

// Config describes a satellite.
type Config struct {
	ID        string
	Position  geom.Vec3
	Direction Direction
	Bounds    geom.Bounds
	// Speed in world units per second.
	Speed     float64
	TargetTag string
	// BoundaryLayer is excluded from the probe so the scan sees through the
	// volume it patrols.
	BoundaryLayer probe.Layer
	// Inset is how far inside the boundary edge the agent reappears after
	// leaving the visible region.
	Inset     float64
	Prober    Prober
	Publisher events.Publisher
}

// TickResult reports what happened during one Tick.
type TickResult struct {
	Flipped  bool
	Detected bool
	Target   geom.Vec3
}

// Agent is the satellite. It is driven from a single update loop and is not
// safe for concurrent use.
type Agent struct {
	id        string
	pos       geom.Vec3
	dir       Direction
	bounds    geom.Bounds
	speed     float64
	targetTag string
	mask      probe.LayerMask
	inset     float64
	prober    Prober
	pub       events.Publisher

	flips     int
	detects   int
	destroyed bool
	slot      *Slot
}

// New validates cfg and builds an Agent. Most callers should go through a
// Slot so only one satellite is live at a time.
func New(cfg Config) (*Agent, error) {
	if cfg.Bounds.Empty() {
		return nil, fmt.Errorf("%w: bounds have no extent along x", ErrInvalidConfig)
	}
	if cfg.Speed < 0 {
		return nil, fmt.Errorf("%w: speed must be >= 0, got %v", ErrInvalidConfig, cfg.Speed)
	}
	if cfg.Prober == nil {
		return nil, fmt.Errorf("%w: prober is required", ErrInvalidConfig)
	}
	if cfg.Publisher == nil {
		return nil, fmt.Errorf("%w: publisher is required", ErrInvalidConfig)
	}
	a := &Agent{
		id:        cfg.ID,
		pos:       cfg.Position,
		dir:       cfg.Direction,
		bounds:    cfg.Bounds,
		speed:     cfg.Speed,
		targetTag: cfg.TargetTag,
		mask:      probe.AllLayers.Excluding(cfg.BoundaryLayer),
		inset:     cfg.Inset,
		prober:    cfg.Prober,
		pub:       cfg.Publisher,
	}
	if a.id == "" {
		a.id = defaultID
	}
	if a.targetTag == "" {
		a.targetTag = DefaultTargetTag
	}
	if a.inset <= 0 {
		a.inset = defaultInset
	}
	return a, nil
}

func (a *Agent) ID() string           { return a.id }
func (a *Agent) Position() geom.Vec3  { return a.pos }
func (a *Agent) Direction() Direction { return a.dir }
func (a *Agent) Bounds() geom.Bounds  { return a.bounds }
func (a *Agent) Flips() int           { return a.flips }
func (a *Agent) Detections() int      { return a.detects }
func (a *Agent) Destroyed() bool      { return a == nil || a.destroyed }

func (a *Agent) State() State {
	if a.dir == Right {
		return PatrollingRight
	}
	return PatrollingLeft
}

// Tick advances the agent by dt: move, bounce off the boundary, then scan.
// The bounce and the scan are independent; both can happen in one tick.
func (a *Agent) Tick(dt time.Duration) TickResult {
	var res TickResult
	if a.destroyed {
		return res
	}
	a.pos = a.pos.Add(a.dir.Vector().Scale(a.speed * dt.Seconds()))
	if !a.bounds.Contains(a.pos) {
		a.changeDirection()
		res.Flipped = true
	}
	if target, ok := a.checkForTarget(); ok {
		res.Detected = true
		res.Target = target
		a.detects++
		probeHits.Inc()
		a.pub.Publish(events.TargetFound, a, target)
	}
	return res
}

// changeDirection reverses travel and pulls the agent back inside the bounds.
func (a *Agent) changeDirection() {
	a.dir = a.dir.Flip()
	a.pos = a.bounds.ClosestPoint(a.pos)
	a.flips++
	directionFlips.WithLabelValues(a.dir.String()).Inc()
	logger.Debug().Str("id", a.id).Str("direction", a.dir.String()).Float64("x", a.pos.X).Msg("direction changed")
}

// checkForTarget probes from the agent down to ground level (y=0) at the
// same x/z and reports the world position of a collider carrying the
// target tag.
func (a *Agent) checkForTarget() (geom.Vec3, bool) {
	below := a.pos
	below.Y = 0
	hit, ok := a.prober.LineIntersects(a.pos, below, a.mask)
	if !ok || hit.Tag != a.targetTag {
		return geom.Vec3{}, false
	}
	logger.Debug().Str("id", a.id).Str("tag", a.targetTag).
		Float64("x", hit.Position.X).Float64("y", hit.Position.Y).Float64("z", hit.Position.Z).
		Msg("target found")
	return hit.Position, true
}

// OnBecameInvisible handles the agent leaving the visible region. It puts the
// agent just inside the boundary edge it re-enters from: the max-x edge when
// heading left, the min-x edge when heading right. Direction is unchanged and
// no scan runs. The edge depends on direction; it is not a fixed min-corner
// reset.
func (a *Agent) OnBecameInvisible() geom.Vec3 {
	if a.destroyed {
		return a.pos
	}
	prev := a.pos
	p := a.bounds.ClosestPoint(a.pos)
	inset := a.inset
	if inset > a.bounds.Extents.X {
		inset = a.bounds.Extents.X
	}
	if a.dir == Left {
		p.X = a.bounds.Max().X - inset
	} else {
		p.X = a.bounds.Min().X + inset
	}
	a.pos = p
	logger.Info().Str("id", a.id).
		Float64("from_x", prev.X).Float64("to_x", p.X).
		Msg("off-screen, repositioned")
	return p
}

// Destroy removes the agent from play and frees its slot.
func (a *Agent) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	if a.slot != nil {
		a.slot.release(a)
	}
}
