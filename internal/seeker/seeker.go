// Package seeker implements the scout: a TargetFound subscriber that steps
// toward each reported position by a bounded distance.
package seeker

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"satscan/internal/events"
	"satscan/internal/geom"
)

// DefaultStep is the largest distance a scout moves per notification.
const DefaultStep = 0.01

var zlog = zerolog.Nop()

// SetLogger installs the package logger.
func SetLogger(l zerolog.Logger) { zlog = l.With().Str("component", "seeker").Logger() }

var malformedPayloads = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "satscan",
		Subsystem: "seeker",
		Name:      "malformed_payload_total",
		Help:      "TargetFound notifications whose payload was not a position",
	},
	[]string{"type"},
)

func init() { prometheus.MustRegister(malformedPayloads) }

// Agent is a scout.
type Agent struct {
	id        string
	pos       geom.Vec3
	step      float64
	target    *geom.Vec3
	received  int
	destroyed bool
}

// New returns a scout at pos. A non-positive step uses DefaultStep.
func New(id string, pos geom.Vec3, step float64) *Agent {
	if step <= 0 {
		step = DefaultStep
	}
	return &Agent{id: id, pos: pos, step: step}
}

func (a *Agent) ID() string          { return a.id }
func (a *Agent) Position() geom.Vec3 { return a.pos }
func (a *Agent) Step() float64       { return a.step }
func (a *Agent) Received() int       { return a.received }

// LastKnownTarget returns the most recent reported target, if any.
func (a *Agent) LastKnownTarget() (geom.Vec3, bool) {
	if a.target == nil {
		return geom.Vec3{}, false
	}
	return *a.target, true
}

// Attach subscribes the scout to TargetFound on reg.
func (a *Agent) Attach(reg *events.Registry) { reg.Subscribe(events.TargetFound, a) }

// Destroy marks the scout gone. The registry skips it from then on.
func (a *Agent) Destroy() { a.destroyed = true }

func (a *Agent) Destroyed() bool { return a == nil || a.destroyed }

// OnEvent handles TargetFound; other kinds are ignored. A payload that is not
// a position is logged and dropped.
func (a *Agent) OnEvent(kind events.Kind, sender events.Sender, payload any) {
	if kind != events.TargetFound {
		return
	}
	target, err := positionOf(payload)
	if err != nil {
		malformedPayloads.WithLabelValues(fmt.Sprintf("%T", payload)).Inc()
		ev := zlog.Warn().Str("scout", a.id).Err(err)
		if sender != nil {
			ev = ev.Str("sender", sender.ID())
		}
		ev.Msg("ignoring target_found")
		return
	}
	a.received++
	a.target = &target
	a.pos = geom.MoveTowards(a.pos, target, a.step)
	zlog.Debug().Str("scout", a.id).
		Float64("x", a.pos.X).Float64("y", a.pos.Y).Float64("z", a.pos.Z).
		Float64("remaining", a.pos.Dist(target)).
		Msg("moved toward target")
}

func positionOf(payload any) (geom.Vec3, error) {
	switch p := payload.(type) {
	case geom.Vec3:
		return p, nil
	case *geom.Vec3:
		if p != nil {
			return *p, nil
		}
		return geom.Vec3{}, fmt.Errorf("nil position payload")
	case nil:
		return geom.Vec3{}, fmt.Errorf("missing payload")
	default:
		return geom.Vec3{}, fmt.Errorf("payload %T is not a position", payload)
	}
}
