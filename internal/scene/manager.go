package scene

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"satscan/internal/config"
	"satscan/internal/events"
	"satscan/internal/geom"
	"satscan/internal/patrol"
	"satscan/pkg/types"
)

var zlog = zerolog.Nop()

// SetLogger installs the package logger.
func SetLogger(l zerolog.Logger) { zlog = l.With().Str("component", "scene").Logger() }

// ErrNoScene is returned by operations that need a loaded scene.
var ErrNoScene = errors.New("no scene loaded")

// Options wires a Manager to its collaborators. Zero values select the
// process-wide registry and satellite slot.
type Options struct {
	Registry *events.Registry
	Slot     *patrol.Slot
	// Tick is the fixed step used by Step and Run.
	Tick time.Duration
	// Tracing receives transition spans; nil uses the global provider.
	Tracing trace.TracerProvider
}

const tracerName = "satscan/internal/scene"

// Manager hosts the current scene.
type Manager struct {
	mu          sync.Mutex
	reg         *events.Registry
	slot        *patrol.Slot
	tick        time.Duration
	tracer      trace.Tracer
	cur         *Scene
	transitions int
	lastErr     string
	startTime   time.Time

	// lastGood is the config of the most recent successful load; Reload
	// falls back to it after a failed transition.
	lastGood *config.SceneConfig
}

// NewManager loads the initial scene.
func NewManager(cfg config.SceneConfig, opts Options) (*Manager, error) {
	m := &Manager{
		reg:       opts.Registry,
		slot:      opts.Slot,
		tick:      opts.Tick,
		startTime: time.Now(),
	}
	if m.reg == nil {
		m.reg = events.Default()
	}
	if m.slot == nil {
		m.slot = patrol.DefaultSlot()
	}
	if m.tick <= 0 {
		m.tick = 16 * time.Millisecond
	}
	tp := opts.Tracing
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	m.tracer = tp.Tracer(tracerName)
	s, err := Load(cfg, m.reg, m.slot)
	if err != nil {
		return nil, err
	}
	m.cur = s
	m.lastGood = &cfg
	sceneLoaded.WithLabelValues(s.Name()).Set(1)
	return m, nil
}

func (m *Manager) Registry() *events.Registry  { return m.reg }
func (m *Manager) TickInterval() time.Duration { return m.tick }

// Current returns the loaded scene or nil. Callers must not tick it
// directly while Run is active.
func (m *Manager) Current() *Scene {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Ready reports whether a scene is loaded.
func (m *Manager) Ready() bool { return m.Current() != nil }

// Step advances the current scene by one fixed tick.
func (m *Manager) Step() (patrol.TickResult, error) { return m.Advance(m.tick) }

// Advance advances the current scene by dt.
func (m *Manager) Advance(dt time.Duration) (patrol.TickResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return patrol.TickResult{}, ErrNoScene
	}
	res := m.cur.Tick(dt)
	ticksTotal.Inc()
	if res.Detected {
		detectionsTotal.Inc()
	}
	return res, nil
}

// Transition swaps scenes: the current scene is unloaded, the registry is
// purged of the subscribers it left behind, then next is loaded. It returns
// the number of purged subscriptions.
func (m *Manager) Transition(next config.SceneConfig) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, span := m.tracer.Start(context.Background(), "scene.transition",
		trace.WithAttributes(attribute.String("scene.next", next.Name)))
	defer span.End()
	if m.cur != nil {
		span.SetAttributes(attribute.String("scene.prev", m.cur.Name()))
		sceneLoaded.WithLabelValues(m.cur.Name()).Set(0)
		m.cur.Unload()
		m.cur = nil
	}
	purged := m.reg.PurgeDeadSubscribers()
	span.SetAttributes(attribute.Int("registry.purged", purged))
	m.transitions++
	transitionsTotal.Inc()
	s, err := Load(next, m.reg, m.slot)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scene load failed")
		m.lastErr = err.Error()
		zlog.Error().Err(err).Str("scene", next.Name).Msg("scene load failed")
		return purged, err
	}
	m.cur = s
	m.lastGood = &next
	m.lastErr = ""
	sceneLoaded.WithLabelValues(s.Name()).Set(1)
	zlog.Info().Str("scene", s.Name()).Int("purged", purged).Msg("scene transition")
	return purged, nil
}

// Reload transitions to a fresh copy of the current scene, or of the last
// scene that loaded successfully when the current one failed to load.
func (m *Manager) Reload() (string, int, error) {
	m.mu.Lock()
	last := m.lastGood
	m.mu.Unlock()
	if last == nil {
		return "", 0, ErrNoScene
	}
	cfg := *last
	purged, err := m.Transition(cfg)
	return cfg.Name, purged, err
}

// Close unloads the current scene and purges the registry.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastGood = nil
	if m.cur == nil {
		return
	}
	sceneLoaded.WithLabelValues(m.cur.Name()).Set(0)
	m.cur.Unload()
	m.cur = nil
	m.reg.PurgeDeadSubscribers()
}

// SetInput forwards a movement vector to the army unit.
func (m *Manager) SetInput(x, y float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return ErrNoScene
	}
	m.cur.Army().SetMovement(x, y)
	return nil
}

// ResetInput sends the army unit back to its spawn point.
func (m *Manager) ResetInput() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return ErrNoScene
	}
	m.cur.Army().Reset()
	return nil
}

// Status returns a read-only projection of the host state.
func (m *Manager) Status() types.StatusResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	out := types.StatusResponse{
		Transitions:    m.transitions,
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
		Scouts:         []types.ScoutStatus{},
		LastError:      m.lastErr,
	}
	s := m.cur
	if s == nil {
		return out
	}
	out.Scene = s.Name()
	out.Ticks = s.Ticks()
	sat := s.Satellite()
	out.Satellite = &types.SatelliteStatus{
		ID:         sat.ID(),
		Position:   toWire(sat.Position()),
		Direction:  sat.Direction().String(),
		State:      sat.State().String(),
		Flips:      sat.Flips(),
		Detections: sat.Detections(),
		Visible:    s.Visible(),
	}
	for _, sc := range s.Scouts() {
		st := types.ScoutStatus{ID: sc.ID(), Position: toWire(sc.Position()), Received: sc.Received()}
		if t, ok := sc.LastKnownTarget(); ok {
			w := toWire(t)
			st.Target = &w
		}
		out.Scouts = append(out.Scouts, st)
	}
	a := s.Army()
	mx, my := a.Movement()
	out.Army = &types.ArmyStatus{ID: a.ID(), Position: toWire(a.Position()), Movement: [2]float64{mx, my}}
	return out
}

// Subscribers reports registry registrations per kind.
func (m *Manager) Subscribers() types.SubscribersResponse {
	snap := m.reg.Snapshot()
	out := types.SubscribersResponse{Kinds: make(map[string]int, len(snap))}
	for k, n := range snap {
		out.Kinds[k.String()] = n
	}
	return out
}

func toWire(v geom.Vec3) types.Vec3 { return types.Vec3{X: v.X, Y: v.Y, Z: v.Z} }
