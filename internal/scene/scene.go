package scene

import (
	"fmt"
	"time"

	"satscan/internal/army"
	"satscan/internal/config"
	"satscan/internal/events"
	"satscan/internal/geom"
	"satscan/internal/patrol"
	"satscan/internal/probe"
	"satscan/internal/seeker"
)

// Scene is one loaded level.
type Scene struct {
	name     string
	cfg      config.SceneConfig
	reg      *events.Registry
	world    *probe.World
	boundary *probe.StaticBox
	army     *army.Unit
	sat      *patrol.Agent
	scouts   []*seeker.Agent
	visible  bool
	ticks    uint64
	unloaded bool
	// owned is false when the scene adopted a satellite another scene
	// spawned; it then only observes it.
	owned bool
}

// Load builds a scene, attaches its scouts to reg and publishes Init.
// The satellite is spawned through slot; if another satellite is already
// live the scene adopts it, matching the single-instance rule.
func Load(cfg config.SceneConfig, reg *events.Registry, slot *patrol.Slot) (*Scene, error) {
	s := &Scene{
		name:  cfg.Name,
		cfg:   cfg,
		reg:   reg,
		world: probe.NewWorld(),
	}
	s.boundary = &probe.StaticBox{Name: "boundary", Label: "Boundary", On: probe.LayerBoundary, Box: cfg.Boundary}
	s.world.Add(s.boundary)

	s.army = army.New(army.Config{Tag: cfg.Army.Tag, Position: valueOr(cfg.Army.Position), Layer: probe.LayerDefault})
	s.world.Add(s.army)

	sat, created, err := slot.Spawn(patrol.Config{
		Position:      valueOr(cfg.Satellite.Position),
		Direction:     cfg.Satellite.Direction,
		Bounds:        cfg.Boundary,
		Speed:         valueOr(cfg.Satellite.Speed),
		TargetTag:     cfg.Satellite.TargetTag,
		BoundaryLayer: probe.LayerBoundary,
		Prober:        s.world,
		Publisher:     reg,
	})
	if err != nil {
		return nil, fmt.Errorf("spawn satellite: %w", err)
	}
	if !created {
		zlog.Warn().Str("scene", s.name).Str("satellite", sat.ID()).Msg("adopting live satellite")
	}
	s.sat = sat
	s.owned = created
	s.visible = s.inView(sat.Position())

	for _, sc := range cfg.Scouts {
		a := seeker.New(sc.Name, sc.Position, sc.Step)
		a.Attach(reg)
		s.scouts = append(s.scouts, a)
	}

	zlog.Info().Str("scene", s.name).Int("scouts", len(s.scouts)).Msg("scene loaded")
	reg.Publish(events.Init, s, s.name)
	return s, nil
}

func (s *Scene) ID() string { return "scene:" + s.name }

// Name returns the scene name.
func (s *Scene) Name() string               { return s.name }
func (s *Scene) Config() config.SceneConfig { return s.cfg }
func (s *Scene) Satellite() *patrol.Agent   { return s.sat }
func (s *Scene) Scouts() []*seeker.Agent    { return s.scouts }
func (s *Scene) Army() *army.Unit           { return s.army }
func (s *Scene) Ticks() uint64              { return s.ticks }
func (s *Scene) Visible() bool              { return s.visible }

// OwnsSatellite reports whether this scene spawned its satellite.
func (s *Scene) OwnsSatellite() bool { return s.owned }

func valueOr[T any](p *T) T {
	var v T
	if p != nil {
		v = *p
	}
	return v
}

// Tick advances the scene by dt. The army moves first so the satellite probes
// against this tick's position.
func (s *Scene) Tick(dt time.Duration) patrol.TickResult {
	if s.unloaded {
		return patrol.TickResult{}
	}
	s.ticks++
	s.army.Tick(dt)
	if !s.owned {
		return patrol.TickResult{}
	}
	res := s.sat.Tick(dt)
	in := s.inView(s.sat.Position())
	if s.visible && !in {
		s.sat.OnBecameInvisible()
		in = s.inView(s.sat.Position())
	}
	s.visible = in
	return res
}

// inView reports whether p is inside the view region. An unset view means
// everything is visible.
func (s *Scene) inView(p geom.Vec3) bool {
	if s.cfg.View.Empty() {
		return true
	}
	return s.cfg.View.Contains(p)
}

// Unload publishes End and destroys every entity. Subscriptions are left to
// the registry purge that follows.
func (s *Scene) Unload() {
	if s.unloaded {
		return
	}
	s.reg.Publish(events.End, s, s.name)
	for _, a := range s.scouts {
		a.Destroy()
	}
	if s.owned {
		s.sat.Destroy()
	}
	s.world.Remove(s.army.ID())
	s.world.Remove(s.boundary.ID())
	s.unloaded = true
	zlog.Info().Str("scene", s.name).Uint64("ticks", s.ticks).Msg("scene unloaded")
}
