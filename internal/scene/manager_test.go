package scene

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"satscan/internal/config"
	"satscan/internal/events"
	"satscan/internal/geom"
	"satscan/internal/patrol"
	"satscan/pkg/types"
)

// newTestManager builds a Manager with an isolated registry and slot.
func newTestManager(t *testing.T, sc config.SceneConfig) (*Manager, *events.Registry) {
	t.Helper()
	cfg := config.Config{Scene: sc}
	cfg.ApplyDefaults()
	reg := events.New()
	m, err := NewManager(cfg.Scene, Options{Registry: reg, Slot: &patrol.Slot{}, Tick: time.Second})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Close)
	return m, reg
}

func TestManager_DetectionMovesScoutSameTick(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{
		Satellite: config.SatelliteConfig{Position: config.Point(geom.Vec3{X: 2, Y: 3}), Speed: config.Float(0.0001)},
		Army:      config.ArmyConfig{Position: config.Point(geom.Vec3{X: 2})},
		Scouts:    []config.ScoutConfig{{Name: "s", Step: 0.01}},
	})
	res, err := m.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.Detected || res.Target != (geom.Vec3{X: 2}) {
		t.Fatalf("result=%+v", res)
	}
	st := m.Status()
	if len(st.Scouts) != 1 || math.Abs(st.Scouts[0].Position.X-0.01) > 1e-9 || st.Scouts[0].Target == nil {
		t.Fatalf("scouts=%+v", st.Scouts)
	}
	if st.Satellite.Detections != 1 || st.Ticks != 1 {
		t.Fatalf("status=%+v", st)
	}
}

func TestManager_TwoScoutsBothAdvance(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{
		Satellite: config.SatelliteConfig{Position: config.Point(geom.Vec3{X: 2, Y: 3}), Speed: config.Float(0.0001)},
		Army:      config.ArmyConfig{Position: config.Point(geom.Vec3{X: 2})},
		Scouts: []config.ScoutConfig{
			{Name: "a", Position: geom.Vec3{X: -1}, Step: 0.5},
			{Name: "b", Position: geom.Vec3{X: 4}, Step: 0.25},
		},
	})
	if _, err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	st := m.Status()
	if math.Abs(st.Scouts[0].Position.X+0.5) > 1e-9 || math.Abs(st.Scouts[1].Position.X-3.75) > 1e-9 {
		t.Fatalf("scouts=%+v", st.Scouts)
	}
}

func TestManager_TransitionPurgesOnceBeforeLoad(t *testing.T) {
	m, reg := newTestManager(t, config.SceneConfig{Scouts: []config.ScoutConfig{{Name: "a"}, {Name: "b"}}})
	var kinds []events.Kind
	reg.Subscribe(events.Init, events.SubscriberFunc(func(k events.Kind, _ events.Sender, _ any) { kinds = append(kinds, k) }))
	reg.Subscribe(events.End, events.SubscriberFunc(func(k events.Kind, _ events.Sender, _ any) { kinds = append(kinds, k) }))

	if reg.Count(events.TargetFound) != 2 {
		t.Fatalf("count=%d", reg.Count(events.TargetFound))
	}
	next := m.Current().Config()
	next.Name = "second"
	next.Scouts = []config.ScoutConfig{{Name: "c"}}
	purged, err := m.Transition(next)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if purged != 2 {
		t.Fatalf("purged=%d", purged)
	}
	if reg.Count(events.TargetFound) != 1 {
		t.Fatalf("stale scouts left behind: %d", reg.Count(events.TargetFound))
	}
	if len(kinds) != 2 || kinds[0] != events.End || kinds[1] != events.Init {
		t.Fatalf("lifecycle events=%v", kinds)
	}
	st := m.Status()
	if st.Scene != "second" || st.Transitions != 1 || st.Ticks != 0 {
		t.Fatalf("status=%+v", st)
	}
}

func TestManager_ReloadKeepsSceneAndSingleSatellite(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{})
	first := m.Current().Satellite()
	name, _, err := m.Reload()
	if err != nil || name != "main" {
		t.Fatalf("Reload: name=%s err=%v", name, err)
	}
	second := m.Current().Satellite()
	if first == second || !first.Destroyed() || second.Destroyed() {
		t.Fatalf("reload should replace the satellite")
	}
}

func TestManager_FailedTransitionLeavesNoScene(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{})
	bad := m.Current().Config()
	bad.Satellite.Speed = config.Float(-1)
	if _, err := m.Transition(bad); !patrol.IsInvalidConfig(err) {
		t.Fatalf("err=%v", err)
	}
	if m.Ready() {
		t.Fatalf("manager should not be ready")
	}
	if _, err := m.Step(); !errors.Is(err, ErrNoScene) {
		t.Fatalf("Step err=%v", err)
	}
	if st := m.Status(); st.LastError == "" || st.Satellite != nil {
		t.Fatalf("status=%+v", st)
	}
	if err := m.SetInput(1, 0); !errors.Is(err, ErrNoScene) {
		t.Fatalf("SetInput err=%v", err)
	}
	name, _, err := m.Reload()
	if err != nil || name != "main" || !m.Ready() {
		t.Fatalf("Reload after failure: name=%q err=%v ready=%v", name, err, m.Ready())
	}
	if st := m.Status(); st.LastError != "" || st.Satellite == nil {
		t.Fatalf("status after recovery=%+v", st)
	}
}

func TestManager_ReloadAfterCloseHasNoScene(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{})
	m.Close()
	if _, _, err := m.Reload(); !errors.Is(err, ErrNoScene) {
		t.Fatalf("Reload err=%v", err)
	}
}

func TestManager_SharedSlotAdoptsLiveSatellite(t *testing.T) {
	var cfg config.Config
	cfg.ApplyDefaults()
	slot := &patrol.Slot{}
	reg := events.New()
	a, err := NewManager(cfg.Scene, Options{Registry: reg, Slot: slot})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	defer a.Close()
	b, err := NewManager(cfg.Scene, Options{Registry: reg, Slot: slot})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if a.Current().Satellite() != b.Current().Satellite() {
		t.Fatalf("second scene should adopt the live satellite")
	}
}

func TestManager_AdopterOnlyObservesSatellite(t *testing.T) {
	var cfg config.Config
	cfg.ApplyDefaults()
	slot := &patrol.Slot{}
	a, err := NewManager(cfg.Scene, Options{Registry: events.New(), Slot: slot})
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	defer a.Close()
	b, err := NewManager(cfg.Scene, Options{Registry: events.New(), Slot: slot})
	if err != nil {
		t.Fatalf("adopter: %v", err)
	}
	if !a.Current().OwnsSatellite() || b.Current().OwnsSatellite() {
		t.Fatalf("ownership: owner=%v adopter=%v", a.Current().OwnsSatellite(), b.Current().OwnsSatellite())
	}
	sat := a.Current().Satellite()
	start := sat.Position()

	if _, err := b.Step(); err != nil {
		t.Fatalf("adopter Step: %v", err)
	}
	if sat.Position() != start {
		t.Fatalf("adopter moved the satellite: %v -> %v", start, sat.Position())
	}

	b.Close()
	if sat.Destroyed() || slot.Instance() != sat {
		t.Fatalf("adopter close destroyed the owner's satellite")
	}
	if _, err := a.Step(); err != nil {
		t.Fatalf("owner Step: %v", err)
	}
	if sat.Position() == start {
		t.Fatalf("owner's satellite should still move, stuck at %v", start)
	}
}

func TestManager_InputMovesArmy(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{Army: config.ArmyConfig{Position: config.Point(geom.Vec3{X: 1})}})
	if err := m.SetInput(-2, 1); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if _, err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	st := m.Status()
	if st.Army.Position != (types.Vec3{X: 3, Z: 1}) || st.Army.Movement != [2]float64{-2, 1} {
		t.Fatalf("army=%+v", st.Army)
	}
	if err := m.ResetInput(); err != nil {
		t.Fatalf("ResetInput: %v", err)
	}
	if st := m.Status(); st.Army.Position.X != 1 {
		t.Fatalf("army after reset=%+v", st.Army)
	}
}

func TestScene_VisibilityLossRepositions(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{
		View:      geom.BoundsMinMax(geom.Vec3{X: -3, Y: -10, Z: -10}, geom.Vec3{X: 3, Y: 10, Z: 10}),
		Satellite: config.SatelliteConfig{Position: config.Point(geom.Vec3{X: -2.5, Y: 3}), Speed: config.Float(1)},
	})
	if !m.Current().Visible() {
		t.Fatalf("satellite should start visible")
	}
	if _, err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	sat := m.Current().Satellite()
	if sat.Direction() != patrol.Left {
		t.Fatalf("visibility loss must not change direction")
	}
	want := m.Current().Config().Boundary.Max().X - 0.01
	if math.Abs(sat.Position().X-want) > 1e-9 {
		t.Fatalf("x=%v want %v", sat.Position().X, want)
	}
	if m.Current().Visible() {
		t.Fatalf("repositioned outside view should read as invisible")
	}
}

func TestSubscribers_ReportsKinds(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{Scouts: []config.ScoutConfig{{Name: "a"}, {Name: "b"}}})
	got := m.Subscribers()
	if got.Kinds["target_found"] != 2 {
		t.Fatalf("kinds=%v", got.Kinds)
	}
}

func TestRunTicksAndRun(t *testing.T) {
	m, _ := newTestManager(t, config.SceneConfig{})
	calls := 0
	if err := m.RunTicks(5, func(int) { calls++ }); err != nil {
		t.Fatalf("RunTicks: %v", err)
	}
	if calls != 5 || m.Status().Ticks != 5 {
		t.Fatalf("calls=%d ticks=%d", calls, m.Status().Ticks)
	}

	m.tick = time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := m.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run err=%v", err)
	}
	if m.Status().Ticks <= 5 {
		t.Fatalf("Run did not tick")
	}
}
