// Package army implements the player-controlled unit the satellite hunts.
// It reads a 2D movement vector from whatever input source the host wires up
// and a reset trigger that returns it to where it spawned.
package army

import (
	"sync"
	"time"

	"satscan/internal/geom"
	"satscan/internal/probe"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultTag  = "Army"
	defaultID   = "army"
	defaultSize = 0.5
)

// Config describes an army unit.
type Config struct {
	ID       string
	Tag      string
	Position geom.Vec3
	// HalfSize is the collider half-extent on every axis.
	HalfSize float64
	Layer    probe.Layer
}

// Unit is safe for concurrent use: input arrives from the HTTP layer while
// the scene loop ticks.
type Unit struct {
	mu     sync.Mutex
	id     string
	tag    string
	layer  probe.Layer
	half   float64
	origin geom.Vec3
	pos    geom.Vec3
	mx, my float64
}

func New(cfg Config) *Unit {
	u := &Unit{
		id:     cfg.ID,
		tag:    cfg.Tag,
		layer:  cfg.Layer,
		half:   cfg.HalfSize,
		origin: cfg.Position,
		pos:    cfg.Position,
	}
	if u.id == "" {
		u.id = defaultID
	}
	if u.tag == "" {
		u.tag = DefaultTag
	}
	if u.half <= 0 {
		u.half = defaultSize
	}
	return u
}

// SetMovement stores the current input vector; it applies on every tick
// until changed.
func (u *Unit) SetMovement(x, y float64) {
	u.mu.Lock()
	u.mx, u.my = x, y
	u.mu.Unlock()
}

// Movement returns the current input vector.
func (u *Unit) Movement() (x, y float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.mx, u.my
}

// Reset puts the unit back at its spawn position.
func (u *Unit) Reset() {
	u.mu.Lock()
	u.pos = u.origin
	u.mu.Unlock()
}

// Tick translates the unit in world space. Input x is mirrored and input y
// maps to world z, matching the top-down camera.
func (u *Unit) Tick(dt time.Duration) {
	u.mu.Lock()
	move := geom.Vec3{X: -u.mx, Z: u.my}
	u.pos = u.pos.Add(move.Scale(dt.Seconds()))
	u.mu.Unlock()
}

func (u *Unit) ID() string         { return u.id }
func (u *Unit) Tag() string        { return u.tag }
func (u *Unit) Layer() probe.Layer { return u.layer }

func (u *Unit) Position() geom.Vec3 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.pos
}

func (u *Unit) Bounds() geom.Bounds {
	p := u.Position()
	return geom.Bounds{Center: p, Extents: geom.Vec3{X: u.half, Y: u.half, Z: u.half}}
}
