package patrol

import (
	"fmt"
	"strings"

	"satscan/internal/geom"
)

// Direction is one of the two unit vectors along X the satellite travels.
// The zero value is Left.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) Vector() geom.Vec3 {
	if d == Right {
		return geom.Right
	}
	return geom.Left
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Right {
		return Left
	}
	return Right
}

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "left", "":
		*d = Left
	case "right":
		*d = Right
	default:
		return fmt.Errorf("unknown direction %q (want left|right)", string(b))
	}
	return nil
}

// State is the patrol state; it mirrors the current direction.
type State int

const (
	PatrollingLeft State = iota
	PatrollingRight
)

func (s State) String() string {
	if s == PatrollingRight {
		return "patrolling_right"
	}
	return "patrolling_left"
}
