// Package geom holds the small amount of 3D math the scene needs: vectors,
// axis-aligned bounds and bounded stepping toward a point.
package geom

import "math"

// Vec3 is a world-space position or direction.
type Vec3 struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	Z float64 `json:"z" yaml:"z" toml:"z"`
}

// Unit vectors along X, matching the two patrol directions.
var (
	Left  = Vec3{X: -1}
	Right = Vec3{X: 1}
	Zero  = Vec3{}
)

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }

// Dist returns the euclidean distance between v and o.
func (v Vec3) Dist(o Vec3) float64 { return o.Sub(v).Len() }

// MoveTowards steps from cur toward target by at most maxDelta and never
// overshoots. A non-positive maxDelta leaves cur unchanged.
func MoveTowards(cur, target Vec3, maxDelta float64) Vec3 {
	if maxDelta <= 0 {
		return cur
	}
	d := target.Sub(cur)
	dist := d.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return cur.Add(d.Scale(maxDelta / dist))
}
