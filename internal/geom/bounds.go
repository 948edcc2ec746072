package geom

import "math"

// Bounds is an axis-aligned box described by its center and half-size.
type Bounds struct {
	Center  Vec3 `json:"center" yaml:"center" toml:"center"`
	Extents Vec3 `json:"extents" yaml:"extents" toml:"extents"`
}

// BoundsMinMax builds Bounds from two opposite corners in any order.
func BoundsMinMax(a, b Vec3) Bounds {
	lo := Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
	hi := Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
	return Bounds{
		Center:  lo.Add(hi).Scale(0.5),
		Extents: hi.Sub(lo).Scale(0.5),
	}
}

func (b Bounds) Min() Vec3 { return b.Center.Sub(b.Extents) }
func (b Bounds) Max() Vec3 { return b.Center.Add(b.Extents) }

// Empty reports whether the box has no volume along X. Patrol motion happens
// on X, so a collapsed X axis cannot be patrolled.
func (b Bounds) Empty() bool { return b.Extents.X <= 0 }

// Contains reports whether p lies inside b; points on the faces count as inside.
func (b Bounds) Contains(p Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}

// ClosestPoint projects p onto b. Points already inside are returned unchanged.
func (b Bounds) ClosestPoint(p Vec3) Vec3 {
	lo, hi := b.Min(), b.Max()
	return Vec3{
		X: clamp(p.X, lo.X, hi.X),
		Y: clamp(p.Y, lo.Y, hi.Y),
		Z: clamp(p.Z, lo.Z, hi.Z),
	}
}

// SegmentHit returns the parametric entry point t in [0,1] at which the
// segment from->to first touches b (slab method). ok is false on a miss.
func (b Bounds) SegmentHit(from, to Vec3) (t float64, ok bool) {
	lo, hi := b.Min(), b.Max()
	d := to.Sub(from)
	tmin, tmax := 0.0, 1.0
	axes := [3][4]float64{
		{from.X, d.X, lo.X, hi.X},
		{from.Y, d.Y, lo.Y, hi.Y},
		{from.Z, d.Z, lo.Z, hi.Z},
	}
	for _, a := range axes {
		o, dir, mn, mx := a[0], a[1], a[2], a[3]
		if dir == 0 {
			if o < mn || o > mx {
				return 0, false
			}
			continue
		}
		t1 := (mn - o) / dir
		t2 := (mx - o) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
