package position

import "math"

// Filter decides whether a position belongs to a region.
type Filter interface {
	Contains(p Position) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(p Position) bool

// Contains calls f(p).
func (f FilterFunc) Contains(p Position) bool { return f(p) }

type and struct{ a, b Filter }

func (f and) Contains(p Position) bool { return f.a.Contains(p) && f.b.Contains(p) }

// And matches positions contained in both a and b.
func And(a, b Filter) Filter { return and{a: a, b: b} }

type or struct{ a, b Filter }

func (f or) Contains(p Position) bool { return f.a.Contains(p) || f.b.Contains(p) }

// Or matches positions contained in a or b.
func Or(a, b Filter) Filter { return or{a: a, b: b} }

type not struct{ f Filter }

func (f not) Contains(p Position) bool { return !f.f.Contains(p) }

// Not inverts f.
func Not(f Filter) Filter { return not{f: f} }

// Rectangle is an axis-aligned box over the first two coordinates of a
// position. Width and Height may be negative; the box is normalized on use.
// Bounds are inclusive.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether p lies inside r.
func (r Rectangle) Contains(p Position) bool {
	c := p.Coordinates()
	if len(c) < 2 {
		return false
	}
	minX, maxX := math.Min(r.X, r.X+r.Width), math.Max(r.X, r.X+r.Width)
	minY, maxY := math.Min(r.Y, r.Y+r.Height), math.Max(r.Y, r.Y+r.Height)
	return c[0] >= minX && c[0] <= maxX && c[1] >= minY && c[1] <= maxY
}

// Circle matches positions whose distance from Center is at most Radius.
// Positions of a different variant than Center never match.
type Circle struct {
	Center Position
	Radius float64
}

// Contains reports whether p lies inside c.
func (c Circle) Contains(p Position) bool {
	d, err := c.Center.DistanceTo(p)
	return err == nil && d <= c.Radius
}
