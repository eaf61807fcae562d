package position

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrIncompatiblePositions is returned when two positions of different
	// variants are combined (e.g. the distance between a planar and a
	// geographic coordinate).
	ErrIncompatiblePositions = errors.New("incompatible position variants")

	// ErrInvalidCoordinates is returned when a constructor receives values
	// outside the domain of the variant (NaN, infinities, out of range degrees).
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Position is an immutable coordinate. The variant is fixed at construction.
type Position interface {
	// DistanceTo returns the distance to other, which must be the same variant.
	DistanceTo(other Position) (float64, error)
	// Coordinates returns the components in construction order.
	Coordinates() []float64
	// Dimensions is the number of components.
	Dimensions() int
	fmt.Stringer

	sealed()
}

// Euclidean2D is a point in the plane.
type Euclidean2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var _ Position = Euclidean2D{}

// NewEuclidean2D creates a planar position. It rejects NaN and infinite components.
func NewEuclidean2D(x, y float64) (Euclidean2D, error) {
	if !finite(x) || !finite(y) {
		return Euclidean2D{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, x, y)
	}
	return Euclidean2D{X: x, Y: y}, nil
}

func (Euclidean2D) sealed() {}

// DistanceTo returns the Euclidean distance to other.
func (p Euclidean2D) DistanceTo(other Position) (float64, error) {
	o, ok := other.(Euclidean2D)
	if !ok {
		return 0, fmt.Errorf("%w: %s and %T", ErrIncompatiblePositions, p, other)
	}
	return math.Hypot(o.X-p.X, o.Y-p.Y), nil
}

// Coordinates returns [x, y].
func (p Euclidean2D) Coordinates() []float64 { return []float64{p.X, p.Y} }

// Dimensions returns 2.
func (Euclidean2D) Dimensions() int { return 2 }

// Add returns the component-wise sum.
func (p Euclidean2D) Add(o Euclidean2D) Euclidean2D { return Euclidean2D{X: p.X + o.X, Y: p.Y + o.Y} }

// Sub returns the component-wise difference.
func (p Euclidean2D) Sub(o Euclidean2D) Euclidean2D { return Euclidean2D{X: p.X - o.X, Y: p.Y - o.Y} }

// Scale multiplies both components by f.
func (p Euclidean2D) Scale(f float64) Euclidean2D { return Euclidean2D{X: p.X * f, Y: p.Y * f} }

// Norm returns the Euclidean length of the vector from the origin to p.
func (p Euclidean2D) Norm() float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y) }

// Normalized returns the unit vector pointing at p, or the zero vector when
// p is the origin.
func (p Euclidean2D) Normalized() Euclidean2D {
	n := p.Norm()
	if n == 0 {
		return Euclidean2D{}
	}
	return Euclidean2D{X: p.X / n, Y: p.Y / n}
}

func (p Euclidean2D) String() string { return fmt.Sprintf("[%g, %g]", p.X, p.Y) }

// EarthRadius is the mean Earth radius in meters used for great-circle distances.
const EarthRadius = 6_371_008.8

// LatLong is a geographic coordinate in decimal degrees.
type LatLong struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
}

var _ Position = LatLong{}

// NewLatLong creates a geographic position. Latitude must be within [-90, 90]
// and longitude within [-180, 180].
func NewLatLong(latitude, longitude float64) (LatLong, error) {
	if !finite(latitude) || !finite(longitude) ||
		latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return LatLong{}, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinates, latitude, longitude)
	}
	return LatLong{Latitude: latitude, Longitude: longitude}, nil
}

func (LatLong) sealed() {}

// DistanceTo returns the haversine distance in meters.
func (p LatLong) DistanceTo(other Position) (float64, error) {
	o, ok := other.(LatLong)
	if !ok {
		return 0, fmt.Errorf("%w: %s and %T", ErrIncompatiblePositions, p, other)
	}
	lat1, lat2 := radians(p.Latitude), radians(o.Latitude)
	dLat := lat2 - lat1
	dLon := radians(o.Longitude - p.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

// Coordinates returns [latitude, longitude].
func (p LatLong) Coordinates() []float64 { return []float64{p.Latitude, p.Longitude} }

// Dimensions returns 2.
func (LatLong) Dimensions() int { return 2 }

func (p LatLong) String() string { return fmt.Sprintf("[lat=%g, lon=%g]", p.Latitude, p.Longitude) }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// SameVariant reports whether a and b are the same Position variant.
func SameVariant(a, b Position) bool {
	switch a.(type) {
	case Euclidean2D:
		_, ok := b.(Euclidean2D)
		return ok
	case LatLong:
		_, ok := b.(LatLong)
		return ok
	}
	return false
}
