package position

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean2D_RoundTrip(t *testing.T) {
	for _, pair := range [][2]float64{{0, 0}, {3, 4}, {-1.5, 2e-9}, {1e12, -1e12}} {
		p, err := NewEuclidean2D(pair[0], pair[1])
		require.NoError(t, err)
		c := p.Coordinates()
		assert.InDelta(t, pair[0], c[0], 1e-12)
		assert.InDelta(t, pair[1], c[1], 1e-12)
		assert.Equal(t, 2, p.Dimensions())
	}
}

func TestLatLong_RoundTrip(t *testing.T) {
	for _, pair := range [][2]float64{{44.1391, 12.2431}, {-90, 180}, {90, -180}, {0, 0}} {
		p, err := NewLatLong(pair[0], pair[1])
		require.NoError(t, err)
		c := p.Coordinates()
		assert.InDelta(t, pair[0], c[0], 1e-12)
		assert.InDelta(t, pair[1], c[1], 1e-12)
	}
}

func TestNew_InvalidCoordinates(t *testing.T) {
	_, err := NewEuclidean2D(math.NaN(), 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = NewEuclidean2D(0, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = NewLatLong(91, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = NewLatLong(0, -180.5)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestEuclidean2D_DistanceTo(t *testing.T) {
	d, err := Euclidean2D{X: 0, Y: 0}.DistanceTo(Euclidean2D{X: 3, Y: 4})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-12)

	_, err = Euclidean2D{}.DistanceTo(LatLong{})
	assert.ErrorIs(t, err, ErrIncompatiblePositions)
}

func TestLatLong_DistanceTo(t *testing.T) {
	// One degree of latitude along a meridian.
	d, err := LatLong{Latitude: 0, Longitude: 0}.DistanceTo(LatLong{Latitude: 1, Longitude: 0})
	require.NoError(t, err)
	assert.InDelta(t, EarthRadius*math.Pi/180, d, 1e-6)

	d, err = LatLong{Latitude: 10, Longitude: 20}.DistanceTo(LatLong{Latitude: 10, Longitude: 20})
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = LatLong{}.DistanceTo(Euclidean2D{})
	assert.ErrorIs(t, err, ErrIncompatiblePositions)
}

func TestEuclidean2D_VectorOps(t *testing.T) {
	p := Euclidean2D{X: 3, Y: 4}
	assert.Equal(t, Euclidean2D{X: 4, Y: 6}, p.Add(Euclidean2D{X: 1, Y: 2}))
	assert.Equal(t, Euclidean2D{X: 2, Y: 2}, p.Sub(Euclidean2D{X: 1, Y: 2}))
	assert.Equal(t, Euclidean2D{X: 6, Y: 8}, p.Scale(2))
	assert.InDelta(t, 5.0, p.Norm(), 1e-12)

	n := p.Normalized()
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.Equal(t, Euclidean2D{}, Euclidean2D{}.Normalized())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "[1, 2]", Euclidean2D{X: 1, Y: 2}.String())
	assert.Equal(t, "[lat=1, lon=2]", LatLong{Latitude: 1, Longitude: 2}.String())
}

func TestSameVariant(t *testing.T) {
	assert.True(t, SameVariant(Euclidean2D{X: 1}, Euclidean2D{Y: 2}))
	assert.True(t, SameVariant(LatLong{}, LatLong{Latitude: 3}))
	assert.False(t, SameVariant(Euclidean2D{}, LatLong{}))
	assert.False(t, SameVariant(LatLong{}, Euclidean2D{}))
}
