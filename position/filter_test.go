package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Algebra(t *testing.T) {
	left := Rectangle{X: 0, Y: 0, Width: 10, Height: 10}
	right := Rectangle{X: 5, Y: 5, Width: 10, Height: 10}

	inBoth := Euclidean2D{X: 7, Y: 7}
	onlyLeft := Euclidean2D{X: 1, Y: 1}
	outside := Euclidean2D{X: 20, Y: 20}

	both := And(left, right)
	assert.True(t, both.Contains(inBoth))
	assert.False(t, both.Contains(onlyLeft))

	either := Or(left, right)
	assert.True(t, either.Contains(onlyLeft))
	assert.False(t, either.Contains(outside))

	assert.True(t, Not(left).Contains(outside))
	assert.False(t, Not(left).Contains(onlyLeft))
}

func TestRectangle_NegativeExtent(t *testing.T) {
	r := Rectangle{X: 10, Y: 10, Width: -5, Height: -5}
	assert.True(t, r.Contains(Euclidean2D{X: 6, Y: 6}))
	assert.True(t, r.Contains(Euclidean2D{X: 10, Y: 5}))
	assert.False(t, r.Contains(Euclidean2D{X: 4, Y: 6}))
}

func TestCircle(t *testing.T) {
	c := Circle{Center: Euclidean2D{}, Radius: 5}
	assert.True(t, c.Contains(Euclidean2D{X: 3, Y: 4}))
	assert.False(t, c.Contains(Euclidean2D{X: 4, Y: 4}))
	assert.False(t, c.Contains(LatLong{}))
}

func TestFilterFunc(t *testing.T) {
	upper := FilterFunc(func(p Position) bool { return p.Coordinates()[1] > 0 })
	assert.True(t, upper.Contains(Euclidean2D{X: 0, Y: 1}))
	assert.False(t, And(upper, Rectangle{Width: 1, Height: -1}).Contains(Euclidean2D{X: 0.5, Y: -0.5}))
}
