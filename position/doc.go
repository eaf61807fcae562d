// Package position defines the coordinate values nodes live at.
//
// Position is a closed set of variants:
//
//   - Euclidean2D: planar (x, y) coordinates
//   - LatLong: geographic (latitude, longitude) coordinates in degrees
//
// Callers work with the Position interface and create values through the
// constructors, never by switching on the concrete type. The interface is
// sealed so no other package can add variants behind the engine's back.
//
// The package also provides Filter, a small predicate algebra over positions
// used when deciding where nodes may be placed.
package position
