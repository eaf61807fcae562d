// Package strategy implements target selection strategies.
//
// FollowTarget is a single strategy parameterized over a PositionFactory:
// the molecule lookup and parsing are shared, and a new coordinate space
// only needs a factory. NewFollowTargetOnPlane and NewFollowTargetOnMap are
// the two configurations shipped here.
//
// Usage:
//
//	s, err := strategy.NewFollowTargetOnMap(env, n, "target")
//	n.SetConcentration("target", "44.139, 12.243")
//	p, err := s.TargetPosition() // position.LatLong{44.139, 12.243}
package strategy
