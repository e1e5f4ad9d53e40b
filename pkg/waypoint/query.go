package waypoint

import (
	"github.com/dshills/caveripper/pkg/layout"
	"github.com/dshills/caveripper/pkg/rng"
)

// CarryDist returns obj's carry distance, as already computed by Build.
func CarryDist(obj *layout.SpawnObject) float64 {
	return obj.CarryDist
}

// StraightDist returns the Euclidean distance between two placed spawn
// points' global coordinates.
func StraightDist(a, b *layout.PlacedSpawnPoint) float64 {
	return rng.Distance(rng.Vec2{X: a.X, Y: a.Y}, rng.Vec2{X: b.X, Y: b.Y})
}

// Gated reports whether obj is gated, as already computed by Build.
func Gated(obj *layout.SpawnObject) bool {
	return obj.Gated
}
