package rng

// Vec2 is a 2D point/vector in the layout's global coordinate space.
type Vec2 struct {
	X, Y float64
}

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns a scaled by s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Length returns a's Euclidean length, using the game-accurate Sqrt rather
// than math.Sqrt.
func (a Vec2) Length() float64 {
	return Sqrt(a.X*a.X + a.Y*a.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Length()
}
