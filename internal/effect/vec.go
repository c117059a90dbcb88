package effect

import "math"

// vec2 is a 2D vector in cell coordinates, y pointing down.
type vec2 struct {
	X, Y float64
}

func (v vec2) Add(u vec2) vec2      { return vec2{v.X + u.X, v.Y + u.Y} }
func (v vec2) Sub(u vec2) vec2      { return vec2{v.X - u.X, v.Y - u.Y} }
func (v vec2) Scale(s float64) vec2 { return vec2{v.X * s, v.Y * s} }
func (v vec2) Len() float64         { return math.Hypot(v.X, v.Y) }

func (v vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
