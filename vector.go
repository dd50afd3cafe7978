package atlas

import "fmt"

// Vector is a point or a pair of factors in screen space.
type Vector struct {
	X float64
	Y float64
}

// Vec is shorthand for Vector{x, y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v+o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

// Sub returns v-o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

// Mul returns v scaled component-wise by o.
func (v Vector) Mul(o Vector) Vector {
	return Vector{v.X * o.X, v.Y * o.Y}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}
