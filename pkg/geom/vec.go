package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Precision is the number of decimal places every constructed coordinate
// is rounded to.
const Precision = 2

// Vec is a 2-D point or vector in document length units (mm by default).
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is a Vec used as a position.
type Point = Vec

// Round rounds x to Precision decimal places.
func Round(x float64) float64 {
	return scalar.Round(x, Precision)
}

// Round returns v with both axes rounded to Precision decimal places.
func (v Vec) Round() Vec {
	return Vec{X: Round(v.X), Y: Round(v.Y)}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Length returns the magnitude of v.
func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the signed angle of v in radians. The zero vector has angle 0.
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Polar returns the length and angle of v.
func (v Vec) Polar() (r, phi float64) {
	return v.Length(), v.Angle()
}

// Equal reports whether v and o are the same point at Precision.
func (v Vec) Equal(o Vec) bool {
	return Round(v.X) == Round(o.X) && Round(v.Y) == Round(o.Y)
}

// IsZero reports whether v is the origin.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// FromPolar returns the vector with length r and angle phi, rounded.
func FromPolar(r, phi float64) Vec {
	return rect(r, phi).Round()
}

// rect is the unrounded polar-to-cartesian conversion.
func rect(r, phi float64) Vec {
	s, c := math.Sincos(phi)
	return Vec{X: r * c, Y: r * s}
}
