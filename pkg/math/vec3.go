// Package math provides the vector and orientation types used to place objects
// and cameras in world space.
package math

import "math"

// Vector3 is a 3D vector in world space.
type Vector3 struct {
	X, Y, Z float64
}

// Common directions.
var (
	Zero     = Vector3{0, 0, 0}
	Right    = Vector3{1, 0, 0}
	Left     = Vector3{-1, 0, 0}
	Up       = Vector3{0, 1, 0}
	Down     = Vector3{0, -1, 0}
	Forward  = Vector3{0, 0, 1}
	Backward = Vector3{0, 0, -1}
)

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the squared length.
func (v Vector3) Norm() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Norm())
}

// Normalize returns a unit vector. The zero vector is returned unchanged.
func (v Vector3) Normalize() Vector3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	t := 1 / math.Sqrt(n)
	return Vector3{v.X * t, v.Y * t, v.Z * t}
}

// Equal reports whether every component of v is within tol of other.
func (v Vector3) Equal(other Vector3, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol &&
		math.Abs(v.Y-other.Y) <= tol &&
		math.Abs(v.Z-other.Z) <= tol
}

// Rotate rotates v about axis by the angle whose cosine and sine are given,
// using the Rodrigues rotation formula. The axis need not be unit length; a
// zero-length axis leaves v unchanged.
func (v Vector3) Rotate(axis Vector3, cosa, sina float64) Vector3 {
	n := axis.Norm()
	if n == 0 {
		return v
	}
	t := 1 / math.Sqrt(n)
	dx, dy, dz := axis.X*t, axis.Y*t, axis.Z*t

	oc := 1 - cosa
	xy := oc * dx * dy
	yz := oc * dy * dz
	xz := oc * dx * dz
	sx := sina * dx
	sy := sina * dy
	sz := sina * dz

	return Vector3{
		X: (cosa+oc*dx*dx)*v.X + (xy-sz)*v.Y + (xz+sy)*v.Z,
		Y: (cosa+oc*dy*dy)*v.Y + (xy+sz)*v.X + (yz-sx)*v.Z,
		Z: (cosa+oc*dz*dz)*v.Z + (xz-sy)*v.X + (yz+sx)*v.Y,
	}
}

// RotatePlane rotates v within the XZ plane.
func (v Vector3) RotatePlane(cosa, sina float64) Vector3 {
	return Vector3{
		X: v.X*cosa - v.Z*sina,
		Y: v.Y,
		Z: v.X*sina + v.Z*cosa,
	}
}
