package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transformation is an orthonormal basis describing an orientation in world
// space: X points right, Y up and Z along the viewing direction. Read as a
// matrix the three vectors are its columns.
//
// Transformations are values. Every operation returns a new one.
type Transformation struct {
	X, Y, Z Vector3
}

// Identity returns the canonical basis.
func Identity() Transformation {
	return Transformation{X: Right, Y: Up, Z: Forward}
}

// NewTransformation builds a basis from yaw, pitch and roll in radians. Yaw
// turns about the up axis so that a positive yaw moves Z towards X. Pitch and
// roll are negated before use.
func NewTransformation(yaw, pitch, roll float64) Transformation {
	if yaw == 0 && pitch == 0 && roll == 0 {
		return Identity()
	}
	if pitch == 0 && roll == 0 {
		cosYaw, sinYaw := math.Cos(yaw), math.Sin(yaw)
		return Transformation{
			X: Vector3{cosYaw, 0, -sinYaw},
			Y: Up,
			Z: Vector3{sinYaw, 0, cosYaw},
		}
	}
	return Identity().rotate(yaw, -pitch, -roll)
}

// Rotate returns t turned further by the given yaw, pitch and roll. Pitch is
// negated, roll is applied as given.
func (t Transformation) Rotate(yaw, pitch, roll float64) Transformation {
	return t.rotate(yaw, -pitch, roll)
}

// rotate applies yaw about up, then pitch about the new side axis, then roll
// about the new direction axis. Angles are used exactly as passed.
func (t Transformation) rotate(yaw, pitch, roll float64) Transformation {
	s, u, d := t.X, t.Y, t.Z

	cosYaw, sinYaw := math.Cos(yaw), math.Sin(yaw)
	s = s.Rotate(u, cosYaw, sinYaw)
	d = d.Rotate(u, cosYaw, sinYaw)

	cosPitch, sinPitch := math.Cos(pitch), math.Sin(pitch)
	u = u.Rotate(s, cosPitch, sinPitch)
	d = d.Rotate(s, cosPitch, sinPitch)

	cosRoll, sinRoll := math.Cos(roll), math.Sin(roll)
	s = s.Rotate(d, cosRoll, sinRoll)
	u = u.Rotate(d, cosRoll, sinRoll)

	return Transformation{X: s, Y: u, Z: d}
}

// Compose attaches base to the frame described by aux: each axis of base is
// carried through aux as a change of basis. Compose(base, aux).Apply(v) equals
// aux.Apply(base.Apply(v)).
//
// The result is not re-normalised, so long chains of compositions drift by
// floating-point error. Use Orthonormalize where that matters.
func Compose(base, aux Transformation) Transformation {
	return Transformation{
		X: aux.Apply(base.X),
		Y: aux.Apply(base.Y),
		Z: aux.Apply(base.Z),
	}
}

// Apply expresses v, given in t's local frame, in world space.
func (t Transformation) Apply(v Vector3) Vector3 {
	return Vector3{
		X: t.X.X*v.X + t.Y.X*v.Y + t.Z.X*v.Z,
		Y: t.X.Y*v.X + t.Y.Y*v.Y + t.Z.Y*v.Z,
		Z: t.X.Z*v.X + t.Y.Z*v.Y + t.Z.Z*v.Z,
	}
}

// IsOrthonormal reports whether all axes are unit length and pairwise
// orthogonal within tol.
func (t Transformation) IsOrthonormal(tol float64) bool {
	for _, l := range []float64{t.X.Length(), t.Y.Length(), t.Z.Length()} {
		if math.Abs(l-1) > tol {
			return false
		}
	}
	return math.Abs(t.X.Dot(t.Y)) <= tol &&
		math.Abs(t.Y.Dot(t.Z)) <= tol &&
		math.Abs(t.X.Dot(t.Z)) <= tol
}

// Orthonormalize removes accumulated drift with Gram-Schmidt, keeping the
// direction axis fixed.
func (t Transformation) Orthonormalize() Transformation {
	z := t.Z.Normalize()
	x := t.X.Sub(z.Scale(t.X.Dot(z))).Normalize()
	y := z.Cross(x)
	if y.Dot(t.Y) < 0 {
		y = y.Scale(-1)
	}
	return Transformation{X: x, Y: y, Z: z}
}

// Mat4 returns the basis as a column-major matrix translated to position.
func (t Transformation) Mat4(position Vector3) mgl64.Mat4 {
	return mgl64.Mat4{
		t.X.X, t.X.Y, t.X.Z, 0,
		t.Y.X, t.Y.Y, t.Y.Z, 0,
		t.Z.X, t.Z.Y, t.Z.Z, 0,
		position.X, position.Y, position.Z, 1,
	}
}
