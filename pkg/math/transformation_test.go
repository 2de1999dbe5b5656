package math

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got Vector3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tol, msgAndArgs...)
}

func assertOrthonormal(t *testing.T, tr Transformation, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, 1.0, tr.X.Length(), tol, msgAndArgs...)
	assert.InDelta(t, 1.0, tr.Y.Length(), tol, msgAndArgs...)
	assert.InDelta(t, 1.0, tr.Z.Length(), tol, msgAndArgs...)
	assert.InDelta(t, 0.0, tr.X.Dot(tr.Y), tol, msgAndArgs...)
	assert.InDelta(t, 0.0, tr.Y.Dot(tr.Z), tol, msgAndArgs...)
	assert.InDelta(t, 0.0, tr.X.Dot(tr.Z), tol, msgAndArgs...)
}

var sampleAngles = []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2, -math.Pi, 0.3, -1.2, 2.7, 7.5}

func TestNewTransformationOrthonormal(t *testing.T) {
	for _, yaw := range sampleAngles {
		for _, pitch := range sampleAngles {
			for _, roll := range sampleAngles {
				tr := NewTransformation(yaw, pitch, roll)
				assertOrthonormal(t, tr, "yaw=%v pitch=%v roll=%v", yaw, pitch, roll)
				assert.True(t, tr.IsOrthonormal(tol))
			}
		}
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		yaw := (rng.Float64() - 0.5) * 4 * math.Pi
		pitch := (rng.Float64() - 0.5) * 4 * math.Pi
		roll := (rng.Float64() - 0.5) * 4 * math.Pi
		assertOrthonormal(t, NewTransformation(yaw, pitch, roll), "random %d", i)
	}
}

func TestNewTransformationIdentity(t *testing.T) {
	tr := NewTransformation(0, 0, 0)
	assert.Equal(t, Transformation{
		X: Vector3{1, 0, 0},
		Y: Vector3{0, 1, 0},
		Z: Vector3{0, 0, 1},
	}, tr)
	assert.Equal(t, Identity(), tr)
}

func TestYawFastPathMatchesGeneralPath(t *testing.T) {
	for _, yaw := range []float64{0.1, 0.5, math.Pi / 3, math.Pi, -2.2, 5} {
		fast := NewTransformation(yaw, 0, 0)
		general := Identity().rotate(yaw, 0, 0)
		assertVec(t, general.X, fast.X, "yaw=%v", yaw)
		assertVec(t, general.Y, fast.Y, "yaw=%v", yaw)
		assertVec(t, general.Z, fast.Z, "yaw=%v", yaw)
	}
}

func TestYaw90(t *testing.T) {
	tr := NewTransformation(math.Pi/2, 0, 0)
	assertVec(t, Vector3{1, 0, 0}, tr.Apply(Forward))
	assertVec(t, Vector3{0, 0, -1}, tr.Apply(Right))
	assertVec(t, Up, tr.Apply(Up))
}

func TestPitchAndRollConvention(t *testing.T) {
	// Positive pitch raises the direction axis.
	pitched := NewTransformation(0, math.Pi/2, 0)
	assertVec(t, Up, pitched.Z)
	assertVec(t, Backward, pitched.Y)

	// Positive roll tips the up axis towards the side axis.
	rolled := NewTransformation(0, 0, math.Pi/2)
	assertVec(t, Vector3{1, 0, 0}, rolled.Y)
	assertVec(t, Forward, rolled.Z)
}

func TestRotateFromIdentity(t *testing.T) {
	for _, yaw := range sampleAngles {
		for _, pitch := range sampleAngles {
			want := NewTransformation(yaw, pitch, 0)
			got := Identity().Rotate(yaw, pitch, 0)
			assertVec(t, want.X, got.X)
			assertVec(t, want.Y, got.Y)
			assertVec(t, want.Z, got.Z)
		}
	}

	// Roll is not negated when rotating an existing frame.
	got := Identity().Rotate(0, 0, 0.4)
	want := NewTransformation(0, 0, -0.4)
	assertVec(t, want.X, got.X)
	assertVec(t, want.Y, got.Y)
}

func TestRotateStaysOrthonormal(t *testing.T) {
	base := NewTransformation(0.7, -0.3, 1.1)
	for _, a := range sampleAngles {
		assertOrthonormal(t, base.Rotate(a, -a/2, a/3))
	}
}

func TestCompose(t *testing.T) {
	vectors := []Vector3{Right, Up, Forward, {1, 2, 3}, {-4.5, 0.25, 9}}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		base := NewTransformation(rng.Float64()*6, rng.Float64()*6, rng.Float64()*6)
		aux := NewTransformation(rng.Float64()*6, rng.Float64()*6, rng.Float64()*6)
		composed := Compose(base, aux)
		assertOrthonormal(t, composed)
		for _, v := range vectors {
			assertVec(t, aux.Apply(base.Apply(v)), composed.Apply(v))
		}
	}
}

func TestComposeWithIdentity(t *testing.T) {
	tr := NewTransformation(0.2, 0.4, 0.6)
	assert.Equal(t, tr, Compose(tr, Identity()))

	c := Compose(Identity(), tr)
	assertVec(t, tr.X, c.X)
	assertVec(t, tr.Y, c.Y)
	assertVec(t, tr.Z, c.Z)
}

func TestComposeDriftAndOrthonormalize(t *testing.T) {
	step := NewTransformation(0.001, 0.002, 0.003)
	tr := Identity()
	for i := 0; i < 100000; i++ {
		tr = Compose(tr, step)
	}
	// Drift stays small but is not corrected automatically.
	assert.True(t, tr.IsOrthonormal(1e-6))

	fixed := tr.Orthonormalize()
	assertOrthonormal(t, fixed)
	assert.InDelta(t, 1.0, fixed.Z.Dot(tr.Z.Normalize()), tol)
}

func TestMat4(t *testing.T) {
	tr := NewTransformation(math.Pi/2, 0, 0)
	m := tr.Mat4(Vector3{10, 20, 30})
	p := m.Mul4x1([4]float64{0, 0, 1, 1})
	require.InDelta(t, 11.0, p[0], tol)
	require.InDelta(t, 20.0, p[1], tol)
	require.InDelta(t, 30.0, p[2], tol)
}
