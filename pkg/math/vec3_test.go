package math

import (
	"math"
	"testing"
)

func TestVector3Cross(t *testing.T) {
	got := Right.Cross(Up)
	if got != Forward {
		t.Errorf("Vector3.Cross() = %v, want %v", got, Forward)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := Vector3{3, 4, 12}
	if l := v.Normalize().Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Vector3.Normalize().Length() = %v, want 1", l)
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Zero.Normalize() = %v, want zero", got)
	}
}

func TestVector3Rotate(t *testing.T) {
	tests := []struct {
		name  string
		v     Vector3
		axis  Vector3
		angle float64
		want  Vector3
	}{
		{"quarter turn about up", Forward, Up, math.Pi / 2, Right},
		{"unnormalised axis", Forward, Vector3{0, 5, 0}, math.Pi / 2, Right},
		{"half turn about forward", Right, Forward, math.Pi, Left},
		{"vector on axis", Up, Up, 1.3, Up},
		{"zero axis is identity", Vector3{1, 2, 3}, Zero, 0.7, Vector3{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Rotate(tt.axis, math.Cos(tt.angle), math.Sin(tt.angle))
			if !got.Equal(tt.want, 1e-12) {
				t.Errorf("Rotate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVector3RotatePreservesLength(t *testing.T) {
	v := Vector3{1.5, -2, 0.25}
	axis := Vector3{0.3, 0.9, -0.2}
	got := v.Rotate(axis, math.Cos(2.1), math.Sin(2.1))
	if math.Abs(got.Length()-v.Length()) > 1e-12 {
		t.Errorf("length changed: %v -> %v", v.Length(), got.Length())
	}
}

func TestVector3RotatePlane(t *testing.T) {
	got := Right.RotatePlane(0, 1)
	if !got.Equal(Forward, 1e-12) {
		t.Errorf("RotatePlane() = %v, want %v", got, Forward)
	}
}
