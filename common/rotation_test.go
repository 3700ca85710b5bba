package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLookRotationPointsZAtEye(t *testing.T) {
	tests := []struct {
		name        string
		eye, target mgl32.Vec3
	}{
		{"along +Z", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0}},
		{"oblique", mgl32.Vec3{3, -4, 12}, mgl32.Vec3{1, 1, 1}},
		{"straight up", mgl32.Vec3{0, 50, 0}, mgl32.Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LookRotation(tt.eye, tt.target, mgl32.Vec3{0, 1, 0})
			got := q.Rotate(mgl32.Vec3{0, 0, 1})
			want := tt.eye.Sub(tt.target).Normalize()
			if got.Sub(want).Len() > 1e-3 {
				t.Fatalf("+Z axis = %v, want %v", got, want)
			}
		})
	}
}

func TestLookRotationCoincidentPoints(t *testing.T) {
	q := LookRotation(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{2, 2, 2}, mgl32.Vec3{0, 1, 0})
	got := q.Rotate(mgl32.Vec3{0, 0, 1})
	if got.Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-3 {
		t.Fatalf("coincident points should keep +Z, got %v", got)
	}
}
