package math

import (
	"testing"
)

func TestVec3Sub(t *testing.T) {
	a := Vec3{4, 6, 8}
	b := Vec3{1, 2, 3}
	got := a.Sub(b)
	want := Vec3{3, 4, 5}
	if got != want {
		t.Errorf("Vec3.Sub() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{0, 3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Vec3.Normalize() = %v, want zero", got)
	}
}

func TestVec3IsZero(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Error("expected zero vector to report IsZero")
	}
	if (Vec3{0, 0, 1}).IsZero() {
		t.Error("expected non-zero vector to not report IsZero")
	}
}
