package quarkgl

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == Mat4Identity() {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func TestEulerSingleAxisMatchesRotate(t *testing.T) {
	if Mat4Euler(V3(0.7, 0, 0)) != Mat4RotateX(0.7) {
		t.Fatalf("euler x mismatch")
	}
	p := Mat4MulPoint(Mat4Euler(V3(0, 0, math32.Pi/2)), V3(1, 0, 0))
	if math32.Abs(p.X) > 1e-6 || math32.Abs(p.Y-1) > 1e-6 {
		t.Fatalf("z quarter turn: got %+v", p)
	}
}

func TestComposeOrder(t *testing.T) {
	// Scale, then rotate, then translate.
	m := Mat4Compose(V3(10, 0, 0), V3(0, 0, math32.Pi/2), V3(2, 2, 2))
	p := Mat4MulPoint(m, V3(1, 0, 0))
	if math32.Abs(p.X-10) > 1e-5 || math32.Abs(p.Y-2) > 1e-5 {
		t.Fatalf("compose: got %+v", p)
	}
}
