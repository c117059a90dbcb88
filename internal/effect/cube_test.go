package effect

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/termsaver/internal/screen"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{3 * math.Pi, math.Pi},
		{-math.Pi / 2, 3 * math.Pi / 2},
	}

	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestCubeAnglesStayWrapped(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := NewCube()
	c.Reset(80, 24, rng)

	for i := 0; i < 2000; i++ {
		c.Tick(0.05, rng)
		if err := c.Validate(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func TestCubeRendersBrailleOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	c := NewCube()
	c.Reset(40, 20, rng)
	c.Tick(0.3, rng)

	buf := screen.NewBuffer(40, 20)
	c.Render(buf)
	changes := buf.SwapDiff()

	drawn := 0
	for _, ch := range changes {
		if ch.Cell.Ch == ' ' {
			continue
		}
		drawn++
		if ch.Cell.Ch < 0x2800 || ch.Cell.Ch > 0x28FF {
			t.Fatalf("non-braille rune %#x at (%d,%d)", ch.Cell.Ch, ch.X, ch.Y)
		}
	}
	if drawn == 0 {
		t.Fatal("cube rendered nothing")
	}
}

func TestFullRevolutionReturnsVertices(t *testing.T) {
	for _, v := range cubeVertices {
		r := v
		steps := 64
		for i := 0; i < steps; i++ {
			r = r.RotateY(2 * math.Pi / float64(steps))
		}
		if math.Abs(r.X-v.X) > 1e-9 || math.Abs(r.Y-v.Y) > 1e-9 || math.Abs(r.Z-v.Z) > 1e-9 {
			t.Errorf("vertex %+v came back as %+v after a full revolution", v, r)
		}
	}
}

func TestRotationPreservesLength(t *testing.T) {
	v := vec3{1, 2, 3}
	want := math.Sqrt(1 + 4 + 9)
	for _, r := range []vec3{v.RotateX(0.7), v.RotateY(1.3), v.RotateZ(2.1)} {
		got := math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("rotation changed length: %f != %f", got, want)
		}
	}
}
