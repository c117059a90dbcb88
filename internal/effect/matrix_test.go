package effect

import (
	"math/rand"
	"testing"

	"github.com/san-kum/termsaver/internal/screen"
)

func TestMatrixOneDropPerColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	r := NewMatrix()
	r.Reset(40, 20, rng)

	if len(r.drops) != 40 {
		t.Fatalf("drop slots = %d, want one per column", len(r.drops))
	}
	for i := 0; i < 300; i++ {
		r.Tick(1.0/60, rng)
	}
	if len(r.drops) != 40 {
		t.Fatalf("drop slots changed to %d", len(r.drops))
	}
}

func TestMatrixSpeedStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	r := NewMatrix()
	r.Reset(30, 15, rng)

	for i := 0; i < 1200; i++ {
		r.Tick(1.0/60, rng)
		for x, d := range r.drops {
			if d == nil {
				continue
			}
			if d.speed < matrixMinSpeed || d.speed > matrixMaxSpeed {
				t.Fatalf("column %d speed %f out of [%f,%f]", x, d.speed, matrixMinSpeed, matrixMaxSpeed)
			}
		}
	}
}

func TestMatrixRetiresDropsBelowScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	r := NewMatrix()
	r.Reset(10, 8, rng)

	for i := 0; i < 3000; i++ {
		r.Tick(1.0/60, rng)
		if err := r.Validate(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func TestMatrixHeadIsWhiteBold(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	r := NewMatrix()
	r.Reset(20, 20, rng)

	// Run until at least one drop has its head on screen.
	buf := screen.NewBuffer(20, 20)
	for i := 0; i < 600; i++ {
		r.Tick(1.0/60, rng)
		for x, d := range r.drops {
			if d == nil || int(d.fy) < 0 || int(d.fy) >= 20 {
				continue
			}
			buf.Clear()
			r.Render(buf)
			cell := buf.Get(x, int(d.fy))
			if cell.Fg != screen.White || !cell.Bold {
				t.Fatalf("head cell = %+v, want bold white", cell)
			}
			return
		}
	}
	t.Fatal("no drop head ever appeared on screen")
}
