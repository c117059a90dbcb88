package effect

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/san-kum/termsaver/internal/screen"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"matrix", KindMatrix, false},
		{"life", KindLife, false},
		{"maze", KindMaze, false},
		{"boids", KindBoids, false},
		{"cube", KindCube, false},
		{"crab", KindCrab, false},
		{"donut", KindDonut, false},
		{"plasma", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEffect) {
					t.Fatalf("ParseKind(%q) err = %v, want ErrUnknownEffect", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) err = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewConstructsEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		rng := rand.New(rand.NewSource(1))
		e, err := New(k, 80, 24, rng)
		if err != nil {
			t.Fatalf("New(%v) err = %v", k, err)
		}
		if e == nil {
			t.Fatalf("New(%v) returned nil effect", k)
		}
		if _, ok := e.(Validator); !ok {
			t.Errorf("%v does not implement Validator", k)
		}
	}
}

func TestNamesMatchKinds(t *testing.T) {
	names := Names()
	if len(names) != len(Kinds()) {
		t.Fatalf("Names() has %d entries, Kinds() has %d", len(names), len(Kinds()))
	}
	for _, name := range names {
		if _, err := ParseKind(name); err != nil {
			t.Errorf("listed name %q does not parse", name)
		}
	}
}

// Two effects built from the same seed must produce identical frames.
func TestSameSeedReplaysSameFrames(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			run := func(seed int64) [][]screen.Change {
				rng := rand.New(rand.NewSource(seed))
				e, err := New(k, 60, 20, rng)
				if err != nil {
					t.Fatal(err)
				}
				buf := screen.NewBuffer(60, 20)
				var frames [][]screen.Change
				for i := 0; i < 30; i++ {
					e.Tick(1.0/60, rng)
					buf.Clear()
					e.Render(buf)
					frames = append(frames, buf.SwapDiff())
				}
				return frames
			}

			a := run(99)
			b := run(99)
			if !reflect.DeepEqual(a, b) {
				t.Error("same seed produced different frames")
			}
		})
	}
}

func TestValidateAfterLongRun(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			e, err := New(k, 80, 24, rng)
			if err != nil {
				t.Fatal(err)
			}
			buf := screen.NewBuffer(80, 24)
			for i := 0; i < 600; i++ {
				e.Tick(1.0/60, rng)
				buf.Clear()
				e.Render(buf)
				buf.SwapDiff()
				if err := e.(Validator).Validate(); err != nil {
					t.Fatalf("tick %d: %v", i, err)
				}
			}
		})
	}
}
