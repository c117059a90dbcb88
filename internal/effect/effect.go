// Package effect implements the terminal screensaver animations. Each
// effect advances on a fixed tick and draws into a cell buffer; the
// caller owns pacing, input, and presentation.
package effect

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/screen"
)

// Effect is one animation. Tick advances simulation state by dt
// seconds, Render draws the current state into buf, and Reset
// reinitializes for a new size. All randomness flows through the given
// rng so a fixed seed replays the same animation.
type Effect interface {
	Tick(dt float64, rng *rand.Rand)
	Render(buf *screen.Buffer)
	Reset(width, height int, rng *rand.Rand)
}

// Validator is implemented by effects that can check their own
// internal invariants, for headless verification.
type Validator interface {
	Validate() error
}

// Kind enumerates the built-in effects.
type Kind int

const (
	KindMatrix Kind = iota
	KindLife
	KindMaze
	KindBoids
	KindCube
	KindCrab
	KindDonut
)

var kindNames = map[Kind]string{
	KindMatrix: "matrix",
	KindLife:   "life",
	KindMaze:   "maze",
	KindBoids:  "boids",
	KindCube:   "cube",
	KindCrab:   "crab",
	KindDonut:  "donut",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Kinds returns every effect kind in display order.
func Kinds() []Kind {
	return []Kind{KindMatrix, KindLife, KindMaze, KindBoids, KindCube, KindCrab, KindDonut}
}

// Names returns every effect name in display order.
func Names() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// Descriptions maps each effect name to a short summary for listings.
var Descriptions = map[Kind]string{
	KindMatrix: "digital rain of falling glyph trails",
	KindLife:   "Conway's Game of Life on a wrapping grid",
	KindMaze:   "maze carving and shortest-path solving",
	KindBoids:  "flocking arrows with emergent swarms",
	KindCube:   "rotating wireframe cube drawn in braille",
	KindCrab:   "crabs scuttling and clapping along the floor",
	KindDonut:  "spinning shaded torus",
}

// ParseKind resolves an effect name. Unknown names return an error
// wrapping ErrUnknownEffect.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, &UnknownEffectError{Name: name}
}

// New constructs the effect for kind, initialized for a width x height
// cell buffer.
func New(kind Kind, width, height int, rng *rand.Rand) (Effect, error) {
	var e Effect
	switch kind {
	case KindMatrix:
		e = NewMatrix()
	case KindLife:
		e = NewLife()
	case KindMaze:
		e = NewMaze()
	case KindBoids:
		e = NewBoids()
	case KindCube:
		e = NewCube()
	case KindCrab:
		e = NewCrab()
	case KindDonut:
		e = NewDonut()
	default:
		return nil, &UnknownEffectError{Name: kind.String()}
	}
	e.Reset(width, height, rng)
	return e, nil
}
