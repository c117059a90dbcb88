package effect

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/termsaver/internal/screen"
)

var matrixGlyphs = []rune("ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789:・.\"=*+-<>")

var (
	matrixBright = colorful.Color{R: 0.25, G: 1.0, B: 0.35}
	matrixDark   = colorful.Color{R: 0.0, G: 0.22, B: 0.05}
)

// matrixShade blends from bright to dark green as t goes 0..1.
func matrixShade(t float64) screen.Color {
	r, g, b := matrixBright.BlendRgb(matrixDark, t).RGB255()
	return screen.RGB(r, g, b)
}

const (
	matrixMinSpeed = 2.0
	matrixMaxSpeed = 20.0
)

// drop is one falling glyph trail. body[0] is the head glyph; fy is
// the head's fractional row.
type drop struct {
	fy     float64
	speed  float64
	body   []rune
	maxLen int
}

// Matrix is the digital rain effect. At most one drop is active per
// column; a column whose drop falls off-screen idles for a random
// delay before spawning a new one.
type Matrix struct {
	width, height int
	drops         []*drop
	respawn       []float64
}

func NewMatrix() *Matrix {
	return &Matrix{}
}

func (r *Matrix) Reset(width, height int, rng *rand.Rand) {
	r.width = width
	r.height = height
	r.drops = make([]*drop, width)
	r.respawn = make([]float64, width)
	for x := range r.respawn {
		r.respawn[x] = rng.Float64() * 3
	}
}

func (r *Matrix) newDrop(rng *rand.Rand) *drop {
	maxLen := 4 + rng.Intn(r.height/2+4)
	return &drop{
		fy:     0,
		speed:  matrixMinSpeed + rng.Float64()*(matrixMaxSpeed-matrixMinSpeed),
		body:   []rune{matrixGlyphs[rng.Intn(len(matrixGlyphs))]},
		maxLen: maxLen,
	}
}

func (r *Matrix) Tick(dt float64, rng *rand.Rand) {
	for x := 0; x < r.width; x++ {
		d := r.drops[x]
		if d == nil {
			r.respawn[x] -= dt
			if r.respawn[x] <= 0 {
				r.drops[x] = r.newDrop(rng)
			}
			continue
		}

		prevRow := int(d.fy)
		d.fy += d.speed * dt
		for row := prevRow; row < int(d.fy); row++ {
			d.body = append([]rune{matrixGlyphs[rng.Intn(len(matrixGlyphs))]}, d.body...)
			if len(d.body) > d.maxLen {
				d.body = d.body[:d.maxLen]
			}
		}

		// Retire the drop once its tail clears the bottom edge.
		if int(d.fy)-len(d.body) >= r.height {
			r.drops[x] = nil
			r.respawn[x] = rng.Float64() * 4
		}
	}
}

func (r *Matrix) Render(buf *screen.Buffer) {
	for x, d := range r.drops {
		if d == nil {
			continue
		}
		head := int(d.fy)
		for i, ch := range d.body {
			y := head - i
			if i == 0 {
				buf.Set(x, y, screen.Cell{Ch: ch, Fg: screen.White, Bold: true})
				continue
			}
			t := float64(i) / float64(len(d.body))
			buf.Set(x, y, screen.Cell{Ch: ch, Fg: matrixShade(t)})
		}
	}
}

// Validate checks that every active drop stays within sane bounds.
func (r *Matrix) Validate() error {
	for x, d := range r.drops {
		if d == nil {
			continue
		}
		if d.speed < matrixMinSpeed || d.speed > matrixMaxSpeed {
			return &invariantError{effect: "matrix", detail: "drop speed out of range", index: x}
		}
		if len(d.body) > d.maxLen {
			return &invariantError{effect: "matrix", detail: "drop body exceeds max length", index: x}
		}
		if int(d.fy)-len(d.body) >= r.height {
			return &invariantError{effect: "matrix", detail: "retired drop still active", index: x}
		}
	}
	return nil
}
