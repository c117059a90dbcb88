package effect

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/screen"
)

var donutLum = []rune(".,-~:;=!*#$@")

const (
	donutR1    = 1.0
	donutR2    = 2.0
	donutK2    = 5.0
	donutRateA = 1.1
	donutRateB = 0.55
)

// Donut renders the spinning torus, shading each cell by surface
// luminance with a per-frame z-buffer.
type Donut struct {
	width, height int
	a, b          float64
	zbuf          []float64
}

func NewDonut() *Donut {
	return &Donut{}
}

func (d *Donut) Reset(width, height int, rng *rand.Rand) {
	d.width = width
	d.height = height
	d.a = 0
	d.b = 0
	d.zbuf = make([]float64, width*height)
}

func (d *Donut) Tick(dt float64, rng *rand.Rand) {
	d.a = wrapAngle(d.a + donutRateA*dt)
	d.b = wrapAngle(d.b + donutRateB*dt)
}

func (d *Donut) Render(buf *screen.Buffer) {
	for i := range d.zbuf {
		d.zbuf[i] = 0
	}

	k1 := float64(d.width) * donutK2 * 3 / (8 * (donutR1 + donutR2))
	cosA, sinA := math.Cos(d.a), math.Sin(d.a)
	cosB, sinB := math.Cos(d.b), math.Sin(d.b)

	for theta := 0.0; theta < 2*math.Pi; theta += 0.07 {
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		circleX := donutR2 + donutR1*cosT
		circleY := donutR1 * sinT

		for phi := 0.0; phi < 2*math.Pi; phi += 0.02 {
			cosP, sinP := math.Cos(phi), math.Sin(phi)

			x := circleX*(cosB*cosP+sinA*sinB*sinP) - circleY*cosA*sinB
			y := circleX*(sinB*cosP-sinA*cosB*sinP) + circleY*cosA*cosB
			z := donutK2 + cosA*circleX*sinP + circleY*sinA
			ooz := 1 / z

			px := d.width/2 + int(k1*ooz*x)
			py := d.height/2 - int(k1*ooz*y/2)
			if px < 0 || py < 0 || px >= d.width || py >= d.height {
				continue
			}

			lum := cosP*cosT*sinB - cosA*cosT*sinP - sinA*sinT +
				cosB*(cosA*sinT-cosT*sinA*sinP)

			i := py*d.width + px
			if ooz <= d.zbuf[i] {
				continue
			}
			d.zbuf[i] = ooz

			idx := int(lum * 8)
			if idx < 0 {
				idx = 0
			}
			if idx >= len(donutLum) {
				idx = len(donutLum) - 1
			}
			shade := uint8(120 + idx*10)
			buf.Set(px, py, screen.Cell{
				Ch: donutLum[idx],
				Fg: screen.RGB(shade, shade/2, 30),
			})
		}
	}
}

// Validate checks the rotation angles stay wrapped.
func (d *Donut) Validate() error {
	for i, a := range []float64{d.a, d.b} {
		if math.IsNaN(a) || a < 0 || a >= 2*math.Pi {
			return &invariantError{effect: "donut", detail: "angle out of range", index: i}
		}
	}
	return nil
}
