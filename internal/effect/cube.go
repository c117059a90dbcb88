package effect

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/termsaver/internal/screen"
)

type vec3 struct {
	X, Y, Z float64
}

func (v vec3) RotateX(a float64) vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

func (v vec3) RotateY(a float64) vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func (v vec3) RotateZ(a float64) vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

var cubeVertices = [8]vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

const (
	cubeRateX    = 0.9
	cubeRateY    = 1.3
	cubeRateZ    = 0.5
	cubeDistance = 3.5
)

// Cube renders a rotating wireframe cube on a braille canvas, giving
// 2x horizontal and 4x vertical resolution over the cell grid.
type Cube struct {
	width, height          int
	angleX, angleY, angleZ float64
	canvas                 *screen.Canvas
}

func NewCube() *Cube {
	return &Cube{}
}

func (c *Cube) Reset(width, height int, rng *rand.Rand) {
	c.width = width
	c.height = height
	c.angleX = 0
	c.angleY = 0
	c.angleZ = 0
	c.canvas = screen.NewCanvas(width, height)
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func (c *Cube) Tick(dt float64, rng *rand.Rand) {
	c.angleX = wrapAngle(c.angleX + cubeRateX*dt)
	c.angleY = wrapAngle(c.angleY + cubeRateY*dt)
	c.angleZ = wrapAngle(c.angleZ + cubeRateZ*dt)
}

// project maps a model-space point to braille dot coordinates with a
// simple perspective divide.
func (c *Cube) project(v vec3) (int, int) {
	dotW := float64(c.width * 2)
	dotH := float64(c.height * 4)
	scale := math.Min(dotW, dotH) * 0.35
	f := cubeDistance / (cubeDistance + v.Z)
	x := dotW/2 + v.X*f*scale
	y := dotH/2 + v.Y*f*scale
	return int(x), int(y)
}

func (c *Cube) Render(buf *screen.Buffer) {
	c.canvas.Clear()

	var proj [8][2]int
	for i, v := range cubeVertices {
		r := v.RotateX(c.angleX).RotateY(c.angleY).RotateZ(c.angleZ)
		proj[i][0], proj[i][1] = c.project(r)
	}
	for _, e := range cubeEdges {
		a, b := proj[e[0]], proj[e[1]]
		c.canvas.DrawLine(a[0], a[1], b[0], b[1])
	}

	hue := c.angleY / (2 * math.Pi) * 360
	r, g, b := colorful.Hsv(hue, 0.6, 1.0).RGB255()
	c.canvas.Blit(buf, 0, 0, screen.RGB(r, g, b))
}

// Validate checks that all rotation angles stay wrapped to [0, 2pi).
func (c *Cube) Validate() error {
	for i, a := range []float64{c.angleX, c.angleY, c.angleZ} {
		if math.IsNaN(a) || a < 0 || a >= 2*math.Pi {
			return &invariantError{effect: "cube", detail: "angle out of range", index: i}
		}
	}
	return nil
}
