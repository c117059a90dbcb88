package screen

// Color is a 24-bit RGB terminal color.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Green = Color{0, 255, 0}
)

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Scale darkens the color by a factor in [0,1].
func (c Color) Scale(f float64) Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// Cell is a single terminal cell: a rune with foreground color and bold flag.
type Cell struct {
	Ch   rune
	Fg   Color
	Bold bool
}

// Blank is the cell an empty buffer is filled with.
var Blank = Cell{Ch: ' '}
