package effect

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/screen"
)

const (
	lifeStepInterval = 0.08
	lifeSoupDensity  = 0.22
	lifeSeedInterval = 6.0
)

var gliderPattern = [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

// Life runs Conway's Game of Life on a wrapping grid. Both planes are
// kept allocated and swapped each generation. A glider is dropped in
// periodically so the board never settles.
type Life struct {
	width, height int
	cells         []bool
	next          []bool
	age           []uint8
	stepAcc       float64
	seedAcc       float64
}

func NewLife() *Life {
	return &Life{}
}

func (l *Life) Reset(width, height int, rng *rand.Rand) {
	l.width = width
	l.height = height
	l.cells = make([]bool, width*height)
	l.next = make([]bool, width*height)
	l.age = make([]uint8, width*height)
	l.stepAcc = 0
	l.seedAcc = 0
	for i := range l.cells {
		if rng.Float64() < lifeSoupDensity {
			l.cells[i] = true
			l.age[i] = 1
		}
	}
}

// SetCell places or clears a cell directly, wrapping coordinates.
func (l *Life) SetCell(x, y int, alive bool) {
	i := l.index(x, y)
	l.cells[i] = alive
	if alive {
		l.age[i] = 1
	} else {
		l.age[i] = 0
	}
}

// Alive reports the cell state with wrapping coordinates.
func (l *Life) Alive(x, y int) bool {
	return l.cells[l.index(x, y)]
}

func (l *Life) index(x, y int) int {
	x = ((x % l.width) + l.width) % l.width
	y = ((y % l.height) + l.height) % l.height
	return y*l.width + x
}

func (l *Life) neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if l.cells[l.index(x+dx, y+dy)] {
				n++
			}
		}
	}
	return n
}

// Step advances one generation.
func (l *Life) Step() {
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			i := y*l.width + x
			n := l.neighbors(x, y)
			switch {
			case l.cells[i] && (n == 2 || n == 3):
				l.next[i] = true
			case !l.cells[i] && n == 3:
				l.next[i] = true
			default:
				l.next[i] = false
			}
		}
	}
	l.cells, l.next = l.next, l.cells
	for i := range l.cells {
		if l.cells[i] {
			if l.age[i] < 255 {
				l.age[i]++
			}
		} else {
			l.age[i] = 0
		}
	}
}

func (l *Life) insertGlider(rng *rand.Rand) {
	ox := rng.Intn(l.width)
	oy := rng.Intn(l.height)
	for _, p := range gliderPattern {
		l.SetCell(ox+p[0], oy+p[1], true)
	}
}

func (l *Life) Tick(dt float64, rng *rand.Rand) {
	l.stepAcc += dt
	for l.stepAcc >= lifeStepInterval {
		l.stepAcc -= lifeStepInterval
		l.Step()
	}
	l.seedAcc += dt
	if l.seedAcc >= lifeSeedInterval {
		l.seedAcc -= lifeSeedInterval
		l.insertGlider(rng)
	}
}

func (l *Life) Render(buf *screen.Buffer) {
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			i := y*l.width + x
			if !l.cells[i] {
				continue
			}
			cell := screen.Cell{Ch: '█'}
			switch {
			case l.age[i] == 1:
				cell.Fg = screen.White
				cell.Bold = true
			case l.age[i] < 5:
				cell.Fg = screen.RGB(90, 245, 110)
			default:
				cell.Fg = screen.RGB(30, 140, 55)
			}
			buf.Set(x, y, cell)
		}
	}
}

// Validate checks plane sizes and age bookkeeping.
func (l *Life) Validate() error {
	if len(l.cells) != l.width*l.height || len(l.next) != l.width*l.height {
		return &invariantError{effect: "life", detail: "plane size mismatch", index: 0}
	}
	for i := range l.cells {
		if l.cells[i] && l.age[i] == 0 {
			return &invariantError{effect: "life", detail: "live cell with zero age", index: i}
		}
		if !l.cells[i] && l.age[i] != 0 {
			return &invariantError{effect: "life", detail: "dead cell with nonzero age", index: i}
		}
	}
	return nil
}
