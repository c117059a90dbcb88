package screen

// Change is one cell that differs between consecutive frames.
type Change struct {
	X, Y int
	Cell Cell
}

// Buffer is a double-buffered cell grid. Effects draw into the back
// buffer; SwapDiff compares it against the previously presented frame
// and returns only the cells that changed, in row-major order.
type Buffer struct {
	width, height int
	front         []Cell
	back          []Cell
	fullRedraw    bool
}

// NewBuffer allocates a buffer of the given size, filled with Blank.
// The first SwapDiff reports every cell.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		width:      width,
		height:     height,
		front:      make([]Cell, width*height),
		back:       make([]Cell, width*height),
		fullRedraw: true,
	}
	for i := range b.front {
		b.front[i] = Blank
		b.back[i] = Blank
	}
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Set writes a cell into the back buffer. Out-of-bounds coordinates
// are silently dropped so effects may draw partially off-screen.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.back[y*b.width+x] = c
}

// Get reads a cell from the back buffer. Out of bounds returns Blank.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Blank
	}
	return b.back[y*b.width+x]
}

// Clear fills the back buffer with Blank.
func (b *Buffer) Clear() {
	for i := range b.back {
		b.back[i] = Blank
	}
}

// Fill sets every back-buffer cell to c.
func (b *Buffer) Fill(c Cell) {
	for i := range b.back {
		b.back[i] = c
	}
}

// SetString writes s horizontally starting at (x, y), clipping at the
// buffer edges.
func (b *Buffer) SetString(x, y int, s string, fg Color, bold bool) {
	for i, ch := range []rune(s) {
		b.Set(x+i, y, Cell{Ch: ch, Fg: fg, Bold: bold})
	}
}

// SwapDiff promotes the back buffer to the presented frame and returns
// the cells that differ from the previous frame in row-major order.
// After a Resize the next call reports every cell.
func (b *Buffer) SwapDiff() []Change {
	var changes []Change
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*b.width + x
			if b.fullRedraw || b.back[i] != b.front[i] {
				changes = append(changes, Change{X: x, Y: y, Cell: b.back[i]})
			}
			b.front[i] = b.back[i]
		}
	}
	b.fullRedraw = false
	return changes
}

// Resize reallocates both planes at the new size and schedules a full
// redraw. Previous contents are discarded.
func (b *Buffer) Resize(width, height int) {
	b.width = width
	b.height = height
	b.front = make([]Cell, width*height)
	b.back = make([]Cell, width*height)
	for i := range b.front {
		b.front[i] = Blank
		b.back[i] = Blank
	}
	b.fullRedraw = true
}
