package effect

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/screen"
)

const (
	wallN uint8 = 1 << iota
	wallE
	wallS
	wallW
	mazeVisited
)

const allWalls = wallN | wallE | wallS | wallW

const (
	mazeCarveRate  = 60.0 // cells carved per second
	mazeSolveRate  = 30.0 // path cells revealed per second
	mazeHoldTime   = 4.0
	mazeWallGlyphs = "#%&*+=?@$"
)

type mazePhase int

const (
	phaseCarve mazePhase = iota
	phaseSolve
	phaseHold
)

// Maze carves a maze with a depth-first backtracker, then animates the
// shortest path from the top-left to the bottom-right corner. The grid
// is a spanning tree: exactly cols*rows-1 walls are removed.
type Maze struct {
	width, height int
	cols, rows    int
	cells         []uint8
	stack         [][2]int
	carved        int
	glyphs        []rune

	phase    mazePhase
	acc      float64
	path     [][2]int
	revealed int
}

func NewMaze() *Maze {
	return &Maze{}
}

func (m *Maze) Reset(width, height int, rng *rand.Rand) {
	m.width = width
	m.height = height
	m.cols = (width - 1) / 2
	m.rows = (height - 1) / 2
	if m.cols < 2 {
		m.cols = 2
	}
	if m.rows < 2 {
		m.rows = 2
	}
	m.regenerate(rng)
}

func (m *Maze) regenerate(rng *rand.Rand) {
	m.cells = make([]uint8, m.cols*m.rows)
	for i := range m.cells {
		m.cells[i] = allWalls
	}
	m.cells[0] |= mazeVisited
	m.stack = [][2]int{{0, 0}}
	m.carved = 0
	m.phase = phaseCarve
	m.acc = 0
	m.path = nil
	m.revealed = 0

	m.glyphs = make([]rune, m.width*m.height)
	wall := []rune(mazeWallGlyphs)
	for i := range m.glyphs {
		m.glyphs[i] = wall[rng.Intn(len(wall))]
	}
}

func (m *Maze) at(cx, cy int) uint8 { return m.cells[cy*m.cols+cx] }

func (m *Maze) inGrid(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < m.cols && cy < m.rows
}

func (m *Maze) isVisited(cx, cy int) bool { return m.at(cx, cy)&mazeVisited != 0 }

var mazeDirs = []struct {
	dx, dy     int
	wall, back uint8
}{
	{0, -1, wallN, wallS},
	{1, 0, wallE, wallW},
	{0, 1, wallS, wallN},
	{-1, 0, wallW, wallE},
}

// carveStep advances the backtracker by one cell. It returns false
// once the stack is exhausted and the maze is complete.
func (m *Maze) carveStep(rng *rand.Rand) bool {
	if len(m.stack) == 0 {
		return false
	}
	cur := m.stack[len(m.stack)-1]

	candidates := make([]int, 0, 4)
	for i, d := range mazeDirs {
		nx, ny := cur[0]+d.dx, cur[1]+d.dy
		if m.inGrid(nx, ny) && !m.isVisited(nx, ny) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		m.stack = m.stack[:len(m.stack)-1]
		return true
	}

	d := mazeDirs[candidates[rng.Intn(len(candidates))]]
	nx, ny := cur[0]+d.dx, cur[1]+d.dy
	m.cells[cur[1]*m.cols+cur[0]] &^= d.wall
	m.cells[ny*m.cols+nx] &^= d.back
	m.cells[ny*m.cols+nx] |= mazeVisited
	m.carved++
	m.stack = append(m.stack, [2]int{nx, ny})
	return true
}

// solve runs a breadth-first search from the entrance to the exit and
// stores the resulting path.
func (m *Maze) solve() {
	start := [2]int{0, 0}
	goal := [2]int{m.cols - 1, m.rows - 1}
	parent := make(map[[2]int][2]int)
	seen := make([]bool, m.cols*m.rows)
	seen[0] = true
	queue := [][2]int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			break
		}
		for _, d := range mazeDirs {
			if m.at(cur[0], cur[1])&d.wall != 0 {
				continue
			}
			next := [2]int{cur[0] + d.dx, cur[1] + d.dy}
			if seen[next[1]*m.cols+next[0]] {
				continue
			}
			seen[next[1]*m.cols+next[0]] = true
			parent[next] = cur
			queue = append(queue, next)
		}
	}

	path := [][2]int{goal}
	for cur := goal; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}
	// Reverse so the reveal runs entrance to exit.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	m.path = path
	m.revealed = 0
}

func (m *Maze) Tick(dt float64, rng *rand.Rand) {
	switch m.phase {
	case phaseCarve:
		m.acc += dt * mazeCarveRate
		for m.acc >= 1 {
			m.acc--
			if !m.carveStep(rng) {
				m.phase = phaseSolve
				m.acc = 0
				m.solve()
				break
			}
		}
	case phaseSolve:
		m.acc += dt * mazeSolveRate
		for m.acc >= 1 && m.revealed < len(m.path) {
			m.acc--
			m.revealed++
		}
		if m.revealed >= len(m.path) {
			m.phase = phaseHold
			m.acc = 0
		}
	case phaseHold:
		m.acc += dt
		if m.acc >= mazeHoldTime {
			m.regenerate(rng)
		}
	}
}

var mazeWallColor = screen.RGB(40, 160, 70)

func (m *Maze) Render(buf *screen.Buffer) {
	// Walls everywhere, then open the carved passages.
	for y := 0; y <= m.rows*2; y++ {
		for x := 0; x <= m.cols*2; x++ {
			buf.Set(x, y, screen.Cell{Ch: m.glyph(x, y), Fg: mazeWallColor})
		}
	}
	for cy := 0; cy < m.rows; cy++ {
		for cx := 0; cx < m.cols; cx++ {
			if !m.isVisited(cx, cy) {
				continue
			}
			sx, sy := cx*2+1, cy*2+1
			buf.Set(sx, sy, screen.Blank)
			if m.at(cx, cy)&wallE == 0 {
				buf.Set(sx+1, sy, screen.Blank)
			}
			if m.at(cx, cy)&wallS == 0 {
				buf.Set(sx, sy+1, screen.Blank)
			}
		}
	}

	for i := 0; i < m.revealed; i++ {
		cx, cy := m.path[i][0], m.path[i][1]
		buf.Set(cx*2+1, cy*2+1, screen.Cell{Ch: '█', Fg: screen.White, Bold: true})
		if i+1 < m.revealed {
			nx, ny := m.path[i+1][0], m.path[i+1][1]
			buf.Set(cx+nx+1, cy+ny+1, screen.Cell{Ch: '█', Fg: screen.White, Bold: true})
		}
	}
}

func (m *Maze) glyph(x, y int) rune {
	i := y*m.width + x
	if i < 0 || i >= len(m.glyphs) {
		return '#'
	}
	return m.glyphs[i]
}

// Validate checks the spanning-tree property once carving completes.
func (m *Maze) Validate() error {
	if m.phase == phaseCarve {
		return nil
	}
	if m.carved != m.cols*m.rows-1 {
		return &invariantError{effect: "maze", detail: "carved wall count breaks spanning tree", index: m.carved}
	}
	for i, c := range m.cells {
		if c&mazeVisited == 0 {
			return &invariantError{effect: "maze", detail: "unvisited cell after carve", index: i}
		}
	}
	return nil
}
