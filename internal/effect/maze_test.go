package effect

import (
	"math/rand"
	"testing"
)

func carveToCompletion(t *testing.T, m *Maze, rng *rand.Rand) {
	t.Helper()
	for i := 0; i < 10000 && m.phase == phaseCarve; i++ {
		m.Tick(0.1, rng)
	}
	if m.phase == phaseCarve {
		t.Fatal("carving did not finish")
	}
}

func TestMazeIsSpanningTree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m := NewMaze()
	m.Reset(41, 21, rng)
	carveToCompletion(t, m, rng)

	if want := m.cols*m.rows - 1; m.carved != want {
		t.Fatalf("carved %d walls, want %d", m.carved, want)
	}
	for i, c := range m.cells {
		if c&mazeVisited == 0 {
			t.Fatalf("cell %d never visited", i)
		}
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestMazeWallsAreMutual(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := NewMaze()
	m.Reset(31, 17, rng)
	carveToCompletion(t, m, rng)

	for cy := 0; cy < m.rows; cy++ {
		for cx := 0; cx < m.cols; cx++ {
			if cx+1 < m.cols {
				here := m.at(cx, cy)&wallE == 0
				there := m.at(cx+1, cy)&wallW == 0
				if here != there {
					t.Fatalf("east wall mismatch at (%d,%d)", cx, cy)
				}
			}
			if cy+1 < m.rows {
				here := m.at(cx, cy)&wallS == 0
				there := m.at(cx, cy+1)&wallN == 0
				if here != there {
					t.Fatalf("south wall mismatch at (%d,%d)", cx, cy)
				}
			}
		}
	}
}

func TestMazeSolutionPath(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := NewMaze()
	m.Reset(41, 21, rng)
	carveToCompletion(t, m, rng)

	if len(m.path) == 0 {
		t.Fatal("no solution path")
	}
	if m.path[0] != [2]int{0, 0} {
		t.Errorf("path starts at %v, want entrance", m.path[0])
	}
	if got, want := m.path[len(m.path)-1], ([2]int{m.cols - 1, m.rows - 1}); got != want {
		t.Errorf("path ends at %v, want %v", got, want)
	}

	for i := 1; i < len(m.path); i++ {
		a, b := m.path[i-1], m.path[i]
		dx, dy := b[0]-a[0], b[1]-a[1]
		if absInt(dx)+absInt(dy) != 1 {
			t.Fatalf("path step %d not adjacent: %v -> %v", i, a, b)
		}
		var wall uint8
		switch {
		case dx == 1:
			wall = wallE
		case dx == -1:
			wall = wallW
		case dy == 1:
			wall = wallS
		default:
			wall = wallN
		}
		if m.at(a[0], a[1])&wall != 0 {
			t.Fatalf("path step %d crosses a wall: %v -> %v", i, a, b)
		}
	}
}

func TestMazeRegeneratesAfterHold(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m := NewMaze()
	m.Reset(21, 11, rng)
	carveToCompletion(t, m, rng)

	for i := 0; i < 1000 && m.phase != phaseHold; i++ {
		m.Tick(0.1, rng)
	}
	if m.phase != phaseHold {
		t.Fatal("solve phase never finished")
	}
	m.Tick(mazeHoldTime+1, rng)
	if m.phase != phaseCarve {
		t.Fatalf("phase after hold = %v, want carve", m.phase)
	}
	if m.carved != 0 {
		t.Errorf("carved count not reset, got %d", m.carved)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
