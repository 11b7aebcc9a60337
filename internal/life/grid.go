// Package life implements the Game of Life simulation state: the live/dead
// grid, per-cell age tracking for display, and fading trails left by cells
// that die.
package life

import "math/rand"

const (
	// MaxAge caps the per-cell age counter. The display maps each age to a
	// gradient step, so ages saturate at the last color.
	MaxAge = 9

	// TrailLength is how many generations a death trail takes to fade.
	TrailLength = 4

	// DefaultDensity is the live-cell probability used by Randomize.
	DefaultDensity = 0.3
)

// Grid is a rectangular live/dead cell field.
type Grid struct {
	rows  int
	cols  int
	cells [][]int
}

// New returns an empty rows x cols grid.
func New(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols}
	g.cells = makeField(rows, cols)
	return g
}

// FromCells builds a grid from a 0/1 matrix, copying the input. Ragged or
// empty input yields a grid sized to the first row (zero-sized if none).
func FromCells(cells [][]int) *Grid {
	rows := len(cells)
	cols := 0
	if rows > 0 {
		cols = len(cells[0])
	}
	g := New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols && c < len(cells[r]); c++ {
			if cells[r][c] != 0 {
				g.cells[r][c] = 1
			}
		}
	}
	return g
}

func makeField(rows, cols int) [][]int {
	f := make([][]int, rows)
	for r := range f {
		f[r] = make([]int, cols)
	}
	return f
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Alive reports whether the cell at (r, c) is live. Out-of-range
// coordinates are dead.
func (g *Grid) Alive(r, c int) bool {
	return g.inBounds(r, c) && g.cells[r][c] != 0
}

// Set assigns liveness at (r, c); out-of-range coordinates are ignored.
func (g *Grid) Set(r, c int, alive bool) {
	if !g.inBounds(r, c) {
		return
	}
	if alive {
		g.cells[r][c] = 1
	} else {
		g.cells[r][c] = 0
	}
}

// Toggle flips the cell at (r, c).
func (g *Grid) Toggle(r, c int) {
	if g.inBounds(r, c) {
		g.cells[r][c] ^= 1
	}
}

func (g *Grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			n += g.cells[r][c]
		}
	}
	return n
}

// Cells returns a deep copy of the 0/1 matrix, suitable for persistence.
func (g *Grid) Cells() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		copy(out[r], g.cells[r])
	}
	return out
}

// neighbors counts the live cells among the 8 neighbors of (r, c).
func (g *Grid) neighbors(r, c int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.Alive(r+dr, c+dc) {
				n++
			}
		}
	}
	return n
}

// Sim couples a grid with its generation counter, cell ages, and death
// trails. All mutation goes through Sim so the three stay consistent.
type Sim struct {
	Grid       *Grid
	Generation int

	age   [][]int
	trail [][]int
}

// NewSim returns an empty simulation.
func NewSim(rows, cols int) *Sim {
	return &Sim{
		Grid:  New(rows, cols),
		age:   makeField(rows, cols),
		trail: makeField(rows, cols),
	}
}

// Age returns how many consecutive generations the cell at (r, c) has been
// live, capped at MaxAge. Zero for dead or out-of-range cells.
func (s *Sim) Age(r, c int) int {
	if !s.Grid.inBounds(r, c) {
		return 0
	}
	return s.age[r][c]
}

// Trail returns the remaining fade countdown for a recently died cell:
// TrailLength just after death, down to 0 when fully faded.
func (s *Sim) Trail(r, c int) int {
	if !s.Grid.inBounds(r, c) {
		return 0
	}
	return s.trail[r][c]
}

// Step advances one generation under B3/S23, updating ages and trails, and
// increments the generation counter.
func (s *Sim) Step() {
	g := s.Grid
	next := makeField(g.rows, g.cols)
	nextAge := makeField(g.rows, g.cols)

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			n := g.neighbors(r, c)
			if g.cells[r][c] != 0 {
				if n == 2 || n == 3 {
					next[r][c] = 1
					a := s.age[r][c] + 1
					if a > MaxAge {
						a = MaxAge
					}
					nextAge[r][c] = a
				} else {
					s.trail[r][c] = TrailLength
				}
			} else {
				if n == 3 {
					next[r][c] = 1
				} else if s.trail[r][c] > 0 {
					s.trail[r][c]--
				}
			}
		}
	}

	g.cells = next
	s.age = nextAge
	s.Generation++
}

// Clear empties the grid, ages, trails, and resets the generation counter.
func (s *Sim) Clear() {
	g := s.Grid
	g.cells = makeField(g.rows, g.cols)
	s.age = makeField(g.rows, g.cols)
	s.trail = makeField(g.rows, g.cols)
	s.Generation = 0
}

// Randomize clears the simulation and fills the grid with live cells at
// DefaultDensity using the given source.
func (s *Sim) Randomize(rng *rand.Rand) {
	s.Clear()
	g := s.Grid
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if rng.Float64() < DefaultDensity {
				g.cells[r][c] = 1
			}
		}
	}
}

// LoadCells clears the simulation and installs the given 0/1 matrix,
// clipped to the grid dimensions.
func (s *Sim) LoadCells(cells [][]int) {
	s.Clear()
	g := s.Grid
	for r := 0; r < len(cells) && r < g.rows; r++ {
		for c := 0; c < len(cells[r]) && c < g.cols; c++ {
			if cells[r][c] != 0 {
				g.cells[r][c] = 1
			}
		}
	}
}
