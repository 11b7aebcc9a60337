package pattern

import (
	"sort"

	"cellscope/internal/geometry"
)

// Grid is the read-only view of the simulation field the scanner needs.
// *life.Grid satisfies it.
type Grid interface {
	Rows() int
	Cols() int
	Alive(r, c int) bool
}

// Scanner extracts connected components from a grid each generation and
// records the first generation each known pattern is seen. Not safe for
// concurrent use; the caller drives it from a single step loop.
type Scanner struct {
	lib        *Library
	discovered map[string]int
}

// NewScanner returns a scanner with an empty discovery map.
func NewScanner(lib *Library) *Scanner {
	return &Scanner{
		lib:        lib,
		discovered: make(map[string]int),
	}
}

// Scan walks the grid in row-major order, flood-fills each unvisited live
// cell into its 8-connected component, and matches components against the
// library. Components larger than the library's box cutoff are ignored.
// Returns the names newly discovered by this call, in discovery order.
func (s *Scanner) Scan(g Grid, generation int) []string {
	rows, cols := g.Rows(), g.Cols()
	if rows == 0 || cols == 0 {
		return nil
	}
	visited := make([]bool, rows*cols)
	var newNames []string

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !g.Alive(r, c) || visited[r*cols+c] {
				continue
			}
			component := floodFill(g, visited, r, c)
			norm := geometry.Normalize(component)
			h, w := geometry.BoundingBox(norm)
			if h > s.lib.MaxBox() || w > s.lib.MaxBox() {
				continue
			}
			name, ok := s.lib.Lookup(norm)
			if !ok {
				continue
			}
			if _, seen := s.discovered[name]; seen {
				continue
			}
			s.discovered[name] = generation
			newNames = append(newNames, name)
		}
	}
	return newNames
}

// floodFill collects the 8-connected component containing (startR, startC)
// by breadth-first traversal, marking every visited cell.
func floodFill(g Grid, visited []bool, startR, startC int) geometry.CellSet {
	rows, cols := g.Rows(), g.Cols()
	queue := []geometry.Cell{{Row: startR, Col: startC}}
	visited[startR*cols+startC] = true
	cells := make(geometry.CellSet)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cells[cur] = struct{}{}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc := cur.Row+dr, cur.Col+dc
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				if visited[nr*cols+nc] || !g.Alive(nr, nc) {
					continue
				}
				visited[nr*cols+nc] = true
				queue = append(queue, geometry.Cell{Row: nr, Col: nc})
			}
		}
	}
	return cells
}

// Reset clears all discovery state. Call when the grid is cleared,
// randomized, or reloaded.
func (s *Scanner) Reset() {
	s.discovered = make(map[string]int)
}

// SetLibrary swaps in a rebuilt library, keeping existing discoveries.
// Used when the pattern directory changes on disk mid-run.
func (s *Scanner) SetLibrary(lib *Library) {
	s.lib = lib
}

// Discovered returns a copy of the name -> first-seen-generation map.
func (s *Scanner) Discovered() map[string]int {
	out := make(map[string]int, len(s.discovered))
	for k, v := range s.discovered {
		out[k] = v
	}
	return out
}

// Discovery is one recognized pattern with the generation it first appeared.
type Discovery struct {
	Name       string
	Generation int
}

// Discoveries returns the discovery map ordered by generation, then name.
// Display code wants this order; the map itself carries no ordering.
func (s *Scanner) Discoveries() []Discovery {
	out := make([]Discovery, 0, len(s.discovered))
	for name, gen := range s.discovered {
		out = append(out, Discovery{Name: name, Generation: gen})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Generation != out[j].Generation {
			return out[i].Generation < out[j].Generation
		}
		return out[i].Name < out[j].Name
	})
	return out
}
