package ui

import (
	"fmt"
	"strings"

	"cellscope/internal/life"
)

// GridView renders the simulation field. Each cell is two characters wide
// so the grid reads roughly square in a terminal.
type GridView struct {
	styles Styles
}

// NewGridView returns a grid renderer.
func NewGridView(styles Styles) GridView {
	return GridView{styles: styles}
}

// Render draws the field with age-gradient live cells, fading trails for
// recent deaths, and optionally the edit cursor.
func (v GridView) Render(sim *life.Sim, cursorR, cursorC int, showCursor bool) string {
	g := sim.Grid
	var sb strings.Builder
	for r := 0; r < g.Rows(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.Cols(); c++ {
			cell := v.cellContent(sim, r, c)
			if showCursor && r == cursorR && c == cursorC {
				cell = v.styles.Cursor.Render(stripStyle(sim, r, c))
			}
			sb.WriteString(cell)
		}
	}
	return v.styles.GridFrame.Render(sb.String())
}

func (v GridView) cellContent(sim *life.Sim, r, c int) string {
	if sim.Grid.Alive(r, c) {
		age := sim.Age(r, c)
		if age >= len(v.styles.AgeCells) {
			age = len(v.styles.AgeCells) - 1
		}
		return v.styles.AgeCells[age].Render("██")
	}
	if tr := sim.Trail(r, c); tr > 0 {
		idx := life.TrailLength - tr
		if idx >= len(v.styles.Trails) {
			idx = len(v.styles.Trails) - 1
		}
		return v.styles.Trails[idx].Render("▒▒")
	}
	return v.styles.DeadCell.Render(" ·")
}

// stripStyle returns the raw two-char cell content for cursor rendering.
func stripStyle(sim *life.Sim, r, c int) string {
	if sim.Grid.Alive(r, c) {
		return "██"
	}
	return " ·"
}

// StatusBar renders the generation, population, and run-state line.
func (v GridView) StatusBar(sim *life.Sim, running bool, speedMS int) string {
	state := v.styles.Paused.Render("Paused")
	if running {
		state = v.styles.Running.Render("Running")
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		v.styles.Header.Render(fmt.Sprintf("Gen: %d", sim.Generation)),
		v.styles.Accent.Render(fmt.Sprintf("Pop: %d", sim.Grid.Population())),
		state,
		v.styles.Muted.Render(fmt.Sprintf("%dms/step", speedMS)),
	)
}
