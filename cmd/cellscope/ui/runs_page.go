package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cellscope/internal/store"
)

// RunsPageModel is the saved-run browser. The app owns loading and
// deletion; this model tracks the selection and renders the list.
type RunsPageModel struct {
	viewport viewport.Model
	runs     []store.RunSummary
	selected int
	styles   Styles
	width    int
	height   int
}

// NewRunsPageModel creates an empty run browser.
func NewRunsPageModel(styles Styles) RunsPageModel {
	vp := viewport.New(80, 20)
	return RunsPageModel{viewport: vp, styles: styles}
}

// SetSize updates the viewport dimensions.
func (m *RunsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 4
	m.refresh()
}

// SetRuns replaces the listing and clamps the selection.
func (m *RunsPageModel) SetRuns(runs []store.RunSummary) {
	m.runs = runs
	if m.selected >= len(runs) {
		m.selected = len(runs) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.refresh()
}

// Selected returns the highlighted run, or nil when the list is empty.
func (m *RunsPageModel) Selected() *store.RunSummary {
	if len(m.runs) == 0 {
		return nil
	}
	return &m.runs[m.selected]
}

// Update handles navigation keys; everything else goes to the viewport.
func (m RunsPageModel) Update(msg tea.Msg) (RunsPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			m.refresh()
			return m, nil
		case "down", "j":
			if m.selected < len(m.runs)-1 {
				m.selected++
			}
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *RunsPageModel) refresh() {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Saved Runs"))
	sb.WriteString("\n\n")

	if len(m.runs) == 0 {
		sb.WriteString(m.styles.Muted.Render("No saved runs yet. Press 's' on the grid to save one."))
		m.viewport.SetContent(sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("  %-24s %-20s %10s %10s\n", "Name", "Saved", "Gen", "Patterns"))
	sb.WriteString(m.styles.Muted.Render(strings.Repeat("-", 70)))
	sb.WriteString("\n")
	for i, r := range m.runs {
		line := fmt.Sprintf("%-24s %-20s %10d %10d",
			truncate(r.Name, 24),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.FinalGeneration,
			r.PatternCount)
		if i == m.selected {
			sb.WriteString(m.styles.Cursor.Render("> " + line))
		} else {
			sb.WriteString(m.styles.Body.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("enter load · d delete · esc back"))
	m.viewport.SetContent(sb.String())
}

func truncate(s string, l int) string {
	if len(s) > l {
		return s[:l-3] + "..."
	}
	return s
}

// View renders the page.
func (m RunsPageModel) View() string {
	return m.viewport.View()
}
