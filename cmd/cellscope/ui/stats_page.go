package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cellscope/internal/store"
)

// StatsPageModel renders cumulative pattern statistics across all runs.
type StatsPageModel struct {
	viewport viewport.Model
	stats    []store.PatternStat
	styles   Styles
	width    int
	height   int
}

// NewStatsPageModel creates an empty statistics page.
func NewStatsPageModel(styles Styles) StatsPageModel {
	vp := viewport.New(80, 20)
	return StatsPageModel{viewport: vp, styles: styles}
}

// SetSize updates the viewport dimensions.
func (m *StatsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 4
	m.refresh()
}

// SetStats replaces the statistics shown.
func (m *StatsPageModel) SetStats(stats []store.PatternStat) {
	m.stats = stats
	m.refresh()
}

func (m *StatsPageModel) refresh() {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("Pattern Statistics"))
	sb.WriteString("\n\n")

	if len(m.stats) == 0 {
		sb.WriteString(m.styles.Muted.Render("No discoveries recorded yet."))
		m.viewport.SetContent(sb.String())
		return
	}

	table := NewSimpleTable("", []string{"Pattern", "Discovered", "Runs", "First Seen", "Last Seen"})
	for _, ps := range m.stats {
		table.AddRow(
			ps.Name,
			fmt.Sprintf("%d", ps.TimesDiscovered),
			fmt.Sprintf("%d", ps.RunsAppearedIn),
			ps.FirstSeenAt.Local().Format("2006-01-02 15:04"),
			ps.LastSeenAt.Local().Format("2006-01-02 15:04"),
		)
	}
	sb.WriteString(table.View(m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("esc back"))
	m.viewport.SetContent(sb.String())
}

// Update scrolls the viewport.
func (m StatsPageModel) Update(msg tea.Msg) (StatsPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m StatsPageModel) View() string {
	return m.viewport.View()
}
