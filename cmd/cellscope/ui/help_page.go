package ui

import (
	_ "embed"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

// HelpPageModel renders the key reference from embedded markdown.
type HelpPageModel struct {
	viewport viewport.Model
	styles   Styles
	rendered string
	width    int
	height   int
}

// NewHelpPageModel creates the help page.
func NewHelpPageModel(styles Styles) HelpPageModel {
	vp := viewport.New(80, 20)
	m := HelpPageModel{viewport: vp, styles: styles, width: 80}
	m.render()
	return m
}

// SetSize updates the viewport and re-renders at the new wrap width.
func (m *HelpPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 2
	m.render()
}

func (m *HelpPageModel) render() {
	wrap := m.width - 4
	if wrap < 40 {
		wrap = 40
	}
	var renderer *glamour.TermRenderer
	var err error
	if m.styles.Theme.IsDark {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(wrap),
		)
	} else {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}
	if err != nil || renderer == nil {
		m.rendered = helpMarkdown
	} else if out, rerr := renderer.Render(helpMarkdown); rerr == nil {
		m.rendered = out
	} else {
		m.rendered = helpMarkdown
	}
	m.viewport.SetContent(m.rendered)
}

// Update scrolls the viewport.
func (m HelpPageModel) Update(msg tea.Msg) (HelpPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m HelpPageModel) View() string {
	return m.viewport.View()
}
