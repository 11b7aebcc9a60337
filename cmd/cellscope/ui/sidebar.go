package ui

import (
	"fmt"
	"strings"

	"cellscope/internal/pattern"
)

const sidebarNameWidth = 20

// Sidebar renders the discovered-pattern list beside the grid.
type Sidebar struct {
	styles Styles
	height int
}

// NewSidebar returns a sidebar renderer.
func NewSidebar(styles Styles) Sidebar {
	return Sidebar{styles: styles}
}

// SetHeight caps how many rows the sidebar may use.
func (s *Sidebar) SetHeight(h int) {
	s.height = h
}

// View renders the discovery list sorted by generation. When the list
// overflows the available height the tail collapses into a "+N more" line.
func (s Sidebar) View(discoveries []pattern.Discovery) string {
	var sb strings.Builder
	sb.WriteString(s.styles.SidebarHeader.Render(fmt.Sprintf("Discovered: %d", len(discoveries))))
	sb.WriteString("\n")
	sb.WriteString(s.styles.Muted.Render(strings.Repeat("─", sidebarNameWidth+8)))
	sb.WriteString("\n")

	maxRows := len(discoveries)
	if s.height > 0 && s.height-3 < maxRows {
		maxRows = s.height - 3
		if maxRows < 0 {
			maxRows = 0
		}
	}

	for i, d := range discoveries {
		if i >= maxRows && maxRows < len(discoveries) {
			sb.WriteString(s.styles.Muted.Render(fmt.Sprintf("  +%d more...", len(discoveries)-i)))
			sb.WriteString("\n")
			break
		}
		name := d.Name
		if len(name) > sidebarNameWidth {
			name = name[:sidebarNameWidth-2] + ".."
		}
		sb.WriteString(s.styles.SidebarEntry.Render(name))
		sb.WriteString(s.styles.Muted.Render(fmt.Sprintf(" g%d", d.Generation)))
		sb.WriteString("\n")
	}
	return s.styles.SidebarFrame.Render(strings.TrimRight(sb.String(), "\n"))
}
