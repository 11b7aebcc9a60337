package ui

import (
	"strings"
	"testing"

	"cellscope/internal/pattern"
)

func TestSidebarListsDiscoveries(t *testing.T) {
	sb := NewSidebar(DefaultStyles())
	view := sb.View([]pattern.Discovery{
		{Name: "Glider", Generation: 3},
		{Name: "Block", Generation: 7},
	})

	if !strings.Contains(view, "Discovered: 2") {
		t.Errorf("view missing count header:\n%s", view)
	}
	for _, want := range []string{"Glider", "g3", "Block", "g7"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSidebarOverflowCollapses(t *testing.T) {
	sb := NewSidebar(DefaultStyles())
	sb.SetHeight(6) // room for 3 entries after header and divider

	discoveries := []pattern.Discovery{
		{Name: "Block", Generation: 1},
		{Name: "Blinker", Generation: 2},
		{Name: "Toad", Generation: 3},
		{Name: "Beacon", Generation: 4},
		{Name: "Glider", Generation: 5},
	}
	view := sb.View(discoveries)

	if !strings.Contains(view, "more...") {
		t.Errorf("overflowing list should collapse into a more line:\n%s", view)
	}
	if strings.Contains(view, "Glider") {
		t.Errorf("entries past the cutoff should not render:\n%s", view)
	}
}

func TestSidebarTruncatesLongNames(t *testing.T) {
	sb := NewSidebar(DefaultStyles())
	long := strings.Repeat("x", sidebarNameWidth+10)
	view := sb.View([]pattern.Discovery{{Name: long, Generation: 0}})

	if strings.Contains(view, long) {
		t.Errorf("name should be truncated to %d chars:\n%s", sidebarNameWidth, view)
	}
	if !strings.Contains(view, "..") {
		t.Errorf("truncated name missing ellipsis:\n%s", view)
	}
}
