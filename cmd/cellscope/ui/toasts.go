package ui

import (
	"time"
)

const (
	toastDuration    = 2500 * time.Millisecond
	maxVisibleToasts = 3
)

type toast struct {
	name  string
	start time.Time
}

// ToastStack queues short "Found: <name>" notifications for newly
// discovered patterns. Expiry is wall-clock based; View prunes as it
// renders.
type ToastStack struct {
	queue []toast
	now   func() time.Time
}

// NewToastStack returns an empty stack.
func NewToastStack() *ToastStack {
	return &ToastStack{now: time.Now}
}

// Add queues a toast for a newly discovered pattern.
func (t *ToastStack) Add(name string) {
	t.queue = append(t.queue, toast{name: name, start: t.now()})
}

// Active returns the names currently visible, oldest first, after pruning
// expired entries. At most maxVisibleToasts come back.
func (t *ToastStack) Active() []string {
	now := t.now()
	live := t.queue[:0]
	for _, item := range t.queue {
		if now.Sub(item.start) < toastDuration {
			live = append(live, item)
		}
	}
	t.queue = live

	start := 0
	if len(live) > maxVisibleToasts {
		start = len(live) - maxVisibleToasts
	}
	names := make([]string, 0, maxVisibleToasts)
	for _, item := range live[start:] {
		names = append(names, item.name)
	}
	return names
}

// View renders the visible toasts stacked vertically.
func (t *ToastStack) View(styles Styles) string {
	names := t.Active()
	if len(names) == 0 {
		return ""
	}
	out := ""
	for i, name := range names {
		if i > 0 {
			out += "\n"
		}
		out += styles.Toast.Render("Found: " + name)
	}
	return out
}
