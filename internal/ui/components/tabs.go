package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

// TabState tells whether a tab's result has been fetched
type TabState int

const (
	TabUnloaded TabState = iota
	TabLoaded
)

// Tab is one named result set. Table tabs start Unloaded and are
// materialized the first time they are shown.
type Tab struct {
	Title string
	// Query is the statement that produces the tab's rows; reload re-runs it
	Query string

	state TabState
	view  *TableView
}

// NewTab returns an unloaded tab
func NewTab(title, query string) *Tab {
	return &Tab{Title: title, Query: query}
}

// State returns whether the tab is loaded
func (t *Tab) State() TabState { return t.state }

// View returns the tab's table view once loaded
func (t *Tab) View() (*TableView, bool) {
	if t.state != TabLoaded {
		return nil, false
	}
	return t.view, true
}

// Load replaces the tab's view and marks it loaded
func (t *Tab) Load(view *TableView) {
	t.view = view
	t.state = TabLoaded
}

// Tabs is an ordered, never-empty list of tabs with one active
type Tabs struct {
	tabs   []*Tab
	active int
}

// NewTabs returns the tabs with the first one active
func NewTabs(tabs ...*Tab) (*Tabs, error) {
	if len(tabs) == 0 {
		return nil, fmt.Errorf("at least one tab is required")
	}
	return &Tabs{tabs: tabs}, nil
}

// Len returns the number of tabs
func (ts *Tabs) Len() int { return len(ts.tabs) }

// ActiveIndex returns the index of the active tab
func (ts *Tabs) ActiveIndex() int { return ts.active }

// Active returns the active tab
func (ts *Tabs) Active() *Tab { return ts.tabs[ts.active] }

// At returns the tab at index i
func (ts *Tabs) At(i int) *Tab { return ts.tabs[i] }

// SetActive makes tab i active
func (ts *Tabs) SetActive(i int) error {
	if i < 0 || i >= len(ts.tabs) {
		return fmt.Errorf("tab index %d out of range [0, %d)", i, len(ts.tabs))
	}
	ts.active = i
	return nil
}

// Next activates the following tab, wrapping to the first
func (ts *Tabs) Next() {
	ts.active = (ts.active + 1) % len(ts.tabs)
}

// Prev activates the preceding tab, wrapping to the last
func (ts *Tabs) Prev() {
	ts.active = (ts.active - 1 + len(ts.tabs)) % len(ts.tabs)
}

// Append adds a tab at the end and returns its index; the active tab is unchanged
func (ts *Tabs) Append(tab *Tab) int {
	ts.tabs = append(ts.tabs, tab)
	return len(ts.tabs) - 1
}

// Last returns the index of the last tab
func (ts *Tabs) Last() int { return len(ts.tabs) - 1 }

// RenderTabBar renders the tab titles with their first letter accented
// and the active tab reversed. When the titles do not fit in width the bar
// starts late enough to keep the active tab visible.
func (ts *Tabs) RenderTabBar(th theme.Theme, width int) string {
	accent := lipgloss.NewStyle().Foreground(th.TabAccent).Bold(true)
	activeStyle := lipgloss.NewStyle().Reverse(true).Foreground(th.TabActive)
	divider := lipgloss.NewStyle().Foreground(th.Border).Render(" │ ")
	more := lipgloss.NewStyle().Foreground(th.Border).Render("…")
	dividerWidth := lipgloss.Width(divider)

	first := 0
	if width > 0 {
		used := runewidth.StringWidth(ts.tabs[ts.active].Title)
		for first = ts.active; first > 0; first-- {
			w := runewidth.StringWidth(ts.tabs[first-1].Title) + dividerWidth
			if used+w > width {
				break
			}
			used += w
		}
	}

	var b strings.Builder
	used := 0
	if first > 0 {
		b.WriteString(more)
		b.WriteString(divider)
		used += 1 + dividerWidth
	}
	for i := first; i < len(ts.tabs); i++ {
		tab := ts.tabs[i]
		w := runewidth.StringWidth(tab.Title)
		if i > first {
			w += dividerWidth
		}
		if width > 0 && i > ts.active && used+w > width {
			b.WriteString(divider)
			b.WriteString(more)
			break
		}

		if i > first {
			b.WriteString(divider)
		}
		if i == ts.active {
			b.WriteString(activeStyle.Render(tab.Title))
		} else {
			b.WriteString(tabLabel(tab.Title, accent))
		}
		used += w
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(th.Border).
		Render(b.String())
}

func tabLabel(title string, accent lipgloss.Style) string {
	if title == "" {
		return ""
	}
	r := []rune(title)
	return accent.Render(string(r[0])) + string(r[1:])
}
