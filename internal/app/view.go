package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazylite/internal/keymap"
)

// View implements tea.Model
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	tabBar := a.session.Tabs().RenderTabBar(a.theme, a.width)
	bottom := a.renderBottom()
	bodyHeight := max(1, a.height-lipgloss.Height(tabBar)-lipgloss.Height(bottom))

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, a.renderBody(bodyHeight), bottom)
}

func (a *App) renderBody(height int) string {
	view, ok := a.session.ActiveView()
	if !ok {
		msg := lipgloss.NewStyle().Foreground(a.theme.Warning).Render("Not loaded. Press r to retry.")
		return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	if a.session.Mode() == keymap.Zoom {
		row, ok := view.SelectedRow()
		if ok {
			boxHeight := max(3, height*7/10)
			box := view.Zoom().View(view.Result().Columns, row, a.theme, a.width, boxHeight)
			return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, box)
		}
	}

	return lipgloss.NewStyle().Width(a.width).Height(height).MaxHeight(height).
		Render(view.View(a.theme, a.width, height))
}

// renderBottom draws the input box in Input mode, otherwise the status bar
func (a *App) renderBottom() string {
	if in := a.session.Input(); in != nil {
		return in.View(a.theme, a.width)
	}

	if a.session.Mode() == keymap.Main {
		if err := a.session.LastError(); err != nil {
			return lipgloss.NewStyle().Foreground(a.theme.Error).Width(a.width).MaxHeight(1).
				Render(oneLine(err.Error()))
		}
	}

	right := a.position()
	left := a.session.Status()
	if left == "" {
		a.help.Width = max(0, a.width-lipgloss.Width(right)-1)
		left = a.help.ShortHelpView(helpBindings(a.session.Keymap(), a.session.Mode()))
	} else {
		left = lipgloss.NewStyle().Foreground(a.theme.Success).Render(left)
	}
	return a.formatStatusBar(left, right)
}

// position describes the selection as "row/rows" and the visible columns
func (a *App) position() string {
	view, ok := a.session.ActiveView()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.session.Mode().String())
	b.WriteString("  ")
	if i, ok := view.Selected(); ok {
		fmt.Fprintf(&b, "%d/%d", i+1, view.Result().Len())
	} else {
		b.WriteString("0/0")
	}
	start, end := view.Columns().Range()
	if end > start {
		fmt.Fprintf(&b, "  cols %d-%d/%d", start+1, end, view.Columns().Total())
	}
	return lipgloss.NewStyle().Foreground(a.theme.Info).Render(b.String())
}

// formatStatusBar puts left and right on one line, right aligned
func (a *App) formatStatusBar(left, right string) string {
	available := max(0, a.width)
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)

	if leftWidth+rightWidth >= available {
		return lipgloss.NewStyle().MaxWidth(available).Render(left)
	}
	return left + strings.Repeat(" ", available-leftWidth-rightWidth) + right
}
