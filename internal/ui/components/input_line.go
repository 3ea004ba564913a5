package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazylite/internal/command"
	"github.com/rebeliceyang/lazylite/internal/keymap"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

// InputLine is the command line opened in Input mode
type InputLine struct {
	Kind  command.Kind
	input textinput.Model
}

// NewInputLine opens a focused line of the given kind with the cursor after seed
func NewInputLine(kind command.Kind, seed string) *InputLine {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.SetValue(seed)
	ti.CursorEnd()
	ti.Focus()

	return &InputLine{Kind: kind, input: ti}
}

// Value returns the typed text
func (l *InputLine) Value() string {
	return l.input.Value()
}

// Position returns the cursor position in runes
func (l *InputLine) Position() int {
	return l.input.Position()
}

// Apply performs a line-edit request by replaying the textinput key it stands for
func (l *InputLine) Apply(req keymap.EditRequest) {
	var msg tea.KeyMsg

	switch req.Op {
	case keymap.EditInsertChar:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{req.Char}}
	case keymap.EditPrevChar:
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case keymap.EditNextChar:
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case keymap.EditPrevWord:
		msg = tea.KeyMsg{Type: tea.KeyLeft, Alt: true}
	case keymap.EditNextWord:
		msg = tea.KeyMsg{Type: tea.KeyRight, Alt: true}
	case keymap.EditStart:
		msg = tea.KeyMsg{Type: tea.KeyHome}
	case keymap.EditEnd:
		msg = tea.KeyMsg{Type: tea.KeyEnd}
	case keymap.EditDeletePrevChar:
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case keymap.EditDeleteNextChar:
		msg = tea.KeyMsg{Type: tea.KeyDelete}
	case keymap.EditDeletePrevWord:
		msg = tea.KeyMsg{Type: tea.KeyCtrlW}
	case keymap.EditDeleteNextWord:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}, Alt: true}
	case keymap.EditDeleteTillEnd:
		msg = tea.KeyMsg{Type: tea.KeyCtrlK}
	case keymap.EditDeleteLine:
		l.input.SetValue("")
		return
	default:
		return
	}

	l.input, _ = l.input.Update(msg)
}

// View renders the line in a bordered box titled with its kind
func (l *InputLine) View(th theme.Theme, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(0, 1)

	inner := max(1, width-box.GetHorizontalFrameSize())
	ti := l.input
	ti.Width = max(1, inner-lipgloss.Width(ti.Prompt)-1)

	title := lipgloss.NewStyle().Bold(true).Foreground(th.BorderFocused).Render(l.Kind.String())
	return box.Width(inner + 2).Render(title + "\n" + ti.View())
}
