package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazylite/internal/keymap"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

// App is the bubbletea model wrapping a Session
type App struct {
	ctx     context.Context
	session *Session
	theme   theme.Theme
	help    help.Model

	width  int
	height int
}

// NewApp creates the model. ctx is passed to every data-source call.
func NewApp(ctx context.Context, session *Session, th theme.Theme) *App {
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(th.Info)
	h.Styles.ShortDesc = h.Styles.ShortDesc.Foreground(th.Foreground)
	h.Styles.ShortSeparator = h.Styles.ShortSeparator.Foreground(th.Border)

	return &App{
		ctx:     ctx,
		session: session,
		theme:   th,
		help:    h,
	}
}

// Session returns the wrapped session
func (a *App) Session() *Session { return a.session }

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		for _, k := range splitKeys(msg) {
			a.session.HandleKey(a.ctx, k)
			if a.session.Quitting() {
				return a, tea.Quit
			}
		}

	case tea.MouseMsg:
		a.handleMouse(msg)

	case KeymapReloadedMsg:
		if msg.Err != nil {
			a.session.SetLastError(fmt.Errorf("reload config: %w", msg.Err))
			return a, nil
		}
		a.session.SetKeymap(msg.Keymap)
		a.session.SetStatus("keybinds reloaded")
	}

	return a, nil
}

// handleMouse scrolls the selection with the wheel in Main mode
func (a *App) handleMouse(msg tea.MouseMsg) {
	if a.session.Mode() != keymap.Main || msg.Action != tea.MouseActionPress {
		return
	}

	var err error
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		err = a.session.Perform(a.ctx, keymap.MainNext)
	case tea.MouseButtonWheelUp:
		err = a.session.Perform(a.ctx, keymap.MainPrev)
	case tea.MouseButtonWheelRight:
		err = a.session.Perform(a.ctx, keymap.MainScrollRight)
	case tea.MouseButtonWheelLeft:
		err = a.session.Perform(a.ctx, keymap.MainScrollLeft)
	}
	if err != nil {
		a.session.SetLastError(err)
	}
}

// splitKeys turns a pasted run of characters into one key per rune
func splitKeys(msg tea.KeyMsg) []keymap.Key {
	if msg.Type != tea.KeyRunes || len(msg.Runes) < 2 {
		return []keymap.Key{keymap.FromKeyMsg(msg)}
	}

	keys := make([]keymap.Key, len(msg.Runes))
	for i, r := range msg.Runes {
		keys[i] = keymap.FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: msg.Alt})
	}
	return keys
}
