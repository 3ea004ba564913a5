package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazylite/internal/keymap"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

func newTestApp(t *testing.T, tables ...string) (*App, *fakeSource) {
	t.Helper()

	src := newFakeSource(t, tables...)
	a := NewApp(context.Background(), newTestSession(t, src), theme.GetTheme("default"))
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a, src
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_Quit(t *testing.T) {
	a, _ := newTestApp(t, "users")

	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_KeysReachSession(t *testing.T) {
	a, _ := newTestApp(t, "users", "orders")

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 1, a.Session().Tabs().ActiveIndex())

	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, a.Session().Tabs().ActiveIndex())

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, keymap.Zoom, a.Session().Mode())

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, keymap.Main, a.Session().Mode())
}

func TestApp_PasteIsSplit(t *testing.T) {
	a, src := newTestApp(t, "users")

	a.Update(runes(":"))
	a.Update(runes("vacuum"))
	assert.Equal(t, "exec vacuum", a.Session().Input().Value())

	a.Update(tea.KeyMsg{Type: tea.KeySpace})
	a.Update(runes("now"))
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"vacuum\nnow\n"}, src.execs)
}

func TestSplitKeys(t *testing.T) {
	keys := splitKeys(runes("ab"))
	assert.Equal(t, []keymap.Key{{Code: "a"}, {Code: "b"}}, keys)

	keys = splitKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d"), Alt: true})
	assert.Equal(t, []keymap.Key{keymap.MustParseKey("alt+d")}, keys)

	keys = splitKeys(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, []keymap.Key{keymap.MustParseKey("ctrl+n")}, keys)
}

func TestApp_KeymapReloaded(t *testing.T) {
	a, _ := newTestApp(t, "users")

	km := keymap.Build(keymap.Overrides{
		Main: []keymap.Binding[keymap.MainAction]{
			{Key: keymap.MustParseKey("x"), Action: keymap.MainQuit},
		},
	})
	a.Update(KeymapReloadedMsg{Keymap: km})
	assert.Equal(t, "keybinds reloaded", a.Session().Status())

	_, cmd := a.Update(runes("x"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_KeymapReloadError(t *testing.T) {
	a, _ := newTestApp(t, "users")
	before := a.Session().Keymap()

	a.Update(KeymapReloadedMsg{Err: assert.AnError})
	assert.ErrorIs(t, a.Session().LastError(), assert.AnError)
	assert.Same(t, before, a.Session().Keymap())
}

func TestApp_MouseWheel(t *testing.T) {
	a, _ := newTestApp(t, "users")

	a.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	view, _ := a.Session().ActiveView()
	sel, _ := view.Selected()
	assert.Equal(t, 1, sel)

	a.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	sel, _ = view.Selected()
	assert.Equal(t, 0, sel)
}

func TestApp_View(t *testing.T) {
	a, _ := newTestApp(t, "users", "orders")

	out := a.View()
	assert.Contains(t, out, "sers")
	assert.Contains(t, out, "rders")
	assert.Contains(t, out, "users-1")
	assert.Contains(t, out, "next tab")
	assert.LessOrEqual(t, lipgloss.Height(out), 24)
}

func TestApp_ViewShowsError(t *testing.T) {
	a, _ := newTestApp(t, "users")
	a.Session().SetLastError(assert.AnError)

	assert.Contains(t, a.View(), assert.AnError.Error())

	// The error line is replaced by the input box
	a.Update(runes(":"))
	out := a.View()
	assert.NotContains(t, out, assert.AnError.Error())
	assert.Contains(t, out, "Exec")
}

func TestApp_ViewZoom(t *testing.T) {
	a, _ := newTestApp(t, "users")

	a.Update(runes("z"))
	assert.Contains(t, a.View(), "Zoom")
}

func TestApp_ViewBeforeResize(t *testing.T) {
	src := newFakeSource(t, "users")
	a := NewApp(context.Background(), newTestSession(t, src), theme.GetTheme("default"))
	assert.Equal(t, "Loading...", a.View())
}

func TestHelpBindings(t *testing.T) {
	bindings := helpBindings(keymap.Default(), keymap.Main)
	require.NotEmpty(t, bindings)

	first := bindings[0]
	assert.Equal(t, "j/down", first.Help().Key)
	assert.Equal(t, "down", first.Help().Desc)

	assert.Empty(t, helpBindings(keymap.Default(), keymap.Input))
}

func TestHelpBindings_ZoomLabels(t *testing.T) {
	descs := map[string]string{}
	for _, b := range helpBindings(keymap.Default(), keymap.Zoom) {
		descs[b.Help().Desc] = b.Help().Key
	}

	// zoom in shows fewer columns, zoom out shows more
	assert.Contains(t, descs["fewer"], "i")
	assert.Contains(t, descs["more"], "o")
}
