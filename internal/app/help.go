package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/rebeliceyang/lazylite/internal/keymap"
)

type helpEntry[A comparable] struct {
	action A
	desc   string
}

var mainHelp = []helpEntry[keymap.MainAction]{
	{keymap.MainNext, "down"},
	{keymap.MainPrev, "up"},
	{keymap.MainNextTab, "next tab"},
	{keymap.MainZoom, "zoom"},
	{keymap.MainOpenQuery, "query"},
	{keymap.MainOpenExec, "exec"},
	{keymap.MainReload, "reload"},
	{keymap.MainYank, "yank"},
	{keymap.MainQuit, "quit"},
}

var zoomHelp = []helpEntry[keymap.ZoomAction]{
	{keymap.ZoomNext, "next"},
	{keymap.ZoomPrev, "prev"},
	{keymap.ZoomIn, "fewer"},
	{keymap.ZoomOut, "more"},
	{keymap.ZoomLeave, "back"},
}

// helpBindings lists the short help for mode using the keys bound in km
func helpBindings(km *keymap.Keymap, mode keymap.Mode) []key.Binding {
	switch mode {
	case keymap.Main:
		return buildBindings(km.Main, mainHelp)
	case keymap.Zoom:
		return buildBindings(km.Zoom, zoomHelp)
	}
	return nil
}

func buildBindings[A comparable](m map[keymap.Key]A, entries []helpEntry[A]) []key.Binding {
	var out []key.Binding
	for _, e := range entries {
		keys := keymap.KeysFor(m, e.action)
		if len(keys) == 0 {
			continue
		}

		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		out = append(out, key.NewBinding(
			key.WithKeys(names...),
			key.WithHelp(strings.Join(names, "/"), e.desc),
		))
	}
	return out
}
