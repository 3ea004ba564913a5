// Package keymap maps physical keys to semantic actions, one table per mode.
package keymap

import (
	"sort"
)

// Binding pairs a key with an action, as read from the config file
type Binding[A any] struct {
	Key    Key `mapstructure:"key" yaml:"key"`
	Action A   `mapstructure:"action" yaml:"action"`
}

// Overrides are per-mode bindings applied on top of the defaults, in order
type Overrides struct {
	Main  []Binding[MainAction]  `mapstructure:"main" yaml:"main"`
	Zoom  []Binding[ZoomAction]  `mapstructure:"zoom" yaml:"zoom"`
	Input []Binding[InputAction] `mapstructure:"input" yaml:"input"`
}

// Keymap holds the key tables for Main, Zoom and Input modes
type Keymap struct {
	Main  map[Key]MainAction
	Zoom  map[Key]ZoomAction
	Input map[Key]InputAction
}

// DefaultOverrides returns the built-in bindings in the config file's shape
func DefaultOverrides() Overrides {
	return Overrides{
		Main: bindings([]keyAction[MainAction]{
			{"up", MainPrev}, {"k", MainPrev},
			{"down", MainNext}, {"j", MainNext},
			{"left", MainScrollLeft}, {"h", MainScrollLeft},
			{"right", MainScrollRight}, {"l", MainScrollRight},
			{"home", MainFirst}, {"g", MainFirst},
			{"end", MainLast}, {"G", MainLast},
			{"ctrl+n", MainNextTab}, {"tab", MainNextTab},
			{"ctrl+p", MainPrevTab}, {"shift+tab", MainPrevTab},
			{"L", MainLastTab},
			{"r", MainReload},
			{"enter", MainZoom}, {"z", MainZoom},
			{"/", MainOpenQuery},
			{":", MainOpenExec},
			{"y", MainYank},
			{"e", MainExport},
			{"q", MainQuit}, {"ctrl+c", MainQuit},
		}),
		Zoom: bindings([]keyAction[ZoomAction]{
			{"esc", ZoomLeave}, {"q", ZoomLeave},
			{"i", ZoomIn}, {"+", ZoomIn},
			{"o", ZoomOut}, {"-", ZoomOut},
			{"l", ZoomNext}, {"right", ZoomNext},
			{"h", ZoomPrev}, {"left", ZoomPrev},
		}),
		Input: bindings([]keyAction[InputAction]{
			{"esc", InputLeave},
			{"enter", InputSubmit},
			{"left", InputPrevChar}, {"ctrl+b", InputPrevChar},
			{"right", InputNextChar}, {"ctrl+f", InputNextChar},
			{"alt+b", InputPrevWord}, {"ctrl+left", InputPrevWord},
			{"alt+f", InputNextWord}, {"ctrl+right", InputNextWord},
			{"home", InputStart}, {"ctrl+a", InputStart},
			{"end", InputEnd}, {"ctrl+e", InputEnd},
			{"backspace", InputDeletePrevChar}, {"ctrl+h", InputDeletePrevChar},
			{"delete", InputDeleteNextChar}, {"ctrl+d", InputDeleteNextChar},
			{"ctrl+w", InputDeletePrevWord}, {"alt+backspace", InputDeletePrevWord},
			{"alt+d", InputDeleteNextWord},
			{"ctrl+u", InputDeleteLine},
			{"ctrl+k", InputDeleteTillEnd},
		}),
	}
}

// keyAction is one default binding before its key is parsed
type keyAction[A any] struct {
	key    string
	action A
}

// bindings parses the keys of a default table
func bindings[A any](pairs []keyAction[A]) []Binding[A] {
	out := make([]Binding[A], 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Binding[A]{Key: MustParseKey(p.key), Action: p.action})
	}
	return out
}

// Default returns the built-in keymap
func Default() *Keymap {
	return Build(Overrides{})
}

// Build returns the defaults with o applied on top.
// Later bindings for the same key replace earlier ones.
func Build(o Overrides) *Keymap {
	d := DefaultOverrides()
	return &Keymap{
		Main:  apply(d.Main, o.Main),
		Zoom:  apply(d.Zoom, o.Zoom),
		Input: apply(d.Input, o.Input),
	}
}

func apply[A any](lists ...[]Binding[A]) map[Key]A {
	m := make(map[Key]A)
	for _, list := range lists {
		for _, b := range list {
			m[b.Key] = b.Action
		}
	}
	return m
}

// LookupMain returns the Main action bound to k
func (km *Keymap) LookupMain(k Key) (MainAction, bool) {
	a, ok := km.Main[k]
	return a, ok
}

// LookupZoom returns the Zoom action bound to k
func (km *Keymap) LookupZoom(k Key) (ZoomAction, bool) {
	a, ok := km.Zoom[k]
	return a, ok
}

// LookupInput returns the Input action bound to k
func (km *Keymap) LookupInput(k Key) (InputAction, bool) {
	a, ok := km.Input[k]
	return a, ok
}

// KeysFor returns every key bound to a, sorted for display
func KeysFor[A comparable](m map[Key]A, a A) []Key {
	var keys []Key
	for k, bound := range m {
		if bound == a {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		// Single characters first so "j" is shown before "down"
		li, lj := len(keys[i].String()), len(keys[j].String())
		if li != lj {
			return li < lj
		}
		return keys[i].String() < keys[j].String()
	})
	return keys
}
