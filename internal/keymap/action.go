package keymap

import "fmt"

// Mode is the active interaction context
type Mode int

const (
	Main Mode = iota
	Zoom
	Input
	// Visual is reserved and has no bindings
	Visual
)

func (m Mode) String() string {
	switch m {
	case Main:
		return "main"
	case Zoom:
		return "zoom"
	case Input:
		return "input"
	case Visual:
		return "visual"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MainAction is an action bound in Main mode
type MainAction int

const (
	MainNext MainAction = iota
	MainPrev
	MainScrollRight
	MainScrollLeft
	MainFirst
	MainLast
	MainNextTab
	MainPrevTab
	MainLastTab
	MainReload
	MainZoom
	MainOpenQuery
	MainOpenExec
	MainYank
	MainExport
	MainQuit
)

var mainActionNames = []string{
	MainNext:        "next",
	MainPrev:        "prev",
	MainScrollRight: "scroll_right",
	MainScrollLeft:  "scroll_left",
	MainFirst:       "first",
	MainLast:        "last",
	MainNextTab:     "next_tab",
	MainPrevTab:     "prev_tab",
	MainLastTab:     "last_tab",
	MainReload:      "reload",
	MainZoom:        "zoom",
	MainOpenQuery:   "open_query",
	MainOpenExec:    "open_exec",
	MainYank:        "yank",
	MainExport:      "export",
	MainQuit:        "quit",
}

func (a MainAction) String() string { return actionName(mainActionNames, int(a)) }

// MainActions lists every Main action in declaration order
func MainActions() []MainAction { return allActions[MainAction](mainActionNames) }

// MarshalText implements encoding.TextMarshaler
func (a MainAction) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (a *MainAction) UnmarshalText(text []byte) error {
	return parseAction(mainActionNames, Main, string(text), a)
}

// ZoomAction is an action bound in Zoom mode
type ZoomAction int

const (
	ZoomLeave ZoomAction = iota
	ZoomIn
	ZoomOut
	ZoomNext
	ZoomPrev
)

var zoomActionNames = []string{
	ZoomLeave: "leave",
	ZoomIn:    "zoom_in",
	ZoomOut:   "zoom_out",
	ZoomNext:  "next",
	ZoomPrev:  "prev",
}

func (a ZoomAction) String() string { return actionName(zoomActionNames, int(a)) }

// ZoomActions lists every Zoom action in declaration order
func ZoomActions() []ZoomAction { return allActions[ZoomAction](zoomActionNames) }

// MarshalText implements encoding.TextMarshaler
func (a ZoomAction) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (a *ZoomAction) UnmarshalText(text []byte) error {
	return parseAction(zoomActionNames, Zoom, string(text), a)
}

// InputAction is an action bound in Input mode
type InputAction int

const (
	InputLeave InputAction = iota
	InputSubmit
	InputPrevChar
	InputNextChar
	InputPrevWord
	InputNextWord
	InputStart
	InputEnd
	InputDeletePrevChar
	InputDeleteNextChar
	InputDeletePrevWord
	InputDeleteNextWord
	InputDeleteLine
	InputDeleteTillEnd
)

var inputActionNames = []string{
	InputLeave:          "leave",
	InputSubmit:         "submit",
	InputPrevChar:       "prev_char",
	InputNextChar:       "next_char",
	InputPrevWord:       "prev_word",
	InputNextWord:       "next_word",
	InputStart:          "start",
	InputEnd:            "end",
	InputDeletePrevChar: "delete_prev_char",
	InputDeleteNextChar: "delete_next_char",
	InputDeletePrevWord: "delete_prev_word",
	InputDeleteNextWord: "delete_next_word",
	InputDeleteLine:     "delete_line",
	InputDeleteTillEnd:  "delete_till_end",
}

func (a InputAction) String() string { return actionName(inputActionNames, int(a)) }

// InputActions lists every Input action in declaration order
func InputActions() []InputAction { return allActions[InputAction](inputActionNames) }

// MarshalText implements encoding.TextMarshaler
func (a InputAction) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (a *InputAction) UnmarshalText(text []byte) error {
	return parseAction(inputActionNames, Input, string(text), a)
}

func actionName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("action(%d)", i)
}

func allActions[A ~int](names []string) []A {
	out := make([]A, len(names))
	for i := range names {
		out[i] = A(i)
	}
	return out
}

func parseAction[A ~int](names []string, mode Mode, s string, dst *A) error {
	for i, name := range names {
		if name == s {
			*dst = A(i)
			return nil
		}
	}
	return fmt.Errorf("unknown %s action %q", mode, s)
}
