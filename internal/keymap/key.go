package keymap

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Modifier is a set of held modifier keys
type Modifier uint8

const (
	Ctrl Modifier = 1 << iota
	Alt
	Shift
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{Ctrl, "ctrl"},
	{Alt, "alt"},
	{Shift, "shift"},
}

// Key is a physical key plus the modifiers held with it.
// Code is either a single printable character ("j", "G", "+", " ") or a
// named key as bubbletea spells it ("enter", "esc", "up", "tab", "f1").
type Key struct {
	Code string
	Mod  Modifier
}

// ParseKey parses strings such as "j", "ctrl+n", "shift+tab" or "alt++"
func ParseKey(s string) (Key, error) {
	if s == "" {
		return Key{}, fmt.Errorf("empty key")
	}

	var k Key
	rest := s
	for {
		i := strings.Index(rest, "+")
		// A leading or lone "+" is the plus key itself
		if i <= 0 || i == len(rest)-1 {
			break
		}

		mod, ok := lookupModifier(rest[:i])
		if !ok {
			return Key{}, fmt.Errorf("unknown modifier %q in key %q", rest[:i], s)
		}
		k.Mod |= mod
		rest = rest[i+1:]
	}

	k.Code = rest
	return k, nil
}

// MustParseKey is ParseKey for built-in tables
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func lookupModifier(name string) (Modifier, bool) {
	for _, m := range modifierNames {
		if strings.EqualFold(m.name, name) {
			return m.mod, true
		}
	}
	return 0, false
}

// String renders the key the way ParseKey reads it
func (k Key) String() string {
	var b strings.Builder
	for _, m := range modifierNames {
		if k.Mod&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(k.Code)
	return b.String()
}

// MarshalText implements encoding.TextMarshaler
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Printable reports whether the key inserts text when typed into a line
func (k Key) Printable() bool {
	if k.Mod&(Ctrl|Alt) != 0 || k.Code == "" {
		return false
	}
	if k.Code == " " {
		return true
	}
	for _, r := range k.Code {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return len([]rune(k.Code)) == 1
}

// FromKeyMsg converts a bubbletea key event into a Key
func FromKeyMsg(msg tea.KeyMsg) Key {
	var alt Modifier
	if msg.Alt {
		alt = Alt
	}

	switch msg.Type {
	case tea.KeyRunes:
		return Key{Code: string(msg.Runes), Mod: alt}
	case tea.KeySpace:
		return Key{Code: " ", Mod: alt}
	}

	// Named keys: let bubbletea spell them, then split off ctrl/shift
	name := tea.Key{Type: msg.Type}.String()
	k, err := ParseKey(name)
	if err != nil {
		return Key{Code: name, Mod: alt}
	}
	k.Mod |= alt
	return k
}
