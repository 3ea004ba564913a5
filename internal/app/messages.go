package app

import "github.com/rebeliceyang/lazylite/internal/keymap"

// KeymapReloadedMsg is sent when the config file changed on disk
type KeymapReloadedMsg struct {
	Keymap *keymap.Keymap
	Err    error
}
