package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default theme: yellow accents on the terminal's own colors
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		Foreground: lipgloss.Color("252"),

		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("220"),

		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		TabAccent: lipgloss.Color("220"),
		TabActive: lipgloss.Color("220"),

		TableHeader:      lipgloss.Color("220"),
		TableRowSelected: lipgloss.Color("220"),
		Null:             lipgloss.Color("244"),
	}
}
