package reporter

import "github.com/charmbracelet/lipgloss"

// Theme defines colors and icons for terminal reporting.
type Theme struct {
	Name    string
	Label   lipgloss.Style
	Subject lipgloss.Style
	Success lipgloss.Style
	Stub    lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Pass string
	Fail string
	Stub string
	Run  string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Subject: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Stub:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")), // yellow
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Pass: "✓",
			Fail: "✗",
			Stub: "○",
			Run:  "●",
		},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Subject: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Stub:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")), // sand
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // lighter gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Pass: "✓",
			Fail: "✗",
			Stub: "○",
			Run:  "·",
		},
	}
}

// MonoTheme returns a monochrome theme (no colors).
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Label:   lipgloss.NewStyle(),
		Subject: lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Stub:    lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Pass: "+",
			Fail: "x",
			Stub: "-",
			Run:  "*",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
// NO_COLOR is resolved by internal/config, which selects "mono".
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
