package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the terminal view. Bodies keep their own
// colors; the theme covers walls, text and the energy chart.
type Theme struct {
	Name   string
	Header lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Wall   lipgloss.Color
	Graph  lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Header: lipgloss.Color("86"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
		Accent: lipgloss.Color("205"),
		Wall:   lipgloss.Color("#808080"),
		Graph:  lipgloss.Color("49"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Header: lipgloss.Color("#00ff00"),
		Label:  lipgloss.Color("#00cc00"),
		Value:  lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#ffff00"),
		Wall:   lipgloss.Color("#00aa00"),
		Graph:  lipgloss.Color("#00ff00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Header: lipgloss.Color("#00a8cc"),
		Label:  lipgloss.Color("#4488aa"),
		Value:  lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#335566"),
		Accent: lipgloss.Color("#ffd700"),
		Wall:   lipgloss.Color("#0077be"),
		Graph:  lipgloss.Color("#00ff88"),
	}

	Themes = []Theme{ThemeClassic, ThemeRetro, ThemeOcean}
)

// GetTheme returns the named theme, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
