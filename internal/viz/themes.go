package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a TUI colour scheme.
type Theme struct {
	Name      string
	Sand      lipgloss.Color
	Plate     lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Running   lipgloss.Color
	Paused    lipgloss.Color
	Sweeping  lipgloss.Color
	Border    lipgloss.Color
	Highlight lipgloss.Color
}

var (
	ThemeSand = Theme{
		Name:      "sand",
		Sand:      lipgloss.Color("#e8d5a3"),
		Plate:     lipgloss.Color("#8c6a3f"),
		Accent:    lipgloss.Color("#ffb347"),
		Text:      lipgloss.Color("#f5efe0"),
		Muted:     lipgloss.Color("#7a6f5d"),
		Running:   lipgloss.Color("#9ccc65"),
		Paused:    lipgloss.Color("#ffb300"),
		Sweeping:  lipgloss.Color("#4fc3f7"),
		Border:    lipgloss.Color("#5d4e37"),
		Highlight: lipgloss.Color("#3a2f22"),
	}

	ThemeBrass = Theme{
		Name:      "brass",
		Sand:      lipgloss.Color("#fff3c4"),
		Plate:     lipgloss.Color("#b5a642"),
		Accent:    lipgloss.Color("#ffd54f"),
		Text:      lipgloss.Color("#fffde7"),
		Muted:     lipgloss.Color("#8d8155"),
		Running:   lipgloss.Color("#c5e1a5"),
		Paused:    lipgloss.Color("#ffca28"),
		Sweeping:  lipgloss.Color("#80deea"),
		Border:    lipgloss.Color("#6d6330"),
		Highlight: lipgloss.Color("#33301a"),
	}

	ThemeInk = Theme{
		Name:      "ink",
		Sand:      lipgloss.Color("#ffffff"),
		Plate:     lipgloss.Color("#888888"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#eeeeee"),
		Muted:     lipgloss.Color("#666666"),
		Running:   lipgloss.Color("#00cc66"),
		Paused:    lipgloss.Color("#ffaa00"),
		Sweeping:  lipgloss.Color("#00aaff"),
		Border:    lipgloss.Color("#444444"),
		Highlight: lipgloss.Color("#222222"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Sand:      lipgloss.Color("#33ff33"),
		Plate:     lipgloss.Color("#00aa00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Running:   lipgloss.Color("#88ff88"),
		Paused:    lipgloss.Color("#ffff00"),
		Sweeping:  lipgloss.Color("#00ffcc"),
		Border:    lipgloss.Color("#004400"),
		Highlight: lipgloss.Color("#001a00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Sand:      lipgloss.Color("#e0f0ff"),
		Plate:     lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Running:   lipgloss.Color("#00ff88"),
		Paused:    lipgloss.Color("#ffcc00"),
		Sweeping:  lipgloss.Color("#00a8cc"),
		Border:    lipgloss.Color("#1f4e6e"),
		Highlight: lipgloss.Color("#001a33"),
	}

	DefaultTheme = ThemeSand

	Themes = []Theme{ThemeSand, ThemeBrass, ThemeInk, ThemePhosphor, ThemeOcean}
)

// GetTheme returns the named theme, or DefaultTheme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return DefaultTheme
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return DefaultTheme
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
