package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeLight = Theme{
		Name:       "Light",
		Primary:    lipgloss.Color("#303030"),
		Accent:     lipgloss.Color("#0077be"),
		Background: lipgloss.Color("#fafafa"),
		Text:       lipgloss.Color("#1a1a1a"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#b36b00"),
		Error:      lipgloss.Color("#cc0000"),
	}

	ThemeDark = Theme{
		Name:       "Dark",
		Primary:    lipgloss.Color("#d0d0d0"),
		Accent:     lipgloss.Color("#f5c542"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4444"),
	}
)

// ForMode picks the page theme: dark while the switch is on.
func ForMode(isOn bool) Theme {
	if isOn {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) page() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Text)
}

func (t Theme) rope() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Primary)
}

func (t Theme) header() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Accent).Bold(true).MarginBottom(1)
}

func (t Theme) label() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Muted).Width(12)
}

func (t Theme) value() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Text)
}

func (t Theme) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.Background).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Muted).
		BorderBackground(t.Background).
		Padding(1, 2).
		Width(42)
}
