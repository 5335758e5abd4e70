package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pullswitch/internal/config"
)

var (
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Picker is a preset menu shown before the live switch starts.
type Picker struct {
	presets  []string
	cursor   int
	Selected string
}

func NewPicker() Picker {
	return Picker{presets: config.ListPresets()}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.Selected = p.presets[p.cursor]
		return p, tea.Quit
	}
	return p, nil
}

func (p Picker) View() string {
	var s strings.Builder
	s.WriteString(cyan.Bold(true).Render("pullswitch") + dim.Render("  choose a preset") + "\n\n")
	for i, name := range p.presets {
		line := name + strings.Repeat(" ", 10-len(name)) + dim.Render(config.DescribePreset(name))
		if i == p.cursor {
			s.WriteString(cyan.Render("> ") + white.Render(line) + "\n")
		} else {
			s.WriteString("  " + dim.Render(line) + "\n")
		}
	}
	s.WriteString("\n" + dim.Render("↑↓ select  enter start  q quit"))
	return s.String()
}

// Pick runs the menu and returns the chosen preset, or "" if the user quit.
func Pick() (string, error) {
	final, err := tea.NewProgram(NewPicker()).Run()
	if err != nil {
		return "", err
	}
	return final.(Picker).Selected, nil
}
