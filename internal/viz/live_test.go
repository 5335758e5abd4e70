package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pullswitch/internal/config"
	"github.com/san-kum/pullswitch/internal/pull"
)

func newTestModel(t *testing.T) (Model, *pull.Switch) {
	t.Helper()
	cfg := config.DefaultConfig()
	sw, err := pull.New(cfg.PullTuning())
	if err != nil {
		t.Fatalf("new switch: %v", err)
	}
	return NewModel(sw, cfg), sw
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func drag(t *testing.T, m Model, cells int) Model {
	t.Helper()
	m = update(t, m, tea.MouseMsg{X: 10, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 10, Y: 2 + cells, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	return update(t, m, tea.MouseMsg{X: 10, Y: 2 + cells, Action: tea.MouseActionRelease})
}

func TestModelLongDragToggles(t *testing.T) {
	m, sw := newTestModel(t)

	// 25 cells at 16 units per cell is a 400 unit pull
	m = drag(t, m, 25)

	if !sw.Pose().IsOn {
		t.Fatal("expected the switch on after a long pull")
	}
	if m.toggles != 1 {
		t.Errorf("expected 1 toggle, got %d", m.toggles)
	}
	if !strings.Contains(m.View(), "Mode: Dark") {
		t.Error("expected the dark page when on")
	}
}

func TestModelShortDragKeepsMode(t *testing.T) {
	m, sw := newTestModel(t)

	m = drag(t, m, 3)

	if sw.Pose().IsOn {
		t.Error("expected the switch to stay off")
	}
	if !strings.Contains(m.View(), "Mode: Light") {
		t.Error("expected the light page when off")
	}
}

func TestModelIgnoresOtherButtons(t *testing.T) {
	m, sw := newTestModel(t)

	m = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = update(t, m, tea.MouseMsg{X: 1, Y: 30, Action: tea.MouseActionMotion, Button: tea.MouseButtonRight})
	update(t, m, tea.MouseMsg{X: 1, Y: 30, Action: tea.MouseActionRelease})

	if sw.Pose().IsOn || sw.Pose().IsDragging {
		t.Errorf("expected no drag, got %+v", sw.Pose())
	}
}

func TestModelTickSettles(t *testing.T) {
	m, sw := newTestModel(t)
	m = drag(t, m, 25)

	now := time.Now()
	for i := 0; i <= 300; i++ {
		m = update(t, m, TickMsg(now.Add(time.Duration(i)*time.Second/60)))
	}

	if !sw.Pose().AtRest() {
		t.Errorf("expected rest after 5s of ticks, got %+v", sw.Pose())
	}
	if len(m.history) != historyCapacity {
		t.Errorf("expected history capped at %d, got %d", historyCapacity, len(m.history))
	}
}

func TestModelReload(t *testing.T) {
	m, sw := newTestModel(t)

	cfg := config.GetPreset("classic")
	cfg.Sim.Integrator = "rk4"
	m = update(t, m, ReloadMsg{Config: cfg})

	if sw.Tuning().MaxPull != 160 {
		t.Errorf("expected max pull 160, got %f", sw.Tuning().MaxPull)
	}
	if m.integ != "rk4" {
		t.Errorf("expected rk4, got %s", m.integ)
	}
	if m.status != "config reloaded" {
		t.Errorf("expected reload status, got %q", m.status)
	}

	m = update(t, m, ReloadErrMsg{Err: errors.New("bad yaml")})
	if !strings.Contains(m.status, "bad yaml") {
		t.Errorf("expected error status, got %q", m.status)
	}
}

func TestModelCycleIntegrator(t *testing.T) {
	m, _ := newTestModel(t)

	seen := map[string]bool{m.integ: true}
	for i := 0; i < 4; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
		seen[m.integ] = true
	}
	if seen["euler"] {
		t.Error("expected euler to be skipped while cycling")
	}
	if !seen["rk4"] || !seen["semi-implicit"] {
		t.Errorf("expected rk4 and semi-implicit in the cycle, got %v", seen)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	if m.integ != "rk4" {
		t.Errorf("expected rk4 after semi-implicit, got %s", m.integ)
	}
}

func TestModelReloadKeepsSettlingIntegrator(t *testing.T) {
	m, _ := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Sim.Integrator = "euler"
	m = update(t, m, ReloadMsg{Config: cfg})

	if m.integ != "semi-implicit" {
		t.Errorf("expected semi-implicit to remain, got %s", m.integ)
	}
}

func TestModelHelp(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !strings.Contains(m.View(), "PULL SWITCH HELP") {
		t.Error("expected the help overlay")
	}
}

func TestPicker(t *testing.T) {
	p := NewPicker()

	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected quit after selection")
	}
	if got := next.(Picker).Selected; got != config.ListPresets()[1] {
		t.Errorf("expected %s, got %s", config.ListPresets()[1], got)
	}
}
