package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pullswitch/internal/config"
	"github.com/san-kum/pullswitch/internal/integrators"
	"github.com/san-kum/pullswitch/internal/pull"
	"github.com/san-kum/pullswitch/internal/rope"
)

const (
	canvasWidth     = 28
	canvasHeight    = 30
	historyCapacity = 180
	ropeSamples     = 40
)

type TickMsg time.Time

// ReloadMsg carries a configuration re-read from disk.
type ReloadMsg struct{ Config *config.Config }

type ReloadErrMsg struct{ Err error }

// Model hosts a switch in the terminal. Mouse drags become drag events with
// cell deltas scaled to layout units.
type Model struct {
	sw       *pull.Switch
	geom     rope.Geometry
	display  config.DisplayConfig
	watcher  *config.Watcher
	canvas   *Canvas
	history  []float64
	integ    string
	status   string
	toggles  int
	lastOn   bool
	showHelp bool

	dragging       bool
	startX, startY int

	width, height int
}

func NewModel(sw *pull.Switch, cfg *config.Config) Model {
	integ := cfg.Sim.Integrator
	if integ == "" {
		integ = integrators.Default
	}
	return Model{
		sw:      sw,
		geom:    cfg.RopeGeometry(),
		display: cfg.Display,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		history: make([]float64, 0, historyCapacity),
		integ:   integ,
		lastOn:  sw.Pose().IsOn,
	}
}

// WithWatcher makes the model apply configs delivered by w.
func (m Model) WithWatcher(w *config.Watcher) Model {
	m.watcher = w
	return m
}

func (m Model) tick() tea.Cmd {
	fps := m.display.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitForReload(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return nil
			}
			return ReloadMsg{Config: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ReloadErrMsg{Err: err}
		}
	}
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return tea.Batch(m.tick(), waitForReload(m.watcher))
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "i":
			m.cycleIntegrator()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		m.handleMouse(msg)
		m.observe()
	case TickMsg:
		m.sw.Tick(time.Time(msg))
		m.observe()
		m.record()
		return m, m.tick()
	case ReloadMsg:
		m.apply(msg.Config)
		return m, waitForReload(m.watcher)
	case ReloadErrMsg:
		m.status = "reload failed: " + msg.Err.Error()
		return m, waitForReload(m.watcher)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.dragging = true
		m.startX, m.startY = msg.X, msg.Y
		m.sw.DragBegin()
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		dx := float64(msg.X-m.startX) * m.display.CellX
		dy := float64(msg.Y-m.startY) * m.display.CellY
		m.sw.DragChange(dx, dy)
	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		m.sw.DragEnd()
	}
}

func (m *Model) observe() {
	on := m.sw.Pose().IsOn
	if on != m.lastOn {
		m.toggles++
		m.lastOn = on
	}
}

func (m *Model) record() {
	m.history = append(m.history, m.sw.Pose().KnobY())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) cycleIntegrator() {
	names := integrators.Interactive()
	next := names[0]
	for i, name := range names {
		if name == m.integ {
			next = names[(i+1)%len(names)]
			break
		}
	}
	integ, err := integrators.ForHost(next)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.sw.SetIntegrator(integ)
	m.integ = next
	m.status = "integrator: " + next
}

func (m *Model) apply(cfg *config.Config) {
	if err := m.sw.SetTuning(cfg.PullTuning()); err != nil {
		m.status = "reload failed: " + err.Error()
		return
	}
	if integ, err := integrators.ForHost(cfg.Sim.Integrator); err == nil {
		m.sw.SetIntegrator(integ)
		m.integ = cfg.Sim.Integrator
		if m.integ == "" {
			m.integ = integrators.Default
		}
	}
	m.geom = cfg.RopeGeometry()
	m.display = cfg.Display
	m.status = "config reloaded"
}

func (m *Model) projection() Projection {
	return Projection{
		OriginX: m.canvas.Width,
		OriginY: 2,
		UnitX:   m.display.CellX / 2,
		UnitY:   m.display.CellY / 4,
	}
}

func (m *Model) draw(p pull.Pose) {
	m.canvas.Clear()
	proj := m.projection()
	m.canvas.DrawPolyline(m.geom.Curve(p).Sample(ropeSamples), proj)
	m.canvas.FillCircle(m.geom.Knob(p), m.geom.KnobSize/2, proj)
}

func (m Model) View() string {
	p := m.sw.Pose()
	theme := ForMode(p.IsOn)
	m.draw(p)

	var s strings.Builder
	s.WriteString(theme.header().Render("PULL SWITCH") + "\n")
	s.WriteString(theme.value().Render("Mode: "+theme.Name) + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("knob offset"))
		s.WriteString(theme.value().Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(theme.label().Render(label) + theme.value().Render(value) + "\n")
	}
	row("Vertical", fmt.Sprintf("%.1f", p.VerticalOffset))
	row("Lateral", fmt.Sprintf("%.1f", p.LateralOffset))
	row("Bounce", fmt.Sprintf("%.1f", p.Bounce))
	row("Integrator", m.integ)
	row("Toggles", fmt.Sprintf("%d", m.toggles))
	if p.IsDragging {
		row("Pull", "dragging")
	}
	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Warning).Background(theme.Background).Render(m.status) + "\n")
	}
	s.WriteString(theme.label().Width(0).Render("\n─────────────────────\nDrag the cord  I:Integrator\n?:Help  Q:Quit"))

	canvasView := theme.rope().Padding(1, 2).Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, theme.panel().Render(s.String()))
	if m.showHelp {
		mainView = helpText + "\n\n" + mainView
	}

	page := theme.page()
	if m.width > 0 && m.height > 0 {
		page = page.Width(m.width).Height(m.height)
	}
	return page.Render(mainView)
}

const helpText = `
╔══════════════════════════════════════╗
║            PULL SWITCH HELP          ║
╠══════════════════════════════════════╣
║  Drag     - Pull the cord down       ║
║  Release  - Let go; a long pull      ║
║             flips light/dark         ║
║  I        - Cycle integrators        ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
