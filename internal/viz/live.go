package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/craft"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbital"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	au              = 1.495978707e11
)

type TickMsg time.Time

// Model is the live view: it owns the host loop that steps the simulation
// a fixed number of times per frame and feeds the arrow keys to the ship.
type Model struct {
	sim      *orbital.Sim
	mode     orbital.Mode
	subSteps int
	fps      int

	running bool
	err     error
	input   craft.Input

	canvas *Canvas
	camera *Camera
	frame  []body.Body

	energy0 float64
	drift   []float64
}

// NewModel wraps sim. subSteps is the number of simulation steps per frame.
func NewModel(sim *orbital.Sim, mode orbital.Mode, subSteps, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	if subSteps <= 0 {
		subSteps = 1
	}
	m := Model{
		sim:      sim,
		mode:     mode,
		subSteps: subSteps,
		fps:      fps,
		running:  true,
		canvas:   NewCanvas(width, height),
		camera:   NewCamera(),
		drift:    make([]float64, 0, historyCapacity),
	}
	m.frame = sim.Bodies(nil)
	m.energy0 = metrics.Energy(m.frame, sim.Primary())
	return m
}

func (m Model) Sim() *orbital.Sim       { return m.sim }
func (m Model) Mode() orbital.Mode      { return m.mode }
func (m Model) Running() bool           { return m.running }
func (m Model) Err() error              { return m.err }
func (m Model) Camera() Camera          { return *m.camera }
func (m Model) DriftHistory() []float64 { return m.drift }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "m":
			m.mode = m.mode.Toggle()
		case "up":
			m.input.Up = true
		case "down":
			m.input.Down = true
		case "left":
			m.input.Left = true
		case "right":
			m.input.Right = true
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.camera.Tilt(0.1)
		case "T":
			m.camera.Tilt(-0.1)
		case "f":
			m.cycleFollow()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step runs one frame. Key repeat delivers held arrows as a stream of
// presses, so the input latch only lasts until the next frame.
func (m *Model) step() {
	err := m.sim.Advance(m.mode, m.subSteps)
	if err == nil {
		err = m.sim.Validate()
	}
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.sim.SteerShip(m.input, 1/float64(m.fps))
	m.input = craft.Input{}

	m.frame = m.sim.Bodies(m.frame[:0])
	if m.energy0 != 0 {
		e := metrics.Energy(m.frame, m.sim.Primary())
		m.drift = append(m.drift, (e-m.energy0)/math.Abs(m.energy0))
		if len(m.drift) > historyCapacity {
			m.drift = m.drift[1:]
		}
	}
}

func (m *Model) cycleFollow() {
	n := m.sim.Primary()
	if n == 0 {
		return
	}
	m.camera.Follow++
	if m.camera.Follow >= n {
		m.camera.Follow = -1
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	cw, ch := m.canvas.Width*2, m.canvas.Height*4

	var center r3.Vec
	if f := m.camera.Follow; f >= 0 && f < len(m.frame) {
		center = m.frame[f].Position
	}

	primary := m.sim.Primary()
	for i := len(m.frame) - 1; i >= 0; i-- {
		b := m.frame[i]
		x, y, ok := m.camera.Project(b.Position, center, cw, ch)
		if !ok {
			continue
		}
		clr := toColorful(b.Color)
		if i >= primary {
			m.canvas.Plot(x, y, dimmed(clr, fieldDim))
			continue
		}
		r := 1
		if i == m.sim.Anchor() {
			r = 2
		}
		m.canvas.Disc(x, y, r, clr)
	}

	if ship, ok := m.sim.Ship(); ok {
		if x, y, ok := m.camera.Project(ship.Position, center, cw, ch); ok {
			m.canvas.DrawLine(x-2, y, x+2, y, shipColor)
			m.canvas.DrawLine(x, y-2, x, y+2, shipColor)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBSIM") + "\n")
	switch {
	case m.err != nil:
		s.WriteString(statusError.Render("HALTED") + "\n" + dimStyle.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Date", m.sim.Date())
	row("Model", m.mode.String())
	row("Bodies", fmt.Sprintf("%d (%d field)", m.sim.Len(), m.sim.Len()-m.sim.Primary()))
	row("View", fmt.Sprintf("%.2f AU", m.camera.Span/au))
	if f := m.camera.Follow; f >= 0 && f < len(m.frame) {
		row("Follow", m.frame[f].Name)
	}
	if ship, ok := m.sim.Ship(); ok {
		row("Pitch", fmt.Sprintf("%+.1f°", ship.Orientation.X))
		row("Roll", fmt.Sprintf("%+.1f°", ship.Orientation.Z))
	}

	if len(m.drift) > 1 {
		chart := asciigraph.Plot(m.drift, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy drift"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n")
	for i := 0; i < m.sim.Primary() && i < len(m.frame); i++ {
		s.WriteString(swatch(m.frame[i].Color, "●") + " " + m.frame[i].Name + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause M:Model Q:Quit\n+/-:Zoom T:Tilt F:Follow\n←↑↓→:Steer"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
