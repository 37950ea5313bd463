package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/orbital"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got, want := c.Grid[0][0], rune(0x2800|0x1|0x80); got != want {
		t.Errorf("cell 0 = %U, want %U", got, want)
	}
	if c.Grid[0][1] != blank {
		t.Errorf("cell 1 touched: %U", c.Grid[0][1])
	}

	c.Clear()
	if strings.TrimSpace(c.String()) != string([]rune{blank, blank}) {
		t.Errorf("clear left %q", c.String())
	}
}

func TestCanvasPlotBlends(t *testing.T) {
	c := NewCanvas(1, 1)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	c.Plot(0, 0, red)
	if c.Colors[0][0] != red {
		t.Fatalf("first plot should set color, got %v", c.Colors[0][0])
	}
	c.Plot(1, 1, blue)
	got := c.Colors[0][0]
	if got == red || got == blue {
		t.Errorf("shared cell should blend, got %v", got)
	}
}

func TestCanvasRenderKeepsGlyphs(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Disc(3, 3, 1, colorful.Color{G: 1})
	inked := 0
	for _, r := range c.String() {
		if r != blank && r != '\n' {
			inked++
		}
	}
	if inked == 0 {
		t.Fatal("disc drew nothing")
	}
	if strings.Count(c.Render(), "\n") != 2 {
		t.Errorf("expected 2 rendered rows")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()
	cam.Span = 100

	tests := []struct {
		name   string
		p      r3.Vec
		x, y   int
		onView bool
	}{
		{"origin at centre", r3.Vec{}, 80, 40, true},
		{"x to the right", r3.Vec{X: 50}, 100, 40, true},
		{"z downward", r3.Vec{Z: 50}, 80, 60, true},
		{"y ignored looking down", r3.Vec{Y: 1e6}, 80, 40, true},
		{"outside span", r3.Vec{X: 1000}, 480, 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := cam.Project(tt.p, r3.Vec{}, 160, 80)
			if x != tt.x || y != tt.y || ok != tt.onView {
				t.Errorf("got (%d, %d, %v), want (%d, %d, %v)", x, y, ok, tt.x, tt.y, tt.onView)
			}
		})
	}
}

func TestCameraCenterAndZoom(t *testing.T) {
	cam := NewCamera()
	cam.Span = 1e10
	x, y, _ := cam.Project(r3.Vec{X: 10, Z: 10}, r3.Vec{X: 10, Z: 10}, 160, 80)
	if x != 80 || y != 40 {
		t.Errorf("centre body should project to the middle, got (%d, %d)", x, y)
	}

	cam.ZoomIn()
	if cam.Span >= 1e10 {
		t.Errorf("zoom in should shrink span, got %g", cam.Span)
	}
	for i := 0; i < 500; i++ {
		cam.ZoomIn()
	}
	if cam.Span != minSpan {
		t.Errorf("span should clamp at %g, got %g", minSpan, cam.Span)
	}
	for i := 0; i < 500; i++ {
		cam.ZoomOut()
	}
	if cam.Span != maxSpan {
		t.Errorf("span should clamp at %g, got %g", maxSpan, cam.Span)
	}
}

func TestCameraZoomOutsideLimits(t *testing.T) {
	tests := []struct {
		name string
		span float64
		zoom func(*Camera)
	}{
		{"zoom in below min", 100, (*Camera).ZoomIn},
		{"zoom out above max", 1e16, (*Camera).ZoomOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := &Camera{Span: tt.span}
			tt.zoom(cam)
			if cam.Span != tt.span {
				t.Errorf("span moved from %g to %g", tt.span, cam.Span)
			}
		})
	}
}

func TestCameraTiltShowsHeight(t *testing.T) {
	cam := NewCamera()
	cam.Span = 100
	cam.Tilt(0.5)
	_, y, _ := cam.Project(r3.Vec{Y: 50}, r3.Vec{}, 160, 80)
	if y == 40 {
		t.Error("tilted view should displace points above the plane")
	}
}

func newTestModel(t *testing.T, opts ...orbital.Option) Model {
	t.Helper()
	opts = append([]orbital.Option{orbital.WithFieldBodies(20), orbital.WithSeed(1)}, opts...)
	sim, err := orbital.New(3600, opts...)
	if err != nil {
		t.Fatalf("orbital.New: %v", err)
	}
	return NewModel(sim, orbital.Gravity, 5, 60)
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAdvancesSubSteps(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)

	if cmd == nil {
		t.Error("tick should schedule the next frame")
	}
	if got := m.Sim().Steps(); got != 5 {
		t.Errorf("expected 5 steps per frame, got %d", got)
	}
	if len(m.DriftHistory()) != 1 {
		t.Errorf("expected one drift sample, got %d", len(m.DriftHistory()))
	}
}

func TestModelPauseAndModeToggle(t *testing.T) {
	m := newTestModel(t)

	m = press(m, runes(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.Sim().Steps() != 0 {
		t.Errorf("paused model stepped %d times", m.Sim().Steps())
	}

	m = press(m, runes("m"))
	if m.Mode() != orbital.Springs {
		t.Errorf("expected springs after toggle, got %v", m.Mode())
	}
	m = press(m, runes("m"))
	if m.Mode() != orbital.Gravity {
		t.Errorf("expected gravity after second toggle, got %v", m.Mode())
	}
}

func TestModelSteersShip(t *testing.T) {
	m := newTestModel(t, orbital.WithShip(body.NewShip(r3.Vec{X: 1.5e11}, r3.Vec{Z: 3e4}, 1e5)))

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	next, _ := m.Update(TickMsg{})
	m = next.(Model)

	ship, ok := m.Sim().Ship()
	if !ok {
		t.Fatal("ship missing")
	}
	if ship.Orientation.X <= 0 {
		t.Errorf("down arrow should pitch up, got %g", ship.Orientation.X)
	}

	// input is released after one frame
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	ship, _ = m.Sim().Ship()
	before := ship.Orientation.X
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	ship, _ = m.Sim().Ship()
	if ship.Orientation.X >= before {
		t.Errorf("released pitch should recover, %g -> %g", before, ship.Orientation.X)
	}
}

func TestModelHaltsOnClosedSim(t *testing.T) {
	m := newTestModel(t)
	m.Sim().Close()

	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.Running() {
		t.Error("model should stop after a step error")
	}
	if !errors.Is(m.Err(), orbital.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", m.Err())
	}
}

func TestModelFollowCycles(t *testing.T) {
	m := newTestModel(t)
	n := m.Sim().Primary()
	for i := 0; i < n; i++ {
		m = press(m, runes("f"))
		if m.Camera().Follow != i {
			t.Fatalf("follow = %d, want %d", m.Camera().Follow, i)
		}
	}
	m = press(m, runes("f"))
	if m.Camera().Follow != -1 {
		t.Errorf("follow should wrap to -1, got %d", m.Camera().Follow)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(TickMsg{})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"ORBSIM", "2022-01-01", "gravity", "Sun"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPickerStartsPreset(t *testing.T) {
	p := NewPicker(7)
	for i, name := range p.presets {
		if name == "planets" {
			p.cursor = i
		}
	}

	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(Picker)
	if p.Live() == nil {
		t.Fatalf("enter should start the live view, err=%v", p.err)
	}
	if cmd == nil {
		t.Error("starting should schedule a tick")
	}
	if got := p.Live().Sim().Len(); got != len(body.SolarSystem) {
		t.Errorf("planets preset should have no field, got %d bodies", got)
	}

	next, _ = p.Update(TickMsg{})
	p = next.(Picker)
	if p.Live().Sim().Steps() == 0 {
		t.Error("ticks should reach the live view")
	}
}
