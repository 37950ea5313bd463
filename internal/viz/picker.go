package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/orbital"
)

var presetInfo = map[string]string{
	"solar":   "sun, planets and a 1000-body disk",
	"planets": "catalog only, four years",
	"dense":   "5000-body disk",
	"springs": "spring-anchored disk",
	"fine":    "one-hour steps",
	"ship":    "steerable craft near earth",
}

// Picker is the preset menu shown by `orbsim live` when no preset is given.
// Choosing an entry builds the simulation and hands over to the live view.
type Picker struct {
	presets []string
	cursor  int
	seed    int64
	live    *Model
	err     error
}

func NewPicker(seed int64) Picker {
	return Picker{presets: config.ListPresets(), seed: seed}
}

// Live returns the running view, or nil while the menu is still shown.
func (p Picker) Live() *Model { return p.live }

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
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
		live, err := p.start(p.presets[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

func (p Picker) start(name string) (Model, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return Model{}, fmt.Errorf("unknown preset %q", name)
	}
	cfg.Seed = p.seed
	mode, err := cfg.ForceModel()
	if err != nil {
		return Model{}, err
	}
	sim, err := orbital.New(cfg.TimeStep, cfg.Options()...)
	if err != nil {
		return Model{}, err
	}
	return NewModel(sim, mode, cfg.SubSteps, cfg.FPS), nil
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBSIM") + "\n")
	for i, name := range p.presets {
		line := fmt.Sprintf("%-10s %s", name, presetInfo[name])
		if i == p.cursor {
			s.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + dimStyle.Render(line) + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + statusError.Render(p.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("↑↓:Select Enter:Start Q:Quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}
