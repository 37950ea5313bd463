package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	statusError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var (
	shipColor = colorful.Color{R: 1, G: 1, B: 1}
	// Field bodies are drawn darker than their catalog gray so the planets
	// stay readable in a dense disk.
	fieldDim = 0.55
)

func toColorful(c color.RGBA) colorful.Color {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return cc
}

func dimmed(c colorful.Color, f float64) colorful.Color {
	h, s, v := c.Hsv()
	return colorful.Hsv(h, s, v*f)
}

// swatch renders text in the body's color.
func swatch(c color.RGBA, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(toColorful(c).Hex())).Render(text)
}
