package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pixel-agents/dashboard/internal/agent"
)

// Agent colors, assigned by id and cycled.
var agentColors = []lipgloss.Color{
	lipgloss.Color("#06b6d4"), // cyan
	lipgloss.Color("#d946ef"), // magenta
	lipgloss.Color("#eab308"), // yellow
	lipgloss.Color("#22c55e"), // green
	lipgloss.Color("#3b82f6"), // blue
	lipgloss.Color("#ef4444"), // red
}

// Status colors.
var (
	colorActive  = lipgloss.Color("#22c55e")
	colorWaiting = lipgloss.Color("#d97706")
	colorDormant = lipgloss.Color("#4b5563")
)

// UI chrome colors.
var (
	colorBorder = lipgloss.Color("#4b5563")
	colorDimmed = lipgloss.Color("#6b7280")
	colorBright = lipgloss.Color("#f9fafb")
	colorAccent = lipgloss.Color("#06b6d4")
	colorPhase  = lipgloss.Color("#eab308")
	colorSub    = lipgloss.Color("#6b7280")
)

// Reusable styles.
var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBright)

	styleDimmed = lipgloss.NewStyle().
			Foreground(colorDimmed)

	stylePhase = lipgloss.NewStyle().
			Foreground(colorPhase)

	styleFocusedBorder = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent)

	styleBlurredBorder = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)
)

// agentColor returns the color for a top-level agent id. Ids start at 1.
func agentColor(id int) lipgloss.Color {
	idx := id - 1
	if idx < 0 {
		idx = 0
	}
	return agentColors[idx%len(agentColors)]
}

// statusColor returns the color for an agent status.
func statusColor(status agent.Status) lipgloss.Color {
	switch status {
	case agent.Active:
		return colorActive
	case agent.Waiting:
		return colorWaiting
	case agent.Dormant:
		return colorDormant
	default:
		return colorDimmed
	}
}

// statusGlyph returns a Unicode glyph for an agent status.
func statusGlyph(status agent.Status) string {
	switch status {
	case agent.Active:
		return "●"
	case agent.Waiting:
		return "◌"
	case agent.Dormant:
		return "○"
	default:
		return "·"
	}
}
