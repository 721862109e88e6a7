// Package tui renders the live agent dashboard with Bubble Tea. The root
// model owns the engine and drives it from a fixed-rate tick command, so
// all state changes happen on the Bubble Tea event loop.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/pixel-agents/dashboard/internal/agent"
	"github.com/pixel-agents/dashboard/internal/config"
	"github.com/pixel-agents/dashboard/internal/engine"
	"github.com/pixel-agents/dashboard/internal/workflow"
)

// Panel identifies which pane has keyboard focus.
type Panel int

const (
	PanelOffice Panel = iota
	PanelSidebar
)

// Publisher receives each tick's snapshots. The WebSocket broadcaster
// implements it; a nil publisher disables the feed.
type Publisher interface {
	Publish(snaps []agent.Snapshot)
}

type tickMsg time.Time

// phaseSpring animates an agent's workflow bar toward its target fill.
type phaseSpring struct {
	spring   harmonica.Spring
	pos, vel float64
}

// Model is the root Bubble Tea model.
type Model struct {
	eng *engine.Engine
	pub Publisher

	keys     KeyMap
	tickRate time.Duration

	width  int
	height int
	focus  Panel
	scroll int // sidebar scroll offset in lines

	snaps   []agent.Snapshot
	springs map[int]*phaseSpring
	tick    int
}

// New creates the root model around an engine. pub may be nil.
func New(eng *engine.Engine, cfg *config.Config, pub Publisher) Model {
	return Model{
		eng:      eng,
		pub:      pub,
		keys:     DefaultKeyMap(),
		tickRate: cfg.Watch.TickRate,
		focus:    PanelSidebar,
		springs:  make(map[int]*phaseSpring),
	}
}

// Init schedules the first engine tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.tick++
		m.eng.Tick()
		m.snaps = m.eng.Snapshots()
		m.updateSprings()
		if m.pub != nil {
			m.pub.Publish(m.snaps)
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		if m.focus == PanelOffice {
			m.focus = PanelSidebar
		} else {
			m.focus = PanelOffice
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focus == PanelSidebar && m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus == PanelSidebar {
			m.scroll++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		id := int(msg.String()[0] - '0')
		m.eng.Select(id)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.eng.Deselect()
		return m, nil

	case key.Matches(msg, m.keys.Rescan):
		m.eng.ForceRescan()
		return m, nil
	}

	return m, nil
}

// updateSprings steps every phase bar toward its snapshot's fill level
// and drops springs for agents that went away.
func (m *Model) updateSprings() {
	seen := make(map[int]bool, len(m.snaps))
	for _, s := range m.snaps {
		seen[s.ID] = true
		sp, ok := m.springs[s.ID]
		if !ok {
			sp = &phaseSpring{spring: harmonica.NewSpring(harmonica.FPS(10), 6.0, 0.8)}
			m.springs[s.ID] = sp
		}
		sp.pos, sp.vel = sp.spring.Update(sp.pos, sp.vel, s.PhaseProgress())
	}
	for id := range m.springs {
		if !seen[id] {
			delete(m.springs, id)
		}
	}
}

// View renders the full dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	bodyHeight := m.height - 4
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	sidebarWidth := m.width * 45 / 100
	officeWidth := m.width - sidebarWidth

	office := m.borderFor(PanelOffice).
		Width(officeWidth - 2).
		Height(bodyHeight - 2).
		Render(m.renderOffice(officeWidth-2, bodyHeight-2))

	sidebar := m.borderFor(PanelSidebar).
		Width(sidebarWidth - 2).
		Height(bodyHeight - 2).
		Render(m.renderSidebar(bodyHeight - 2))

	body := lipgloss.JoinHorizontal(lipgloss.Top, office, sidebar)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) borderFor(p Panel) lipgloss.Style {
	if m.focus == p {
		return styleFocusedBorder
	}
	return styleBlurredBorder
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(" ◉ Pixel Agents ")
	count := fmt.Sprintf("  %d agents", len(m.snaps))
	phase := ""
	if best := furthestPhase(m.snaps); best != nil {
		phase = stylePhase.Render(fmt.Sprintf("   %s (%d/%d)", best.Label, best.Ordinal+1, workflow.Count))
	}
	return title + styleHeader.Render(count) + phase
}

func (m Model) renderFooter() string {
	return styleDimmed.Render("  q:quit  1-9:select  tab:focus  j/k:scroll  r:rescan  esc:clear")
}

// renderOffice draws a desk and animated character per agent, three desks
// per row.
func (m Model) renderOffice(width, height int) string {
	if len(m.snaps) == 0 {
		return styleDimmed.Render("\n  No active sessions")
	}

	const desksPerRow = 3
	const cellWidth = 10
	const cellHeight = 6

	frameIdx := m.tick / 5 // advance the animation every 5 ticks
	rows := (len(m.snaps) + desksPerRow - 1) / desksPerRow

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if (row+1)*cellHeight > height {
			break
		}
		cells := make([][]string, 0, desksPerRow)
		for col := 0; col < desksPerRow; col++ {
			i := row*desksPerRow + col
			if i >= len(m.snaps) || (col+1)*cellWidth > width {
				break
			}
			cells = append(cells, m.renderDesk(m.snaps[i], frameIdx, cellWidth))
		}
		if len(cells) == 0 {
			break
		}
		for line := 0; line < cellHeight; line++ {
			for _, cell := range cells {
				b.WriteString(cell[line])
			}
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderDesk draws one agent cell: desk, character sprite, and id label.
func (m Model) renderDesk(s agent.Snapshot, frameIdx, cellWidth int) []string {
	charStyle := lipgloss.NewStyle().Foreground(agentColor(s.ID))
	sprite := spriteFrame(animState(s), frameIdx)

	lines := []string{
		" " + desk[0],
		" " + desk[1],
		"  " + charStyle.Render(sprite[0]),
		"  " + charStyle.Render(sprite[1]),
		"  " + charStyle.Render(sprite[2]),
		"  " + charStyle.Render(fmt.Sprintf("◉%d", s.ID)),
	}
	for i, l := range lines {
		if pad := cellWidth - lipgloss.Width(l); pad > 0 {
			lines[i] = l + strings.Repeat(" ", pad)
		}
	}
	return lines
}

// animState maps a snapshot to its character animation.
func animState(s agent.Snapshot) AnimState {
	if len(s.ActiveTools) == 0 {
		return AnimIdle
	}
	if s.ActiveTools[len(s.ActiveTools)-1].Reading {
		return AnimReading
	}
	return AnimTyping
}

// renderSidebar builds the agent detail list: one header line per agent,
// expanded details for the selected one, clipped to the scroll offset.
func (m Model) renderSidebar(height int) string {
	lines := m.agentListLines()
	if len(lines) == 0 {
		return styleDimmed.Render("  No active sessions")
	}

	offset := m.scroll
	if max := len(lines) - 1; offset > max {
		offset = max
	}
	lines = lines[offset:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) agentListLines() []string {
	var lines []string

	for _, s := range m.snaps {
		nameStyle := lipgloss.NewStyle().Foreground(agentColor(s.ID))
		marker := "  "
		if s.Selected {
			marker = "▸ "
			nameStyle = nameStyle.Bold(true)
		}

		status := lipgloss.NewStyle().Foreground(statusColor(s.Status)).
			Render(fmt.Sprintf("%s %s", statusGlyph(s.Status), s.Status))
		lines = append(lines, fmt.Sprintf("%s [%s]",
			nameStyle.Render(fmt.Sprintf("%sAgent #%d", marker, s.ID)), status))

		if !s.Selected {
			continue
		}

		if len(s.ActiveTools) > 0 {
			tool := s.ActiveTools[len(s.ActiveTools)-1].Label
			lines = append(lines, styleDimmed.Render("   Tool: ")+tool)
		}
		if s.PromptSummary != "" {
			lines = append(lines, styleDimmed.Render("   Prompt: ")+fmt.Sprintf("%q", s.PromptSummary))
		}
		if s.Phase != nil {
			fill := s.PhaseProgress()
			if sp := m.springs[s.ID]; sp != nil {
				fill = sp.pos
			}
			lines = append(lines,
				styleDimmed.Render("   Stage: ")+stylePhase.Render(fmt.Sprintf("%s (%d/%d)", s.Phase.Label, s.Phase.Ordinal+1, workflow.Count)),
				"   "+renderPhaseBar(fill, 24))
		}
		if len(s.SubAgents) > 0 {
			lines = append(lines, styleDimmed.Render("   Sub-agents:"))
			for _, sub := range s.SubAgents {
				detail := sub.CurrentTool
				if detail == "" {
					detail = sub.Label
				}
				lines = append(lines, styleDimmed.Render("   └─ ")+
					lipgloss.NewStyle().Foreground(colorSub).Render(fmt.Sprintf("%s: %s", sub.Label, detail)))
			}
		}
		lines = append(lines, styleDimmed.Render(strings.Repeat("─", 28)))
	}

	return lines
}

// renderPhaseBar draws a smoothed workflow progress bar.
func renderPhaseBar(fill float64, width int) string {
	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}
	filled := int(fill * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return stylePhase.Render(bar)
}

// furthestPhase returns the most advanced workflow stage across all
// agents, nil when none was detected.
func furthestPhase(snaps []agent.Snapshot) *agent.PhaseView {
	var best *agent.PhaseView
	for i := range snaps {
		p := snaps[i].Phase
		if p == nil {
			continue
		}
		if best == nil || p.Ordinal > best.Ordinal {
			best = p
		}
	}
	return best
}
