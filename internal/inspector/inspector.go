// Package inspector is a terminal debugging UI over any bus.Observable
// component, generalising hejops-gone/cpu/debugger.go's single-CPU
// bubbletea model to whichever register file, beam counter, or
// coprocessor a systems/* machine exposes — no component-specific code
// lives here, only the Query/QueryPaths contract every core component
// already implements.
package inspector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/n-ulricksen/retrocore/bus"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	pcStyle     = lipgloss.NewStyle().Reverse(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Component pairs a label with the Observable it inspects (a CPU, Agnus,
// Copper, ULA, PPU — anything implementing bus.Observable).
type Component struct {
	Label string
	Obs   bus.Observable
}

// Model is the bubbletea model driving the inspector: it single-steps a
// machine and renders every registered component's query paths, plus a
// go-spew dump of the last selected component on demand.
type Model struct {
	machine    bus.Machine
	components []Component
	cursor     int
	steps      uint64
	spewDetail bool
	quitting   bool
}

// New builds an inspector over machine, reporting on each given component.
func New(machine bus.Machine, components []Component) Model {
	return Model{machine: machine, components: components}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case " ", "j":
		m.machine.RunFrame()
		m.steps++
	case "tab":
		if len(m.components) > 0 {
			m.cursor = (m.cursor + 1) % len(m.components)
		}
	case "d":
		m.spewDetail = !m.spewDetail
	}
	return m, nil
}

func (m Model) renderComponent(c Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(c.Label))
	for _, path := range c.Obs.QueryPaths() {
		v, ok := c.Obs.Query(path)
		if !ok {
			continue
		}
		line := fmt.Sprintf("%-12s %s", path, v.String())
		if path == "pc" {
			line = pcStyle.Render(line)
		}
		fmt.Fprintln(&b, line)
	}
	return panelStyle.Render(b.String())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	panels := make([]string, 0, len(m.components))
	for i, c := range m.components {
		s := m.renderComponent(c)
		if i == m.cursor {
			s = lipgloss.NewStyle().BorderForeground(lipgloss.Color("12")).Render(s)
		}
		panels = append(panels, s)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	detail := ""
	if m.spewDetail && len(m.components) > 0 {
		detail = spew.Sdump(m.components[m.cursor].Obs)
	}

	help := helpStyle.Render("space/j: step frame  tab: cycle component  d: spew dump  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("frames stepped: %d", m.steps),
		body,
		detail,
		help,
	)
}

// Run starts the interactive TUI and blocks until the user quits.
func Run(machine bus.Machine, components []Component) error {
	_, err := tea.NewProgram(New(machine, components)).Run()
	return err
}
