// Package menu is the interactive effect picker shown when no effect
// is named on the command line.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/termsaver/internal/effect"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	border = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(1, 3)
)

type model struct {
	kinds    []effect.Kind
	cursor   int
	selected effect.Kind
	chosen   bool
}

func newModel() model {
	return model{kinds: effect.Kinds()}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.kinds)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.kinds[m.cursor]
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render("termsaver") + dim.Render("  pick an effect") + "\n\n")
	for i, k := range m.kinds {
		marker := "  "
		name := white.Render(fmt.Sprintf("%-6s", k.String()))
		if i == m.cursor {
			marker = green.Render("> ")
			name = green.Render(fmt.Sprintf("%-6s", k.String()))
		}
		b.WriteString(marker + name + dim.Render("  "+effect.Descriptions[k]) + "\n")
	}
	b.WriteString("\n" + dim.Render("enter run · j/k move · q quit"))
	return border.Render(b.String())
}

// Pick runs the picker and returns the chosen effect. ok is false when
// the user quit without choosing.
func Pick() (effect.Kind, bool, error) {
	p := tea.NewProgram(newModel())
	final, err := p.Run()
	if err != nil {
		return 0, false, err
	}
	m := final.(model)
	return m.selected, m.chosen, nil
}
