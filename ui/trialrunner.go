package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// TrialRunner is the bubbletea model for a Monte Carlo run: it owns a
// ProgressBar and quits once TrialsComplete or TrialsError arrives.
type TrialRunner struct {
	Err error

	bar ProgressBar
}

func NewTrialRunner(label string, total int) TrialRunner {
	return TrialRunner{bar: NewProgressBar(label, total)}
}

func (m TrialRunner) Init() tea.Cmd {
	return m.bar.GetSpinnerInitTick()
}

func (m TrialRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TrialsComplete:
		m.bar, _ = m.bar.Update(msg)
		return m, tea.Quit
	case TrialsError:
		m.Err = msg.Err
		m.bar, _ = m.bar.Update(msg)
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Err = fmt.Errorf("interrupted")
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.bar, cmd = m.bar.Update(msg)
	return m, cmd
}

func (m TrialRunner) View() string {
	return m.bar.View() + "\n"
}
