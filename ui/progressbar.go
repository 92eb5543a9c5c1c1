package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// TrialProgress reports how many Monte Carlo trials have finished.
type TrialProgress struct {
	Completed int
	Total     int
}

// TrialsComplete signals that every trial has finished.
type TrialsComplete = struct{}

// TrialsError aborts the progress display with an error.
type TrialsError struct {
	Err error
}

func (e TrialsError) Error() string {
	return e.Err.Error()
}

// ProgressBar renders trial progress: a spinner until the first trial
// lands, then a bar with a running trial count, then a checkmark.
type ProgressBar struct {
	enableSpinner bool
	progress      progress.Model
	spinner       spinner.Model
	label         string

	completed       int
	total           int
	enableCheckmark bool
	err             error
}

func NewProgressBar(label string, total int) ProgressBar {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	return ProgressBar{
		enableSpinner: true,
		progress:      progress.New(),
		spinner:       s,
		label:         label,
		total:         total,
	}
}

func (m *ProgressBar) GetSpinnerInitTick() tea.Cmd {
	return m.spinner.Tick
}

func (m *ProgressBar) SetLabel(label string) {
	m.label = label
}

func (m ProgressBar) Update(msg tea.Msg) (ProgressBar, tea.Cmd) {
	switch msg := msg.(type) {
	case TrialsComplete:
		m.enableCheckmark = true
		return m, nil
	case TrialProgress:
		m.enableSpinner = false
		m.completed = msg.Completed
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, nil
	case TrialsError:
		m.err = msg.Err
		return m, nil
	case spinner.TickMsg:
		if m.enableSpinner {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m ProgressBar) View() string {
	if m.err != nil {
		return fmt.Sprintf("%s ❌ %s", m.label, m.err.Error())
	}
	if m.enableCheckmark {
		return fmt.Sprintf("%s ✔", m.label)
	}
	if m.enableSpinner {
		return fmt.Sprintf("%s %s", m.label, m.spinner.View())
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}
	return m.progress.ViewAs(percent) + fmt.Sprintf("  %d/%d trials", m.completed, m.total)
}
