// Package tui hosts the student list component in a terminal with
// Bubble Tea.
//
// The Elm architecture maps onto the component directly: Init returns the
// single fetch command, the result comes back to Update as a message, and
// View is a function of the state alone.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-list/internal/studentlist"
	"github.com/aanand-mishra/student-list/internal/types"
)

const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
)

// studentsLoadedMsg carries the settled fetch back into Update.
type studentsLoadedMsg struct {
	students []types.Student
	err      error
}

// Model is the Bubble Tea model for the student list.
type Model struct {
	state   studentlist.State
	spinner spinner.Model

	fetchCmd tea.Cmd
	quitting bool
}

// New returns a model in the loading state. The fetch does not start
// until the program calls Init.
func New(ctx context.Context, fetcher studentlist.Fetcher) *Model {
	return &Model{
		state:   studentlist.Initial(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle)),
		fetchCmd: func() tea.Msg {
			students, err := fetcher.FetchStudents(ctx)
			return studentsLoadedMsg{students: students, err: err}
		},
	}
}

// Init starts the spinner and issues the one fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case studentsLoadedMsg:
		m.state = m.state.Settle(msg.students, msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyCtrlC, keyEsc:
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current state.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state.Loading {
		return fmt.Sprintf("%s %s\n", m.spinner.View(), RenderState(m.state, true))
	}
	return RenderState(m.state, true) + "\n" + HelpStyle.Render("q: quit") + "\n"
}

// State returns the model's component state.
func (m *Model) State() studentlist.State {
	return m.state
}
