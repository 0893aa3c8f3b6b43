package terminal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
)

const inputBufferSize = 16

var keyBindings = map[string]domain.Input{
	"enter": domain.InputAccept,
	"y":     domain.InputAccept,
	"esc":   domain.InputReject,
	"n":     domain.InputReject,
	"tab":   domain.InputSwitchView,
	"s":     domain.InputSwitchView,
}

// screenMsg carries an already rendered screen.
type screenMsg struct {
	session string
	text    string
}

// model forwards key presses only while a screen is shown. Presses still
// buffered when the screen of another session arrives belong to the
// previous one and are discarded.
type model struct {
	session  string
	view     string
	inputs   chan domain.Input
	quitting bool
}

func newModel(inputs chan domain.Input) model {
	return model{inputs: inputs}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screenMsg:
		if msg.session != m.session {
			m.drain()
			m.session = msg.session
		}
		m.view = msg.text
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.session == "" {
			return m, nil
		}
		if in, ok := keyBindings[key]; ok {
			// Presses beyond the buffer are dropped, the controller
			// decides on the first terminal one anyway.
			select {
			case m.inputs <- in:
			default:
			}
		}
	}
	return m, nil
}

func (m model) drain() {
	for {
		select {
		case <-m.inputs:
		default:
			return
		}
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return m.view
}
