// Package terminal implements a full-screen display and key input device on
// top of a bubbletea program.
package terminal

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/core/ports"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/render"
)

// ErrTerminalClosed is returned once the holder quits the program. It wraps
// context.Canceled since the pending session is withdrawn with it.
var ErrTerminalClosed = fmt.Errorf("terminal closed: %w", context.Canceled)

// Terminal is both the display and the input source of confirmation
// sessions. Run must be called for screens and key presses to flow.
type Terminal struct {
	program  *tea.Program
	renderer *render.Renderer
	inputs   chan domain.Input
	done     chan struct{}
}

var (
	_ ports.Display     = (*Terminal)(nil)
	_ ports.InputSource = (*Terminal)(nil)
)

// New returns a Terminal drawing screens with the given renderer. Options are
// passed through to the underlying program.
func New(renderer *render.Renderer, opts ...tea.ProgramOption) *Terminal {
	inputs := make(chan domain.Input, inputBufferSize)
	return &Terminal{
		program:  tea.NewProgram(newModel(inputs), opts...),
		renderer: renderer,
		inputs:   inputs,
		done:     make(chan struct{}),
	}
}

// Run blocks until the holder quits, Quit is called or the context is done.
func (t *Terminal) Run(ctx context.Context) error {
	defer close(t.done)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			t.program.Quit()
		case <-stop:
		}
	}()

	if _, err := t.program.Run(); err != nil {
		return fmt.Errorf("terminal program failed: %w", err)
	}
	return nil
}

// Quit stops the program.
func (t *Terminal) Quit() {
	t.program.Quit()
}

// Show hands the rendered screen to the program. It returns once the program
// has taken it, so that presses made afterwards are attributed to it.
func (t *Terminal) Show(ctx context.Context, screen domain.Screen) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := t.renderer.Render(screen)
	if err != nil {
		return err
	}

	// Send returns once the program takes the message or exits.
	sent := make(chan struct{})
	go func() {
		t.program.Send(screenMsg{screen.SessionID, text})
		close(sent)
	}()

	select {
	case <-sent:
		return nil
	case <-t.done:
		return ErrTerminalClosed
	}
}

// NextInput returns the next key press bound to an input.
func (t *Terminal) NextInput(ctx context.Context) (domain.Input, error) {
	select {
	case in := <-t.inputs:
		return in, nil
	case <-t.done:
		return 0, ErrTerminalClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
