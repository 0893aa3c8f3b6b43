package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/core/ports"
)

const scriptSeparator = ","

var (
	// ErrScriptExhausted is returned when all scripted inputs have been
	// consumed without reaching a decision.
	ErrScriptExhausted = errors.New("scripted inputs exhausted")
	// ErrInputClosed is returned when the underlying reader reaches EOF or
	// the input is closed.
	ErrInputClosed = errors.New("input stream closed")
	// ErrEmptyScript ...
	ErrEmptyScript = errors.New("script must contain at least one input")
)

// ParseScript parses a comma separated list of inputs, ie.
// "switch,switch,accept".
func ParseScript(script string) ([]domain.Input, error) {
	if strings.TrimSpace(script) == "" {
		return nil, ErrEmptyScript
	}

	parts := strings.Split(script, scriptSeparator)
	inputs := make([]domain.Input, 0, len(parts))
	for i, p := range parts {
		in, err := domain.ParseInput(p)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// ScriptedInput replays a fixed sequence of inputs.
type ScriptedInput struct {
	lock   sync.Mutex
	inputs []domain.Input
	next   int
}

var _ ports.InputSource = (*ScriptedInput)(nil)

// NewScriptedInput returns a ScriptedInput replaying inputs in order.
func NewScriptedInput(inputs []domain.Input) *ScriptedInput {
	return &ScriptedInput{inputs: inputs}
}

// NextInput returns the next scripted input, or ErrScriptExhausted.
func (s *ScriptedInput) NextInput(ctx context.Context) (domain.Input, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.next >= len(s.inputs) {
		return 0, ErrScriptExhausted
	}
	in := s.inputs[s.next]
	s.next++
	return in, nil
}

// LineInput reads one input per line, ie. from stdin. Blank and
// unrecognized lines are skipped.
//
// Lines are read in background from the first call to NextInput until Close.
// A Read blocked on the reader can't be interrupted, so the reading goroutine
// exits only after the next line or EOF.
type LineInput struct {
	r         io.Reader
	once      sync.Once
	closeOnce sync.Once

	lines chan string
	done  chan struct{}
	err   error
}

var _ ports.InputSource = (*LineInput)(nil)

// NewLineInput returns a LineInput reading from r. Callers must Close it
// once done.
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{r: r, lines: make(chan string), done: make(chan struct{})}
}

// NextInput returns the input of the next recognized line.
func (l *LineInput) NextInput(ctx context.Context) (domain.Input, error) {
	l.once.Do(func() { go l.scan() })

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-l.done:
			return 0, ErrInputClosed
		case line, ok := <-l.lines:
			if !ok {
				if l.err != nil {
					return 0, fmt.Errorf("failed to read input: %w", l.err)
				}
				return 0, ErrInputClosed
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			in, err := domain.ParseInput(line)
			if err != nil {
				log.WithError(err).Warn("skipping unrecognized input")
				continue
			}
			return in, nil
		}
	}
}

// scan is the only writer of l.err, which is read after lines is closed.
func (l *LineInput) scan() {
	defer close(l.lines)

	scanner := bufio.NewScanner(l.r)
	for scanner.Scan() {
		select {
		case l.lines <- scanner.Text():
		case <-l.done:
			return
		}
	}
	l.err = scanner.Err()
}

// Close stops reading lines. Lines read afterwards are discarded.
func (l *LineInput) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}
