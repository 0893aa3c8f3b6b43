package application_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
)

// **** Display ****

type mockDisplay struct {
	lock    sync.Mutex
	screens []domain.Screen
	err     error
}

func (m *mockDisplay) Show(_ context.Context, screen domain.Screen) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return m.err
	}
	m.screens = append(m.screens, screen)
	return nil
}

func (m *mockDisplay) shown() []domain.Screen {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]domain.Screen{}, m.screens...)
}

// **** Input source ****

// mockInputSource returns the scripted inputs in order, then blocks until
// the context is done, like a holder who never presses any button.
type mockInputSource struct {
	lock   sync.Mutex
	inputs []domain.Input
	err    error
	reads  int
}

func newMockInputSource(inputs ...domain.Input) *mockInputSource {
	return &mockInputSource{inputs: inputs}
}

func (m *mockInputSource) NextInput(ctx context.Context) (domain.Input, error) {
	m.lock.Lock()
	if m.err != nil {
		m.lock.Unlock()
		return 0, m.err
	}
	if m.reads < len(m.inputs) {
		in := m.inputs[m.reads]
		m.reads++
		m.lock.Unlock()
		return in, nil
	}
	m.lock.Unlock()

	<-ctx.Done()
	return 0, ctx.Err()
}

func (m *mockInputSource) consumed() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.reads
}

// **** Recorder ****

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) SessionStarted(kind domain.ValueKind) {
	m.Called(kind)
}

func (m *mockRecorder) ViewSwitched(kind domain.ValueKind, view domain.View) {
	m.Called(kind, view)
}

func (m *mockRecorder) SessionDecided(kind domain.ValueKind, decision domain.Decision) {
	m.Called(kind, decision)
}

func (m *mockRecorder) SessionAbandoned(kind domain.ValueKind) {
	m.Called(kind)
}
