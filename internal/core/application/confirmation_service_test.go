package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-confirm/internal/core/application"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/pkg/wallet"
)

const (
	testAddress = "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"
)

var (
	testPubkey = []byte{
		0x03, 0x39, 0xa3, 0x60, 0x13, 0x30, 0x15, 0x97, 0xda, 0xef, 0x41,
		0xfb, 0xe5, 0x93, 0xa0, 0x2c, 0xc5, 0x13, 0xd0, 0xb5, 0x55, 0x27,
		0xec, 0x2d, 0xf1, 0x05, 0x0e, 0x2e, 0x8f, 0xf4, 0x9c, 0x85, 0xc2,
	}
	testPath = wallet.DerivationPath{0x80000054, 0x80000001, 0x80000000, 0, 0}
)

func newTestService(
	t *testing.T, display *mockDisplay, input *mockInputSource, recorder *mockRecorder,
) application.ConfirmationService {
	var svc application.ConfirmationService
	var err error
	if recorder == nil {
		svc, err = application.NewConfirmationService(display, input, nil, domain.DefaultLayout())
	} else {
		svc, err = application.NewConfirmationService(display, input, recorder, domain.DefaultLayout())
	}
	require.NoError(t, err)
	return svc
}

func TestFailingNewConfirmationService(t *testing.T) {
	t.Parallel()

	display := &mockDisplay{}
	input := newMockInputSource()

	_, err := application.NewConfirmationService(nil, input, nil, domain.DefaultLayout())
	require.ErrorIs(t, err, application.ErrNullDisplay)

	_, err = application.NewConfirmationService(display, nil, nil, domain.DefaultLayout())
	require.ErrorIs(t, err, application.ErrNullInputSource)

	_, err = application.NewConfirmationService(display, input, nil, domain.Layout{})
	require.ErrorIs(t, err, domain.ErrInvalidChunkWidth)
}

func TestConfirmAddress(t *testing.T) {
	t.Parallel()

	display := &mockDisplay{}
	input := newMockInputSource(domain.InputSwitchView, domain.InputAccept)
	recorder := &mockRecorder{}
	recorder.On("SessionStarted", domain.ValueKindAddress).Return()
	recorder.On("ViewSwitched", domain.ValueKindAddress, domain.ViewAlternate).Return()
	recorder.On("SessionDecided", domain.ValueKindAddress, domain.DecisionConfirmed).Return()

	svc := newTestService(t, display, input, recorder)

	decision, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{
		Address: testAddress,
		Path:    testPath,
		Network: "Testnet",
	})
	require.NoError(t, err)
	require.Equal(t, domain.DecisionConfirmed, decision)
	recorder.AssertExpectations(t)

	screens := display.shown()
	require.Len(t, screens, 2)

	primary, alternate := screens[0], screens[1]
	require.Equal(t, domain.ViewPrimary, primary.View)
	require.Equal(t, domain.ViewAlternate, alternate.View)
	require.Equal(t, testAddress, primary.Value())
	require.Equal(t, testAddress, alternate.Value())
	require.Equal(t, "Testnet network", primary.Label)
	require.Equal(t, "m/84'/1'/0'/0/0", primary.Path)
	require.Equal(t, primary.SessionID, alternate.SessionID)
}

func TestConfirmAddressViewToggleKeepsDecision(t *testing.T) {
	t.Parallel()

	for _, terminal := range []domain.Input{domain.InputAccept, domain.InputReject} {
		direct := newTestService(t, &mockDisplay{}, newMockInputSource(terminal), nil)
		want, err := direct.ConfirmAddress(context.Background(), application.AddressRequest{
			Address: testAddress,
		})
		require.NoError(t, err)

		for switches := 1; switches <= 6; switches++ {
			inputs := make([]domain.Input, 0, switches+1)
			for i := 0; i < switches; i++ {
				inputs = append(inputs, domain.InputSwitchView)
			}
			inputs = append(inputs, terminal)

			display := &mockDisplay{}
			svc := newTestService(t, display, newMockInputSource(inputs...), nil)
			got, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{
				Address: testAddress,
			})
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.Len(t, display.shown(), switches+1)
			for _, screen := range display.shown() {
				require.Equal(t, testAddress, screen.Value())
			}
		}
	}
}

func TestFirstTerminalInputWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inputs   []domain.Input
		decision domain.Decision
	}{
		{
			name:     "reject_then_accept",
			inputs:   []domain.Input{domain.InputReject, domain.InputAccept},
			decision: domain.DecisionRejected,
		},
		{
			name:     "accept_then_reject",
			inputs:   []domain.Input{domain.InputAccept, domain.InputReject},
			decision: domain.DecisionConfirmed,
		},
		{
			name:     "accept_then_switch",
			inputs:   []domain.Input{domain.InputAccept, domain.InputSwitchView},
			decision: domain.DecisionConfirmed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			display := &mockDisplay{}
			input := newMockInputSource(tt.inputs...)
			svc := newTestService(t, display, input, nil)

			decision, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{
				Address: testAddress,
			})
			require.NoError(t, err)
			require.Equal(t, tt.decision, decision)
			require.Equal(t, 1, input.consumed())
			require.Len(t, display.shown(), 1)
		})
	}
}

func TestConfirmPublicKey(t *testing.T) {
	t.Parallel()

	display := &mockDisplay{}
	input := newMockInputSource(
		domain.InputSwitchView, domain.InputSwitchView, domain.InputReject,
	)
	recorder := &mockRecorder{}
	recorder.On("SessionStarted", domain.ValueKindPublicKey).Return()
	recorder.On("SessionDecided", domain.ValueKindPublicKey, domain.DecisionRejected).Return()

	svc := newTestService(t, display, input, recorder)

	decision, err := svc.ConfirmPublicKey(context.Background(), testPubkey)
	require.NoError(t, err)
	require.Equal(t, domain.DecisionRejected, decision)
	recorder.AssertExpectations(t)
	recorder.AssertNotCalled(t, "ViewSwitched", domain.ValueKindPublicKey, domain.ViewAlternate)

	screens := display.shown()
	require.Len(t, screens, 1)
	require.Equal(t, domain.PublicKeyTitle, screens[0].Title)
	require.Equal(t, domain.ViewPrimary, screens[0].View)
	require.Equal(t, []string{
		"0339a36013301597da",
		"ef41fbe593a02cc513",
		"d0b55527ec2df1050e",
		"2e8ff49c85c2",
	}, screens[0].Lines)
}

func TestConfirmValidation(t *testing.T) {
	t.Parallel()

	display := &mockDisplay{}
	input := newMockInputSource(domain.InputAccept)
	// no expectations: any call to the recorder makes the test fail
	recorder := &mockRecorder{}
	svc := newTestService(t, display, input, recorder)

	_, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{})
	require.ErrorIs(t, err, domain.ErrEmptyValue)
	require.True(t, domain.IsValidationError(err))

	_, err = svc.ConfirmAddress(context.Background(), application.AddressRequest{
		Address: testAddress,
		Path:    wallet.DerivationPath{},
	})
	require.ErrorIs(t, err, domain.ErrEmptyDerivationPath)
	require.True(t, domain.IsValidationError(err))

	_, err = svc.ConfirmPublicKey(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrEmptyValue)

	require.Empty(t, display.shown())
	require.Zero(t, input.consumed())
}

func TestAbandonSession(t *testing.T) {
	t.Parallel()

	display := &mockDisplay{}
	input := newMockInputSource(domain.InputSwitchView)
	recorder := &mockRecorder{}
	recorder.On("SessionStarted", domain.ValueKindAddress).Return()
	recorder.On("ViewSwitched", domain.ValueKindAddress, domain.ViewAlternate).Return()
	recorder.On("SessionAbandoned", domain.ValueKindAddress).Return()

	svc := newTestService(t, display, input, recorder)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	decision, err := svc.ConfirmAddress(ctx, application.AddressRequest{
		Address: testAddress,
	})
	require.ErrorIs(t, err, application.ErrSessionAbandoned)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, domain.DecisionUndecided, decision)
	require.NotEqual(t, domain.DecisionConfirmed, decision)
	require.NotEqual(t, domain.DecisionRejected, decision)
	recorder.AssertExpectations(t)
}

func TestAbandonSessionBeforeStart(t *testing.T) {
	t.Parallel()

	input := newMockInputSource(domain.InputAccept)
	svc := newTestService(t, &mockDisplay{}, input, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decision, err := svc.ConfirmPublicKey(ctx, testPubkey)
	require.ErrorIs(t, err, application.ErrSessionAbandoned)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, domain.DecisionUndecided, decision)
	require.Zero(t, input.consumed())
}

func TestSessionFailures(t *testing.T) {
	t.Parallel()

	t.Run("input_source_error", func(t *testing.T) {
		t.Parallel()

		input := newMockInputSource()
		input.err = errors.New("button driver unavailable")
		svc := newTestService(t, &mockDisplay{}, input, nil)

		decision, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{
			Address: testAddress,
		})
		require.Error(t, err)
		require.ErrorIs(t, err, input.err)
		require.NotErrorIs(t, err, application.ErrSessionAbandoned)
		require.Equal(t, domain.DecisionUndecided, decision)
	})

	t.Run("input_source_cancelled", func(t *testing.T) {
		t.Parallel()

		input := newMockInputSource()
		input.err = context.Canceled
		svc := newTestService(t, &mockDisplay{}, input, nil)

		_, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{
			Address: testAddress,
		})
		require.ErrorIs(t, err, application.ErrSessionAbandoned)
	})

	t.Run("display_error", func(t *testing.T) {
		t.Parallel()

		display := &mockDisplay{err: errors.New("screen detached")}
		input := newMockInputSource(domain.InputAccept)
		svc := newTestService(t, display, input, nil)

		_, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{
			Address: testAddress,
		})
		require.ErrorIs(t, err, display.err)
		require.Zero(t, input.consumed())
	})
}

func TestUnknownInputIsIgnored(t *testing.T) {
	t.Parallel()

	input := newMockInputSource(domain.Input(99), domain.InputAccept)
	svc := newTestService(t, &mockDisplay{}, input, nil)

	decision, err := svc.ConfirmAddress(context.Background(), application.AddressRequest{
		Address: testAddress,
	})
	require.NoError(t, err)
	require.Equal(t, domain.DecisionConfirmed, decision)
	require.Equal(t, 2, input.consumed())
}

func TestSingleSessionAtATime(t *testing.T) {
	t.Parallel()

	display := &mockDisplay{}
	svc := newTestService(t, display, newMockInputSource(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.ConfirmAddress(ctx, application.AddressRequest{Address: testAddress})
		done <- err
	}()

	require.Eventually(t, func() bool {
		return len(display.shown()) == 1
	}, time.Second, 5*time.Millisecond)

	_, err := svc.ConfirmPublicKey(context.Background(), testPubkey)
	require.ErrorIs(t, err, application.ErrSessionInProgress)

	cancel()
	require.ErrorIs(t, <-done, application.ErrSessionAbandoned)
}
