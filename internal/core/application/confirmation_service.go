package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/core/ports"
	"github.com/tdex-network/tdex-confirm/pkg/wallet"
)

var (
	// ErrSessionAbandoned is returned when the caller withdraws a request
	// before the holder took a decision. The context error is wrapped too.
	ErrSessionAbandoned = errors.New("confirmation session abandoned")
	// ErrSessionInProgress is returned when a confirmation is requested while
	// another one is being presented.
	ErrSessionInProgress = errors.New("another confirmation session is in progress")
	// ErrNullDisplay ...
	ErrNullDisplay = errors.New("display must not be null")
	// ErrNullInputSource ...
	ErrNullInputSource = errors.New("input source must not be null")
)

// AddressRequest holds the arguments of ConfirmAddress.
type AddressRequest struct {
	Address string
	// Path is optional and only displayed. Nil means no path is shown.
	Path wallet.DerivationPath
	// Network is an optional label, ie. "Testnet".
	Network string
}

// ConfirmationService lets the holder confirm addresses and public keys on
// the device. Each call runs exactly one session and returns either a
// decision, a validation error, or ErrSessionAbandoned.
type ConfirmationService interface {
	ConfirmAddress(ctx context.Context, req AddressRequest) (domain.Decision, error)
	ConfirmPublicKey(ctx context.Context, pubkey []byte) (domain.Decision, error)
}

type confirmationService struct {
	display  ports.Display
	input    ports.InputSource
	recorder ports.Recorder
	layout   domain.Layout

	lock sync.Mutex
}

// NewConfirmationService returns a ConfirmationService presenting sessions
// on the given display and reading holder inputs from the given source.
// The recorder is optional.
func NewConfirmationService(
	display ports.Display,
	input ports.InputSource,
	recorder ports.Recorder,
	layout domain.Layout,
) (ConfirmationService, error) {
	if display == nil {
		return nil, ErrNullDisplay
	}
	if input == nil {
		return nil, ErrNullInputSource
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &confirmationService{
		display:  display,
		input:    input,
		recorder: recorder,
		layout:   layout,
	}, nil
}

func (s *confirmationService) ConfirmAddress(
	ctx context.Context, req AddressRequest,
) (domain.Decision, error) {
	confirmReq, err := domain.NewAddressRequest(req.Address, req.Path, req.Network)
	if err != nil {
		return domain.DecisionUndecided, err
	}
	return s.confirm(ctx, confirmReq)
}

func (s *confirmationService) ConfirmPublicKey(
	ctx context.Context, pubkey []byte,
) (domain.Decision, error) {
	confirmReq, err := domain.NewPublicKeyRequest(pubkey)
	if err != nil {
		return domain.DecisionUndecided, err
	}
	return s.confirm(ctx, confirmReq)
}

func (s *confirmationService) confirm(
	ctx context.Context, req *domain.ConfirmationRequest,
) (domain.Decision, error) {
	if !s.lock.TryLock() {
		return domain.DecisionUndecided, ErrSessionInProgress
	}
	defer s.lock.Unlock()

	session, err := domain.NewSession(*req)
	if err != nil {
		return domain.DecisionUndecided, err
	}

	logger := log.WithFields(log.Fields{
		"session": session.ID,
		"kind":    req.Kind.String(),
	})
	logger.Debug("confirmation session started")
	s.recorder.SessionStarted(req.Kind)

	if err := s.present(ctx, session); err != nil {
		return s.fail(ctx, logger, req.Kind, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, logger, req.Kind, err)
		}

		in, err := s.input.NextInput(ctx)
		if err != nil {
			return s.fail(ctx, logger, req.Kind, fmt.Errorf("failed to read holder input: %w", err))
		}

		transition, err := session.Apply(in)
		if err != nil {
			logger.WithError(err).Warn("ignoring holder input")
			continue
		}

		switch transition {
		case domain.TransitionViewSwitched:
			logger.WithField("view", session.ActiveView.String()).Debug("view switched")
			s.recorder.ViewSwitched(req.Kind, session.ActiveView)
			if err := s.present(ctx, session); err != nil {
				return s.fail(ctx, logger, req.Kind, err)
			}
		case domain.TransitionDecided:
			decision := session.Decision
			logger.WithFields(log.Fields{
				"decision": decision.String(),
				"view":     session.ActiveView.String(),
			}).Info("confirmation session decided")
			s.recorder.SessionDecided(req.Kind, decision)
			return decision, nil
		}
	}
}

func (s *confirmationService) present(ctx context.Context, session *domain.Session) error {
	screen, err := session.Screen(s.layout)
	if err != nil {
		return err
	}
	if err := s.display.Show(ctx, screen); err != nil {
		return fmt.Errorf("failed to display %s view: %w", screen.View, err)
	}
	return nil
}

// fail discards the session. If the caller's context is done, or the
// collaborators reported its cancellation, the session is abandoned.
func (s *confirmationService) fail(
	ctx context.Context, logger *log.Entry, kind domain.ValueKind, err error,
) (domain.Decision, error) {
	if ctxErr := ctx.Err(); ctxErr != nil || isContextError(err) {
		if ctxErr == nil {
			ctxErr = err
		}
		logger.WithError(ctxErr).Info("confirmation session abandoned")
		s.recorder.SessionAbandoned(kind)
		return domain.DecisionUndecided, fmt.Errorf("%w: %w", ErrSessionAbandoned, ctxErr)
	}

	logger.WithError(err).Warn("confirmation session failed")
	return domain.DecisionUndecided, err
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type noopRecorder struct{}

func (noopRecorder) SessionStarted(domain.ValueKind) {}
func (noopRecorder) ViewSwitched(domain.ValueKind, domain.View) {}
func (noopRecorder) SessionDecided(domain.ValueKind, domain.Decision) {}
func (noopRecorder) SessionAbandoned(domain.ValueKind) {}
