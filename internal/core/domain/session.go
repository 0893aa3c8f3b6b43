package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tdex-network/tdex-confirm/pkg/displayutil"
)

// SessionState is either presenting or decided.
type SessionState int

// Transition describes the effect an input had on a session.
type Transition int

// Layout holds the line widths used when presenting values as text.
type Layout struct {
	AddressChunkWidth   int
	PublicKeyChunkWidth int
}

// DefaultLayout returns the widths the device screen fits.
func DefaultLayout() Layout {
	return Layout{
		AddressChunkWidth:   displayutil.AddressChunkWidth,
		PublicKeyChunkWidth: displayutil.PublicKeyChunkWidth,
	}
}

func (l Layout) widthFor(kind ValueKind) int {
	if kind == ValueKindPublicKey {
		return l.PublicKeyChunkWidth
	}
	return l.AddressChunkWidth
}

// Validate ...
func (l Layout) Validate() error {
	if l.AddressChunkWidth <= 0 || l.PublicKeyChunkWidth <= 0 {
		return ErrInvalidChunkWidth
	}
	return nil
}

// Session is a single confirmation of a request by the holder. It starts
// presenting the primary view and accepts inputs until it's decided. Once
// decided, any further input is ignored.
type Session struct {
	ID         string
	Request    ConfirmationRequest
	ActiveView View
	State      SessionState
	Decision   Decision
}

// NewSession returns a new session for the given request presenting the
// primary view.
func NewSession(req ConfirmationRequest) (*Session, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return &Session{
		ID:         uuid.New().String(),
		Request:    req,
		ActiveView: ViewPrimary,
		State:      SessionStatePresenting,
		Decision:   DecisionUndecided,
	}, nil
}

// IsDecided ...
func (s *Session) IsDecided() bool {
	return s.State == SessionStateDecided
}

// Apply updates the session with the given holder input.
// Switching view is a no-op for kinds without an alternate view.
func (s *Session) Apply(in Input) (Transition, error) {
	if s.IsDecided() {
		return TransitionNone, nil
	}

	switch in {
	case InputAccept:
		s.decide(DecisionConfirmed)
		return TransitionDecided, nil
	case InputReject:
		s.decide(DecisionRejected)
		return TransitionDecided, nil
	case InputSwitchView:
		if !s.Request.Kind.HasAlternateView() {
			return TransitionNone, nil
		}
		s.ActiveView = s.ActiveView.Toggle()
		return TransitionViewSwitched, nil
	default:
		return TransitionNone, fmt.Errorf("%w: %d", ErrUnknownInput, in)
	}
}

func (s *Session) decide(d Decision) {
	s.State = SessionStateDecided
	s.Decision = d
}

// Screen is what has to be presented to the holder for the active view of a
// session. The primary view carries the value split in Lines, the alternate
// one carries it whole in QRPayload.
type Screen struct {
	SessionID string
	Kind      ValueKind
	View      View
	Title     string
	// Label is the optional context line, ie. "Testnet network".
	Label string
	// Path is the rendered derivation path, if any.
	Path      string
	Lines     []string
	QRPayload string
	CanSwitch bool
}

// Value returns the value carried by the screen, whatever the view.
func (s Screen) Value() string {
	if s.View == ViewAlternate {
		return s.QRPayload
	}
	return strings.Join(s.Lines, "")
}

// Screen selects what to render for the active view.
func (s *Session) Screen(layout Layout) (Screen, error) {
	if err := layout.Validate(); err != nil {
		return Screen{}, err
	}

	req := s.Request
	screen := Screen{
		SessionID: s.ID,
		Kind:      req.Kind,
		View:      s.ActiveView,
		Title:     AddressTitle,
		CanSwitch: req.Kind.HasAlternateView(),
	}
	if req.Kind == ValueKindPublicKey {
		screen.Title = PublicKeyTitle
	}
	if req.ContextLabel != "" {
		screen.Label = fmt.Sprintf(networkLabelFormat, req.ContextLabel)
	}
	if len(req.Path) > 0 {
		path, err := displayutil.RenderPath(req.Path)
		if err != nil {
			return Screen{}, err
		}
		screen.Path = path
	}

	switch s.ActiveView {
	case ViewAlternate:
		screen.QRPayload = req.Value
	default:
		lines, err := displayutil.Chunk(req.Value, layout.widthFor(req.Kind))
		if err != nil {
			return Screen{}, err
		}
		screen.Lines = lines
	}

	return screen, nil
}
