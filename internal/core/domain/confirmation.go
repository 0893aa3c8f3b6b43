package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tdex-network/tdex-confirm/pkg/wallet"
)

// ValueKind tells what kind of value is being confirmed.
type ValueKind int

func (k ValueKind) String() string {
	switch k {
	case ValueKindAddress:
		return "address"
	case ValueKindPublicKey:
		return "public_key"
	default:
		return "unknown"
	}
}

// HasAlternateView returns whether values of this kind can be presented as a
// scannable code.
func (k ValueKind) HasAlternateView() bool {
	return k == ValueKindAddress
}

// View is the presentation currently shown to the holder.
type View int

func (v View) String() string {
	if v == ViewAlternate {
		return "alternate"
	}
	return "primary"
}

// Toggle returns the other view.
func (v View) Toggle() View {
	if v == ViewAlternate {
		return ViewPrimary
	}
	return ViewAlternate
}

// Decision is the terminal outcome of a session.
type Decision int

func (d Decision) String() string {
	switch d {
	case DecisionConfirmed:
		return "confirmed"
	case DecisionRejected:
		return "rejected"
	default:
		return "undecided"
	}
}

// Input is a signal coming from the holder.
type Input int

func (i Input) String() string {
	switch i {
	case InputAccept:
		return "accept"
	case InputReject:
		return "reject"
	case InputSwitchView:
		return "switch"
	default:
		return "unknown"
	}
}

// ParseInput converts the textual representation of an input, as produced
// by Input.String, back to an Input.
func ParseInput(str string) (Input, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "accept", "confirm", "yes", "y":
		return InputAccept, nil
	case "reject", "cancel", "no", "n":
		return InputReject, nil
	case "switch", "switchview", "qr":
		return InputSwitchView, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInput, str)
	}
}

// ConfirmationRequest holds the value to confirm along with its display
// context. It must not be mutated once a session is started.
type ConfirmationRequest struct {
	Kind  ValueKind
	Value string
	// ContextLabel is an optional annotation, ie. the network name.
	ContextLabel string
	// Path is optional and only shown for addresses.
	Path wallet.DerivationPath
}

// NewAddressRequest returns a request for confirming a receiving address.
// A nil path means no path is shown, while a non-nil path must contain at
// least one element.
func NewAddressRequest(
	address string, path wallet.DerivationPath, network string,
) (*ConfirmationRequest, error) {
	if isBlank(address) {
		return nil, ErrEmptyValue
	}
	if path != nil && len(path) <= 0 {
		return nil, ErrEmptyDerivationPath
	}

	var p wallet.DerivationPath
	if path != nil {
		p = make(wallet.DerivationPath, len(path))
		copy(p, path)
	}

	return &ConfirmationRequest{
		Kind:         ValueKindAddress,
		Value:        address,
		ContextLabel: strings.TrimSpace(network),
		Path:         p,
	}, nil
}

// NewPublicKeyRequest returns a request for confirming the given public
// key, which is displayed in lowercase hex form.
func NewPublicKeyRequest(pubkey []byte) (*ConfirmationRequest, error) {
	if len(pubkey) <= 0 {
		return nil, ErrEmptyValue
	}
	return &ConfirmationRequest{
		Kind:  ValueKindPublicKey,
		Value: hex.EncodeToString(pubkey),
	}, nil
}

func (r *ConfirmationRequest) validate() error {
	switch r.Kind {
	case ValueKindAddress, ValueKindPublicKey:
	default:
		return ErrUnknownValueKind
	}
	if isBlank(r.Value) {
		return ErrEmptyValue
	}
	if r.Path != nil && len(r.Path) <= 0 {
		return ErrEmptyDerivationPath
	}
	return nil
}

func isBlank(str string) bool {
	return len(strings.TrimSpace(str)) <= 0
}
