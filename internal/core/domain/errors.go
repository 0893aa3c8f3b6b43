package domain

import (
	"errors"

	"github.com/tdex-network/tdex-confirm/pkg/displayutil"
	"github.com/tdex-network/tdex-confirm/pkg/wallet"
)

var (
	// ErrEmptyValue is returned when trying to confirm an empty address or
	// public key
	ErrEmptyValue = errors.New("value to confirm must not be empty")
	// ErrEmptyDerivationPath is returned when a derivation path is given
	// but contains no elements
	ErrEmptyDerivationPath = wallet.ErrEmptyDerivationPath
	// ErrInvalidChunkWidth ...
	ErrInvalidChunkWidth = displayutil.ErrInvalidChunkWidth
	// ErrUnknownValueKind ...
	ErrUnknownValueKind = errors.New("unknown value kind")
	// ErrUnknownInput ...
	ErrUnknownInput = errors.New("unknown holder input")
)

var validationErrors = []error{
	ErrEmptyValue,
	ErrEmptyDerivationPath,
	ErrInvalidChunkWidth,
	ErrUnknownValueKind,
}

// IsValidationError returns whether err was raised while validating a
// confirmation request, as opposed to a failure or abandonment of a session.
func IsValidationError(err error) bool {
	for _, e := range validationErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
