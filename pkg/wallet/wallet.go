// Package wallet holds the key material helpers the confirmation flow needs
// from a hierarchical deterministic wallet: derivation paths and their
// canonical rendering, and derivation of receiving addresses and public keys
// from an extended public key.
package wallet

import (
	"errors"
)

var (
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start with '/' or contain empty elements",
	)
	// ErrEmptyDerivationPath is returned when rendering a path without
	// elements
	ErrEmptyDerivationPath = errors.New("derivation path must contain at least one element")
	// ErrNullExtendedKey ...
	ErrNullExtendedKey = errors.New("extended key must not be null")
	// ErrHardenedFromPublic is returned when a path contains a hardened step
	// that cannot be derived from an extended public key
	ErrHardenedFromPublic = errors.New(
		"cannot derive a hardened element from an extended public key",
	)
	// ErrUnknownNetwork ...
	ErrUnknownNetwork = errors.New("unknown network")
)
