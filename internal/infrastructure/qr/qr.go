// Package qr renders the scannable view of a confirmation session, either as
// blocks drawn on a terminal or as a PNG image.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"github.com/skip2/go-qrcode"
)

const (
	// DefaultPNGSize is the side in pixels of exported images.
	DefaultPNGSize = 512
	// DefaultRecoveryLevel is the error correction level used when none is
	// configured.
	DefaultRecoveryLevel = "medium"
)

var (
	// ErrEmptyPayload ...
	ErrEmptyPayload = errors.New("qr payload must not be empty")
	// ErrUnknownRecoveryLevel ...
	ErrUnknownRecoveryLevel = errors.New("unknown qr recovery level")

	recoveryLevels = map[string]qrcode.RecoveryLevel{
		"low":     qrcode.Low,
		"medium":  qrcode.Medium,
		"high":    qrcode.High,
		"highest": qrcode.Highest,
	}
)

// Encoder turns session payloads into QR symbols with a fixed recovery level.
type Encoder struct {
	name  string
	level qrcode.RecoveryLevel
}

// NewEncoder returns an Encoder for one of the recovery levels returned by
// SupportedRecoveryLevels.
func NewEncoder(level string) (*Encoder, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		name = DefaultRecoveryLevel
	}
	l, ok := recoveryLevels[name]
	if !ok {
		return nil, fmt.Errorf(
			"%w %q, must be one of %s",
			ErrUnknownRecoveryLevel, level, strings.Join(SupportedRecoveryLevels(), " | "),
		)
	}
	return &Encoder{name, l}, nil
}

// SupportedRecoveryLevels returns the accepted recovery level names.
func SupportedRecoveryLevels() []string {
	levels := make([]string, 0, len(recoveryLevels))
	for l := range recoveryLevels {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		return recoveryLevels[levels[i]] < recoveryLevels[levels[j]]
	})
	return levels
}

// RecoveryLevel returns the name of the encoder's recovery level.
func (e *Encoder) RecoveryLevel() string {
	return e.name
}

// Terminal returns the symbol drawn with terminal blocks, one row per line.
func (e *Encoder) Terminal(payload string) (string, error) {
	if err := e.validate(payload); err != nil {
		return "", err
	}

	buf := &bytes.Buffer{}
	// The terminal renderer only distinguishes 3 levels.
	switch e.level {
	case qrcode.Low:
		qrterminal.Generate(payload, qrterminal.L, buf)
	case qrcode.Medium:
		qrterminal.Generate(payload, qrterminal.M, buf)
	default:
		qrterminal.Generate(payload, qrterminal.H, buf)
	}
	return buf.String(), nil
}

// WritePNG writes the symbol to the given file.
func (e *Encoder) WritePNG(payload, filename string) error {
	if err := e.validate(payload); err != nil {
		return err
	}
	if err := qrcode.WriteFile(payload, e.level, DefaultPNGSize, filename); err != nil {
		return fmt.Errorf("failed to write qr code to %s: %w", filename, err)
	}
	return nil
}

// validate makes sure the payload fits a symbol at the encoder's level.
func (e *Encoder) validate(payload string) error {
	if payload == "" {
		return ErrEmptyPayload
	}
	if _, err := qrcode.New(payload, e.level); err != nil {
		return fmt.Errorf("failed to encode qr code: %w", err)
	}
	return nil
}
