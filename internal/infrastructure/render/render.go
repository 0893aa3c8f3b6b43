// Package render draws confirmation screens as text, shared by the console
// and the full-screen terminal displays.
package render

import (
	"strings"

	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/qr"
)

const (
	switchHint  = "[tab] switch view"
	decideHint  = "[enter] confirm  [esc] reject"
	pathCaption = "Path: "
)

// Renderer turns screens into printable text.
type Renderer struct {
	encoder *qr.Encoder
}

// NewRenderer returns a Renderer drawing scannable views with the given
// encoder.
func NewRenderer(encoder *qr.Encoder) *Renderer {
	return &Renderer{encoder}
}

// Encoder returns the encoder used for scannable views.
func (r *Renderer) Encoder() *qr.Encoder {
	return r.encoder
}

// Render returns the text for the given screen. The primary view boxes the
// value lines, the alternate one draws the QR symbol of the payload.
func (r *Renderer) Render(screen domain.Screen) (string, error) {
	sections := []string{titleStyle().Render(screen.Title)}

	if screen.Label != "" {
		sections = append(sections, labelStyle().Render(screen.Label))
	}
	if screen.Path != "" {
		sections = append(sections, labelStyle().Render(pathCaption+screen.Path))
	}

	if screen.View == domain.ViewAlternate {
		symbol, err := r.encoder.Terminal(screen.QRPayload)
		if err != nil {
			return "", err
		}
		sections = append(sections, strings.TrimRight(symbol, "\n"))
	} else {
		sections = append(sections, valueStyle().Render(strings.Join(screen.Lines, "\n")))
	}

	hints := decideHint
	if screen.CanSwitch {
		hints = switchHint + "  " + hints
	}
	sections = append(sections, hintStyle().Render(hints))

	return strings.Join(sections, "\n") + "\n", nil
}
