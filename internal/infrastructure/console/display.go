// Package console implements a line oriented display and input sources that
// do not need a full-screen terminal, for scripting and piped usage.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/core/ports"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/render"
)

const separator = "----------------------------------------\n"

// Display prints every screen to a writer, one after the other.
type Display struct {
	lock     sync.Mutex
	w        io.Writer
	renderer *render.Renderer
	qrFile   string
}

var _ ports.Display = (*Display)(nil)

// NewDisplay returns a Display writing to w. If qrFile is not empty,
// scannable views are also saved there as PNG images.
func NewDisplay(w io.Writer, renderer *render.Renderer, qrFile string) *Display {
	return &Display{w: w, renderer: renderer, qrFile: qrFile}
}

// Show prints the rendered screen.
func (d *Display) Show(ctx context.Context, screen domain.Screen) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := d.renderer.Render(screen)
	if err != nil {
		return err
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	if screen.View == domain.ViewAlternate && d.qrFile != "" {
		if err := d.renderer.Encoder().WritePNG(screen.QRPayload, d.qrFile); err != nil {
			return err
		}
		log.WithField("file", d.qrFile).Info("qr code written to file")
	}

	if _, err := fmt.Fprint(d.w, separator+text); err != nil {
		return fmt.Errorf("failed to write screen: %w", err)
	}
	return nil
}
