package ports

import (
	"context"

	"github.com/tdex-network/tdex-confirm/internal/core/domain"
)

// Display defines the method to present a screen to the holder.
// A screen either carries text lines (primary view) or a payload to be shown
// as a scannable code (alternate view).
type Display interface {
	Show(ctx context.Context, screen domain.Screen) error
}

// InputSource defines the method to wait for the next holder input. It must
// block until an input is available or the context is done.
type InputSource interface {
	NextInput(ctx context.Context) (domain.Input, error)
}

// Recorder is notified about the lifecycle of confirmation sessions.
type Recorder interface {
	SessionStarted(kind domain.ValueKind)
	ViewSwitched(kind domain.ValueKind, view domain.View)
	SessionDecided(kind domain.ValueKind, decision domain.Decision)
	SessionAbandoned(kind domain.ValueKind)
}
