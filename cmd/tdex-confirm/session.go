package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-confirm/internal/config"
	"github.com/tdex-network/tdex-confirm/internal/core/application"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/core/ports"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/console"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/metrics"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/qr"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/render"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/terminal"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

type confirmFunc func(
	ctx context.Context, svc application.ConfirmationService,
) (domain.Decision, error)

// runSession wires the display and input source selected by the global
// flags, runs a single confirmation and prints its decision.
func runSession(ctx *cli.Context, confirm confirmFunc) error {
	encoder, err := qr.NewEncoder(config.GetString(config.QRRecoveryLevelKey))
	if err != nil {
		return err
	}
	renderer := render.NewRenderer(encoder)
	log.WithField("qr_recovery_level", encoder.RecoveryLevel()).Debug("qr encoder ready")

	recorder, err := metrics.NewRecorder()
	if err != nil {
		return err
	}

	metricsFile := config.GetString(config.MetricsTextfileKey)
	if ctx.IsSet(metricsTextfileFlagName) {
		metricsFile = ctx.String(metricsTextfileFlagName)
	}
	timeout := config.GetDuration(config.SessionTimeoutKey)
	if ctx.IsSet(timeoutFlagName) {
		timeout = ctx.Duration(timeoutFlagName)
	}

	sessionCtx, cancel := ctx.Context, context.CancelFunc(func() {})
	if timeout > 0 {
		sessionCtx, cancel = context.WithTimeout(ctx.Context, timeout)
	}
	defer cancel()

	var decision domain.Decision
	if ctx.IsSet(inputsFlagName) || ctx.Bool(plainFlagName) {
		decision, err = runConsole(sessionCtx, ctx, renderer, recorder, confirm)
	} else {
		decision, err = runTerminal(sessionCtx, renderer, recorder, confirm)
	}

	if metricsFile != "" {
		if err := recorder.WriteTextfile(metricsFile); err != nil {
			log.WithError(err).Warn("failed to dump metrics")
		}
	}

	if err != nil {
		if domain.IsValidationError(err) {
			log.WithError(err).Debug("value refused before being shown")
		}
		return err
	}

	_, err = fmt.Fprintln(ctx.App.Writer, decision.String())
	return err
}

func runConsole(
	sessionCtx context.Context, ctx *cli.Context,
	renderer *render.Renderer, recorder ports.Recorder, confirm confirmFunc,
) (domain.Decision, error) {
	var input ports.InputSource
	if ctx.IsSet(inputsFlagName) {
		inputs, err := console.ParseScript(ctx.String(inputsFlagName))
		if err != nil {
			return domain.DecisionUndecided, err
		}
		input = console.NewScriptedInput(inputs)
	} else {
		lines := console.NewLineInput(ctx.App.Reader)
		defer lines.Close()
		input = lines
	}

	display := console.NewDisplay(ctx.App.Writer, renderer, ctx.String(qrPNGFlagName))

	svc, err := application.NewConfirmationService(
		display, input, recorder, config.GetLayout(),
	)
	if err != nil {
		return domain.DecisionUndecided, err
	}

	return confirm(sessionCtx, svc)
}

func runTerminal(
	sessionCtx context.Context,
	renderer *render.Renderer, recorder ports.Recorder, confirm confirmFunc,
) (domain.Decision, error) {
	term := terminal.New(renderer, tea.WithAltScreen())

	svc, err := application.NewConfirmationService(
		term, term, recorder, config.GetLayout(),
	)
	if err != nil {
		return domain.DecisionUndecided, err
	}

	// The program owns the screen until it exits.
	logOut := log.StandardLogger().Out
	log.SetOutput(io.Discard)
	defer log.SetOutput(logOut)

	var decision domain.Decision
	g, gctx := errgroup.WithContext(sessionCtx)
	g.Go(func() error {
		return term.Run(gctx)
	})
	g.Go(func() error {
		defer term.Quit()

		var err error
		decision, err = confirm(gctx, svc)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.DecisionUndecided, err
	}
	return decision, nil
}
