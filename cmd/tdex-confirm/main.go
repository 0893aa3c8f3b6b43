package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-confirm/internal/config"
	"github.com/urfave/cli/v2"
)

const (
	inputsFlagName          = "inputs"
	timeoutFlagName         = "timeout"
	metricsTextfileFlagName = "metrics-textfile"
	plainFlagName           = "plain"
	qrPNGFlagName           = "qr-png"
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name: inputsFlagName,
		Usage: "comma separated holder inputs to replay instead of reading " +
			"them from the terminal, ie. 'switch,accept'",
	},
	&cli.DurationFlag{
		Name:  timeoutFlagName,
		Usage: "abandon the session if no decision is taken in time, 0 to wait forever",
	},
	&cli.StringFlag{
		Name:  metricsTextfileFlagName,
		Usage: "file where to dump session counters in prometheus text format",
	},
	&cli.BoolFlag{
		Name:  plainFlagName,
		Usage: "print screens line by line and read inputs from stdin",
	},
	&cli.StringFlag{
		Name:  qrPNGFlagName,
		Usage: "in plain or scripted mode, also save the scannable view to this PNG file",
	},
}

func main() {
	app := newApp(os.Stdin, os.Stdout)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp(r io.Reader, w io.Writer) *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "tdex-confirm"
	app.Usage = "Confirm an address or a public key on the device before using it"
	app.Reader = r
	app.Writer = w
	app.Flags = globalFlags
	app.Before = func(*cli.Context) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		log.SetLevel(config.GetLogLevel())
		return nil
	}
	app.Commands = append(
		app.Commands,
		&address,
		&pubkey,
	)

	return app
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
	reason  string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s: %s", e.command, e.reason)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_, _ = fmt.Fprintf(os.Stderr, "[tdex-confirm] %s\n", e.reason)
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[tdex-confirm] %v\n", err)
	}
	os.Exit(1)
}
