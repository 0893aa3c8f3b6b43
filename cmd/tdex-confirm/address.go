package main

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-confirm/internal/config"
	"github.com/tdex-network/tdex-confirm/internal/core/application"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:   "address",
	Usage:  "show a receiving address to the holder and wait for a decision",
	Action: addressAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "the address to confirm",
		},
		&cli.StringFlag{
			Name:  "xpub",
			Usage: "extended key the address is derived from, in place of --address",
		},
		&cli.StringFlag{
			Name: "path",
			Usage: "with --address, the derivation path of the address, ie. m/84'/0'/0'/0/0; " +
				"with --xpub, the path relative to it, ie. 0/1",
		},
		&cli.StringFlag{
			Name: "xpub-path",
			Usage: "derivation path of --xpub, shown before --path. Defaults to the " +
				"first account of the network, ie. m/84'/0'/0'",
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "one of " + strings.Join(wallet.SupportedNetworks(), " | "),
		},
	},
}

func addressAction(ctx *cli.Context) error {
	net := config.GetNetwork()
	if ctx.IsSet("network") {
		var err error
		if net, err = wallet.NetworkByName(ctx.String("network")); err != nil {
			return err
		}
	}

	path, err := parsePathFlag(ctx)
	if err != nil {
		return err
	}

	addr := strings.TrimSpace(ctx.String("address"))
	xpub := strings.TrimSpace(ctx.String("xpub"))

	switch {
	case addr != "" && xpub != "":
		return &invalidUsageError{ctx, ctx.Command.Name, "--address and --xpub are mutually exclusive"}
	case xpub != "":
		if path == nil {
			return &invalidUsageError{ctx, ctx.Command.Name, "--path is required with --xpub"}
		}
		addr, err = wallet.DeriveAddress(wallet.DeriveOpts{
			ExtendedKey:    xpub,
			DerivationPath: path,
		}, net)
		if err != nil {
			return err
		}

		accountPath := net.AccountDerivationPath(0)
		if ctx.IsSet("xpub-path") {
			if accountPath, err = wallet.ParseDerivationPath(ctx.String("xpub-path")); err != nil {
				return err
			}
		}
		// The holder must see the full path of the address.
		path = accountPath.Append(path...)
		log.WithField("path", path.String()).Debug("address derived from extended key")
	case ctx.IsSet("xpub-path"):
		return &invalidUsageError{ctx, ctx.Command.Name, "--xpub-path requires --xpub"}
	case addr == "":
		return &invalidUsageError{ctx, ctx.Command.Name, "either --address or --xpub is required"}
	}

	return runSession(ctx, func(
		c context.Context, svc application.ConfirmationService,
	) (domain.Decision, error) {
		return svc.ConfirmAddress(c, application.AddressRequest{
			Address: addr,
			Path:    path,
			Network: net.Label,
		})
	})
}

// parsePathFlag returns nil if --path is not given.
func parsePathFlag(ctx *cli.Context) (wallet.DerivationPath, error) {
	if !ctx.IsSet("path") {
		return nil, nil
	}
	return wallet.ParseDerivationPath(ctx.String("path"))
}
