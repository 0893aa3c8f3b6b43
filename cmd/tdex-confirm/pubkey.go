package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tdex-network/tdex-confirm/internal/core/application"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var pubkey = cli.Command{
	Name:   "pubkey",
	Usage:  "show a public key to the holder and wait for a decision",
	Action: pubkeyAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pubkey",
			Usage: "the hex encoded public key to confirm",
		},
		&cli.StringFlag{
			Name:  "xpub",
			Usage: "extended key the public key is derived from, in place of --pubkey",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "derivation path relative to --xpub, ie. 0/1",
		},
	},
}

func pubkeyAction(ctx *cli.Context) error {
	pubkeyHex := strings.TrimSpace(ctx.String("pubkey"))
	xpub := strings.TrimSpace(ctx.String("xpub"))

	switch {
	case pubkeyHex != "" && xpub != "":
		return &invalidUsageError{ctx, ctx.Command.Name, "--pubkey and --xpub are mutually exclusive"}
	case xpub != "":
		path, err := parsePathFlag(ctx)
		if err != nil {
			return err
		}
		if path == nil {
			return &invalidUsageError{ctx, ctx.Command.Name, "--path is required with --xpub"}
		}
		if pubkeyHex, err = wallet.DerivePublicKeyHex(wallet.DeriveOpts{
			ExtendedKey:    xpub,
			DerivationPath: path,
		}); err != nil {
			return err
		}
	case pubkeyHex == "":
		return &invalidUsageError{ctx, ctx.Command.Name, "either --pubkey or --xpub is required"}
	}

	key, err := hex.DecodeString(pubkeyHex)
	if err != nil {
		return fmt.Errorf("invalid pubkey: %w", err)
	}

	return runSession(ctx, func(
		c context.Context, svc application.ConfirmationService,
	) (domain.Decision, error) {
		return svc.ConfirmPublicKey(c, key)
	})
}
