package wallet

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/vulpemventures/go-elements/payment"
)

// DeriveOpts is the struct given to DerivePublicKey and DeriveAddress
type DeriveOpts struct {
	// ExtendedKey is a base58 encoded extended key (xpub or xprv).
	ExtendedKey string
	// DerivationPath is relative to ExtendedKey.
	DerivationPath DerivationPath
}

func (o DeriveOpts) validate() error {
	if strings.TrimSpace(o.ExtendedKey) == "" {
		return ErrNullExtendedKey
	}
	if len(o.DerivationPath) <= 0 {
		return ErrEmptyDerivationPath
	}
	return nil
}

// DerivePublicKey derives the public key at the given path
func DerivePublicKey(opts DeriveOpts) (*btcec.PublicKey, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	hdNode, err := hdkeychain.NewKeyFromString(strings.TrimSpace(opts.ExtendedKey))
	if err != nil {
		return nil, err
	}

	for _, step := range opts.DerivationPath {
		if isHardened(step) && !hdNode.IsPrivate() {
			return nil, ErrHardenedFromPublic
		}
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, err
		}
	}

	return hdNode.ECPubKey()
}

// DerivePublicKeyHex derives the compressed public key at the given path in
// hex format
func DerivePublicKeyHex(opts DeriveOpts) (string, error) {
	pubkey, err := DerivePublicKey(opts)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(pubkey.SerializeCompressed()), nil
}

// DeriveAddress derives the native segwit (P2WPKH) receiving address at the
// given path for the given network
func DeriveAddress(opts DeriveOpts, net Network) (string, error) {
	pubkey, err := DerivePublicKey(opts)
	if err != nil {
		return "", err
	}

	if net.IsElements() {
		p2wpkh := payment.FromPublicKey(pubkey, net.ElementsParams, nil)
		return p2wpkh.WitnessPubKeyHash()
	}
	if net.BitcoinParams == nil {
		return "", ErrUnknownNetwork
	}

	pkHash := btcutil.Hash160(pubkey.SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(pkHash, net.BitcoinParams)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}
