package wallet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/vulpemventures/go-elements/network"
)

const (
	NetworkBitcoin       = "bitcoin"
	NetworkTestnet       = "testnet"
	NetworkRegtest       = "regtest"
	NetworkLiquid        = "liquid"
	NetworkLiquidTestnet = "liquidtestnet"
	NetworkLiquidRegtest = "liquidregtest"
)

// Network describes a chain the wallet can encode receiving addresses for.
// Exactly one of BitcoinParams and ElementsParams is set.
type Network struct {
	// Name is the identifier used in configuration and on the command line.
	Name string
	// Label is the human readable name shown to the holder.
	Label string
	// CoinType is the BIP44 coin type of the network's accounts.
	CoinType uint32

	BitcoinParams  *chaincfg.Params
	ElementsParams *network.Network
}

// IsElements returns whether the network is a Liquid/Elements one.
func (n Network) IsElements() bool {
	return n.ElementsParams != nil
}

var networks = map[string]Network{
	NetworkBitcoin: {
		Name:          NetworkBitcoin,
		Label:         "Bitcoin",
		CoinType:      0,
		BitcoinParams: &chaincfg.MainNetParams,
	},
	NetworkTestnet: {
		Name:          NetworkTestnet,
		Label:         "Testnet",
		CoinType:      1,
		BitcoinParams: &chaincfg.TestNet3Params,
	},
	NetworkRegtest: {
		Name:          NetworkRegtest,
		Label:         "Regtest",
		CoinType:      1,
		BitcoinParams: &chaincfg.RegressionNetParams,
	},
	NetworkLiquid: {
		Name:           NetworkLiquid,
		Label:          "Liquid",
		CoinType:       1776,
		ElementsParams: &network.Liquid,
	},
	NetworkLiquidTestnet: {
		Name:           NetworkLiquidTestnet,
		Label:          "Liquid Testnet",
		CoinType:       1,
		ElementsParams: &network.Testnet,
	},
	NetworkLiquidRegtest: {
		Name:           NetworkLiquidRegtest,
		Label:          "Liquid Regtest",
		CoinType:       1,
		ElementsParams: &network.Regtest,
	},
}

// AccountDerivationPath returns the path of the given native segwit account,
// ie. m/84'/0'/0' for the first bitcoin one.
func (n Network) AccountDerivationPath(account uint32) DerivationPath {
	return DefaultBaseDerivationPath.Append(
		hdkeychain.HardenedKeyStart+n.CoinType,
		hdkeychain.HardenedKeyStart+account,
	)
}

// NetworkByName returns the network registered with the given name.
func NetworkByName(name string) (Network, error) {
	n, ok := networks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Network{}, fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
	}
	return n, nil
}

// SupportedNetworks returns the sorted names of all known networks.
func SupportedNetworks() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
