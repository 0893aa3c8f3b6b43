package wallet

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	// HardenedMarker is appended to the display form of hardened elements.
	HardenedMarker = "'"

	pathPrefix    = "m"
	pathSeparator = "/"
)

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet path. Elements >= hdkeychain.HardenedKeyStart are
// hardened.
type DerivationPath []uint32

var (
	// DefaultBaseDerivationPath m/84', the purpose of native segwit accounts
	DefaultBaseDerivationPath = DerivationPath{
		hdkeychain.HardenedKeyStart + 84,
	}
)

// ParseDerivationPath converts a derivation path string to the
// internal binary representation
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	var path DerivationPath

	elems := strings.Split(strPath, pathSeparator)
	switch {
	case strings.TrimSpace(strPath) == "":
		return nil, ErrNullDerivationPath

	case containsEmptyString(elems):
		return nil, ErrMalformedDerivationPath
	case len(elems) < 2:
		return nil, ErrMalformedDerivationPath

	default:
		if strings.TrimSpace(elems[0]) == pathPrefix {
			elems = elems[1:]
		}
	}

	// all remaining elems are relative, append one by one
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var value uint32

		if strings.HasSuffix(elem, HardenedMarker) {
			value = hdkeychain.HardenedKeyStart
			elem = strings.TrimSpace(strings.TrimSuffix(elem, HardenedMarker))
		}

		// use big int for convertion
		bigval, ok := new(big.Int).SetString(elem, 0)
		if !ok {
			return nil, fmt.Errorf("%w: invalid elem '%s'", ErrMalformedDerivationPath, elem)
		}

		max := math.MaxUint32 - value
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
			if value == 0 {
				return nil, fmt.Errorf(
					"%w: elem %v must be in range [0, %d]", ErrMalformedDerivationPath, bigval, max,
				)
			}
			return nil, fmt.Errorf(
				"%w: elem %v must be in hardened range [0, %d]", ErrMalformedDerivationPath, bigval, max,
			)
		}
		value += uint32(bigval.Uint64())

		path = append(path, value)
	}

	return path, nil
}

// Render converts a binary derivation path to its canonical representation,
// ie. m/84'/0'/0'/0/1. The hardened flag is stripped from the displayed
// index and signalled by a trailing marker instead.
// An empty path has no display form and results in ErrEmptyDerivationPath.
func (path DerivationPath) Render() (string, error) {
	if len(path) <= 0 {
		return "", ErrEmptyDerivationPath
	}

	elems := make([]string, 0, len(path))
	for _, component := range path {
		elems = append(elems, renderElement(component))
	}
	return pathPrefix + pathSeparator + strings.Join(elems, pathSeparator), nil
}

// String returns the canonical representation of the path, or an empty
// string for an empty path.
func (path DerivationPath) String() string {
	str, _ := path.Render()
	return str
}

// Append returns a new path made of path followed by elems. The receiver is
// left untouched.
func (path DerivationPath) Append(elems ...uint32) DerivationPath {
	out := make(DerivationPath, 0, len(path)+len(elems))
	out = append(out, path...)
	return append(out, elems...)
}

func renderElement(component uint32) string {
	if !isHardened(component) {
		return strconv.FormatUint(uint64(component), 10)
	}
	index := component - hdkeychain.HardenedKeyStart
	return strconv.FormatUint(uint64(index), 10) + HardenedMarker
}

func isHardened(component uint32) bool {
	return component >= hdkeychain.HardenedKeyStart
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if s == "" {
			return true
		}
	}
	return false
}
