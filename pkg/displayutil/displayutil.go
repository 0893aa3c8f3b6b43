package displayutil

import (
	"errors"

	"github.com/tdex-network/tdex-confirm/pkg/wallet"
)

const (
	// AddressChunkWidth is the number of characters per line of an address.
	AddressChunkWidth = 17
	// PublicKeyChunkWidth is the number of hex digits per line of a public key.
	PublicKeyChunkWidth = 18
)

var (
	// ErrInvalidChunkWidth ...
	ErrInvalidChunkWidth = errors.New("chunk width must be a positive integer")
)

// Chunk splits value into consecutive substrings of at most width bytes.
// The last chunk may be shorter. An empty value results in an empty slice.
func Chunk(value string, width int) ([]string, error) {
	if width <= 0 {
		return nil, ErrInvalidChunkWidth
	}

	chunks := make([]string, 0, (len(value)+width-1)/width)
	for start := 0; start < len(value); start += width {
		end := start + width
		if end > len(value) {
			end = len(value)
		}
		chunks = append(chunks, value[start:end])
	}
	return chunks, nil
}

// RenderPath renders the given derivation path elements as m/a'/b/...
func RenderPath(elements []uint32) (string, error) {
	return wallet.DerivationPath(elements).Render()
}
