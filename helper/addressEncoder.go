package helper

import (
	"fmt"

	"github.com/autonity/autonity/common/hexutil"
)

const AccountIDLength = 32

// HexAddressEncoder accepts account ids given as 0x-prefixed raw public keys.
type HexAddressEncoder struct {
	Length int
}

func NewHexAddressEncoder() *HexAddressEncoder {
	return &HexAddressEncoder{Length: AccountIDLength}
}

func (e *HexAddressEncoder) ChainKey(address string) ([]byte, error) {
	key, err := hexutil.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("malformed address %q: %w", address, err)
	}
	if e.Length > 0 && len(key) != e.Length {
		return nil, fmt.Errorf("malformed address %q: want %d bytes, got %d", address, e.Length, len(key))
	}
	return key, nil
}
