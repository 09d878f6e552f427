package util

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// FromHexString returns the bytes of a hex string, with or without 0x prefix.
func FromHexString(data string) ([]byte, error) {
	data = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(data), "0x"), "0X")
	if len(data)%2 == 1 {
		// Odd number of characters; even it up
		data = "0" + data
	}
	ret, err := hex.DecodeString(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex string")
	}
	return ret, nil
}

// ParseAddress parses exactly 20 bytes of hex. Digit case is ignored.
func ParseAddress(s string) (common.Address, error) {
	b, err := FromHexString(s)
	if err != nil {
		return common.Address{}, err
	}
	if len(b) != common.AddressLength {
		return common.Address{}, errors.Errorf("address %q has %d bytes, want %d", s, len(b), common.AddressLength)
	}
	return common.BytesToAddress(b), nil
}

// ParseHash parses exactly 32 bytes of hex.
func ParseHash(s string) (common.Hash, error) {
	b, err := FromHexString(s)
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, errors.Errorf("value %q has %d bytes, want %d", s, len(b), common.HashLength)
	}
	return common.BytesToHash(b), nil
}

func ParseHashes(ss []string) ([]common.Hash, error) {
	ret := make([]common.Hash, 0, len(ss))
	for _, s := range ss {
		h, err := ParseHash(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, h)
	}
	return ret, nil
}
