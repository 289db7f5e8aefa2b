package state

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseHash parses a hex encoded identity of up to 32 bytes. Shorter values,
// like 20 byte EVM addresses, are left padded.
func ParseHash(value string) (common.Hash, error) {
	if !strings.HasPrefix(value, "0x") && !strings.HasPrefix(value, "0X") {
		return common.Hash{}, fmt.Errorf("identity %s is not 0x prefixed", value)
	}

	b := common.FromHex(value)
	if len(b) == 0 || len(b) > common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid identity %s", value)
	}
	if !isHex(value[2:]) {
		return common.Hash{}, fmt.Errorf("identity %s is not hex encoded", value)
	}
	return common.BytesToHash(b), nil
}

func isHex(value string) bool {
	for _, c := range value {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
