package agreement

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

// ParseAddress validates a hex ledger address. Mixed-case input must carry a
// valid EIP-55 checksum.
func ParseAddress(field, value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return common.Address{}, apperrors.ValidationError(nil, field+" is required")
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, apperrors.ValidationError(nil, fmt.Sprintf("%s is not a valid address", field))
	}

	addr := common.HexToAddress(value)
	body := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	if body != strings.ToLower(body) && body != strings.ToUpper(body) && body != addr.Hex()[2:] {
		return common.Address{}, apperrors.ValidationError(nil, fmt.Sprintf("%s has an invalid checksum", field))
	}
	return addr, nil
}

// parseUint accepts decimal digits only
func parseUint(field, value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, apperrors.ValidationError(nil, field+" is required")
	}
	for _, c := range value {
		if c < '0' || c > '9' {
			return nil, apperrors.ValidationError(nil, fmt.Sprintf("%s must be a non-negative integer", field))
		}
	}

	n, ok := new(big.Int).SetString(value, 10)
	if !ok || n.BitLen() > 256 {
		return nil, apperrors.ValidationError(nil, fmt.Sprintf("%s is out of range", field))
	}
	return n, nil
}
