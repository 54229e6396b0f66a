package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is a native currency denomination expressed as its power-of-ten
// distance from the base unit (wei).
type Unit int32

const (
	Wei   Unit = 0
	Gwei  Unit = 9
	Ether Unit = 18
)

func (u Unit) String() string {
	switch u {
	case Wei:
		return "wei"
	case Gwei:
		return "gwei"
	case Ether:
		return "ether"
	default:
		return fmt.Sprintf("unit(1e%d)", int32(u))
	}
}

// ParseUnit maps a denomination name to its Unit
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wei":
		return Wei, nil
	case "gwei":
		return Gwei, nil
	case "ether", "eth":
		return Ether, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", name)
	}
}

// maxAmountLen bounds the textual amount; 2^256 has 78 digits
const maxAmountLen = 100

// ToBaseUnits converts a plain decimal amount in unit into base units.
// Exponent notation is rejected. The amount must be non-negative, must not be
// finer than one base unit and must fit in 256 bits.
func ToBaseUnits(amount string, unit Unit) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) > maxAmountLen {
		return nil, fmt.Errorf("amount has more than %d characters", maxAmountLen)
	}
	if !isPlainDecimal(amount) {
		return nil, fmt.Errorf("amount %q is not a plain decimal number", amount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount %s is negative", d.String())
	}

	scaled := d.Shift(int32(unit))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %s %s is finer than one wei", d.String(), unit)
	}
	value := scaled.BigInt()
	if value.BitLen() > 256 {
		return nil, fmt.Errorf("amount %s %s does not fit in 256 bits", d.String(), unit)
	}
	return value, nil
}

// isPlainDecimal accepts an optional leading minus, digits and at most one dot
func isPlainDecimal(s string) bool {
	digits, dot := 0, false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !dot:
			dot = true
		case r == '-' && i == 0:
		default:
			return false
		}
	}
	return digits > 0
}

// FromBaseUnits converts base units into a decimal amount of unit
func FromBaseUnits(value *big.Int, unit Unit) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -int32(unit))
}
