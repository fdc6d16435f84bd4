package domain

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

// CheckedAdd returns a+b or ErrArithmeticOverflow when the sum leaves the
// uint64 range.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if overflow || !sum.IsUint64() {
		return 0, fmt.Errorf("%w: %d + %d", ErrArithmeticOverflow, a, b)
	}
	return sum.Uint64(), nil
}

// CheckedSub returns a-b or ErrArithmeticOverflow when b exceeds a.
func CheckedSub(a, b uint64) (uint64, error) {
	diff, underflow := new(uint256.Int).SubOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if underflow {
		return 0, fmt.Errorf("%w: %d - %d", ErrArithmeticOverflow, a, b)
	}
	return diff.Uint64(), nil
}

// CheckedMul returns a*b or ErrArithmeticOverflow.
func CheckedMul(a, b uint64) (uint64, error) {
	prod, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if overflow || !prod.IsUint64() {
		return 0, fmt.Errorf("%w: %d * %d", ErrArithmeticOverflow, a, b)
	}
	return prod.Uint64(), nil
}

// MaxStoredAmount bounds amounts and counters so they fit the signed 64-bit
// columns of the persisted layout.
const MaxStoredAmount = math.MaxInt64
