package piengine

import (
	"math/big"

	"github.com/cznic/mathutil"
)

// sqrt10005Scaled computes S = floor(sqrt(10005 * 10^(2*scaleDigits))),
// an integer representation of sqrt(10005) * 10^scaleDigits. It is
// obtained with a single integer square root at full working precision
// rather than any floating-point approximation: mixing a
// limited-precision sqrt into the final formula would silently corrupt
// the trailing digits. The integer sqrt itself is
// cznic/mathutil.SqrtBig, an arbitrary-precision integer square root
// suited to exactly this computation.
func sqrt10005Scaled(scaleDigits int) *big.Int {
	n := new(big.Int).SetInt64(10005)
	scale := new(big.Int).Exp(ten, big.NewInt(int64(2*scaleDigits)), nil)
	n.Mul(n, scale)
	return mathutil.SqrtBig(n)
}

var ten = big.NewInt(10)
