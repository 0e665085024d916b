package piengine

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// mul multiplies x and y, routing through bigfft's Schönhage–Strassen
// FFT multiplier. bigfft.Mul falls back to math/big's own Karatsuba
// multiplication below its internal size threshold, so this is safe
// to call uniformly at every merge in the binary-splitting tree: small
// leaf-level products pay no FFT overhead, while the large products
// produced near the root of the reduction — which need sub-quadratic
// multiplication to stay fast — get it automatically.
//
// mul returns bigfft.Mul's product directly and reports no error: no
// failure inside the multiplication is turned into an OutOfMemory
// ComputeError.
func mul(x, y *big.Int) *big.Int {
	return bigfft.Mul(x, y)
}
