package piengine

import (
	"math/big"
)

const chudnovskyConst426880 = 426880

// assembleDecimal combines the root split tuple with the scaled
// sqrt(10005) into π's decimal digit string:
//
//	numerator   = 426880 * S * Q
//	scaled_pi   = numerator / T   (integer quotient)
//
// The leaf rule already folds the 545140134k+13591409 linear term into
// T at every leaf (T = p_k * a_k, including the k=0 leaf's bare
// a_0 = 13591409), so the root T is the complete denominator: adding
// 13591409*Q again would double-count the k=0 contribution and
// corrupt every digit.
// This engine divides by T alone, matching the Craig-Wood binary-split
// formulation of Chudnovsky's series this package is grounded on.
//
// scaledPi's decimal representation, read with a decimal point after
// the first digit, is π truncated to dPrime fractional digits. The
// caller is responsible for truncating further to the requested D.
func assembleDecimal(root Tuple, sqrtScaled *big.Int, dPrime int) (*big.Int, error) {
	numerator := mul(big.NewInt(chudnovskyConst426880), sqrtScaled)
	numerator = mul(numerator, root.Q)

	if root.T.Sign() == 0 {
		return nil, newError(VerificationFailed, "zero denominator in decimal assembly", nil)
	}

	scaledPi := new(big.Int).Quo(numerator, root.T)
	return scaledPi, nil
}

// decimalString renders scaledPi (an integer equal to π·10^dPrime,
// truncated) into the "3.<digits>" form, keeping exactly digits
// fractional places. It returns ok=false if scaledPi's textual form
// doesn't have enough digits to satisfy the request or doesn't start
// with 3 — ComputePi then widens the term count and retries (see the
// under-convergence guard there).
func decimalString(scaledPi *big.Int, digits int) (s string, ok bool) {
	text := scaledPi.String()
	if text[0] != '3' || len(text) < digits+1 {
		return "", false
	}
	var b []byte
	b = append(b, '3', '.')
	b = append(b, text[1:1+digits]...)
	return string(b), true
}
