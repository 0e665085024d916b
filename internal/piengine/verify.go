package piengine

const wantPrefix = "3.14159"

// verify asserts three checks against the assembled decimal string:
// the leading prefix, the exact length, and the character set of every
// digit after the point. It never attempts repair — a failure here
// means the engine has a bug, and the caller decides what to do with
// it.
func verify(s string, digits int) error {
	if len(s) != digits+2 {
		return newError(VerificationFailed, "length", nil)
	}
	// Short outputs (D < 5) can't contain the full "3.14159" prefix;
	// they must instead match it up to however many characters they have.
	prefixLen := len(wantPrefix)
	if len(s) < prefixLen {
		prefixLen = len(s)
	}
	if s[:prefixLen] != wantPrefix[:prefixLen] {
		return newError(VerificationFailed, "prefix", nil)
	}
	for i := 2; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return newError(VerificationFailed, "charset", nil)
		}
	}
	return nil
}
