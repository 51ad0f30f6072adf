// Package wallet canonicalizes wallet identity strings.
//
// Wallets are opaque to the marketplace. The only operation performed on
// them is equality, and every comparison and every stored value goes
// through Normalize so that "0xAbC" and "0xabc " name the same participant.
package wallet

import "strings"

// Normalize trims surrounding whitespace and lower-cases the identity.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Equal reports whether two wallet identities name the same participant.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// EqualPtr is Equal for nullable columns. A nil wallet matches nothing.
func EqualPtr(a *string, b string) bool {
	if a == nil {
		return false
	}
	return Equal(*a, b)
}
