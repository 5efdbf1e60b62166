package clmfolio

import "strings"

// NormalizePair canonicalizes a free-text position description into a
// BASE/QUOTE pair the pricing stage can look up.
//
//	"SOL + USD"  -> "SOL/USDC"
//	"SUI short"  -> "SUI/USDC"  (single-sided perp)
//	"JLP/SOL"    -> "JLP/SOL"   (already a pair)
//
// Anything else passes through trimmed: the pair stays opaque to pricing.
func NormalizePair(text string) string {
	pair := strings.TrimSpace(text)
	if pair == "" {
		return pair
	}

	// Perpetual shorts are quoted against USDC for price display.
	if strings.Contains(strings.ToLower(pair), "short") {
		token := replaceFold(pair, "short", "")
		return strings.ToUpper(strings.TrimSpace(token)) + "/USDC"
	}

	// CLM positions written as "TOKEN + USD" variants.
	if strings.Contains(pair, "+") && strings.Contains(strings.ToUpper(pair), "USD") {
		token := strings.TrimSpace(strings.SplitN(pair, "+", 2)[0])
		return strings.ToUpper(token) + "/USDC"
	}

	if strings.Contains(pair, "/") {
		return pair
	}
	return pair
}

// replaceFold removes every case-insensitive occurrence of old from s.
func replaceFold(s, old, new string) string {
	lower := strings.ToLower(s)
	oldLower := strings.ToLower(old)
	var b strings.Builder
	for {
		i := strings.Index(lower, oldLower)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(new)
		s, lower = s[i+len(old):], lower[i+len(old):]
	}
}
