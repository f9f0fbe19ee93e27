package sku

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a product identifier so Omnia product codes and
// WooCommerce SKUs can be compared with plain string equality. Only letters
// and digits survive; everything else (punctuation, separators, inner
// whitespace) is dropped. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
