package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"plain code", "12345", "12345"},
		{"strips separators and underscore", "ABC-123_x ", "ABC123x"},
		{"strips inner whitespace", " AB 12 c", "AB12c"},
		{"strips symbols", "SKU#42/B.1", "SKU42B1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"ABC-123_x ", " 00 17-B ", "ק-100", "a b c"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}
