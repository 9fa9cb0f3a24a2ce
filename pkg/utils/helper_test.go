package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestGenerateBookingRef(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GenerateBookingRef()
		assert.Len(t, ref, 8)
		assert.Equal(t, ref, strings.ToUpper(ref))
		assert.False(t, seen[ref], "booking refs must not repeat: %s", ref)
		seen[ref] = true
	}
}

func TestNormalizeSeatNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"simple", "A1", "A1", true},
		{"lowercase", "b12", "B12", true},
		{"whitespace trimmed", "  c3  ", "C3", true},
		{"max seat", "Z99", "Z99", true},
		{"empty", "", "", false},
		{"row only", "A", "", false},
		{"number only", "11", "", false},
		{"number first", "1A", "", false},
		{"double row letter", "AA", "", false},
		{"seat zero", "A0", "", false},
		{"seat too large", "A100", "", false},
		{"negative seat", "A-1", "", false},
		{"plus sign", "A+1", "", false},
		{"inner space", "A 1", "", false},
		{"non-letter row", "11A", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeSeatNumber(tt.input)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
