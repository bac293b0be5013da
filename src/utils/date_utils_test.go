package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSaleDate(t *testing.T) {
	cases := []struct {
		in       string
		wantYear int
		wantDay  int
	}{
		{"2024-01-15", 2024, 15},
		{"2024-01-15 13:45:00", 2024, 15},
		{"2024-01-15T13:45:00Z", 2024, 15},
		{"15/01/2024", 2024, 15},
	}
	for _, tc := range cases {
		got, err := ParseSaleDate(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.wantYear, got.Year(), "input %q", tc.in)
		assert.Equal(t, tc.wantDay, got.Day(), "input %q", tc.in)
	}
}

func TestParseSaleDateInvalid(t *testing.T) {
	_, err := ParseSaleDate("soon")
	assert.Error(t, err)
	_, err = ParseSaleDate("")
	assert.Error(t, err)
}

func TestHashKeyStableAndDistinct(t *testing.T) {
	a := HashKey("url", "email", "token")
	assert.Equal(t, a, HashKey("url", "email", "token"))
	assert.NotEqual(t, a, HashKey("url", "email", "other"))
	// The separator keeps concatenation ambiguity out of the key.
	assert.NotEqual(t, HashKey("ab", "c"), HashKey("a", "bc"))
}
