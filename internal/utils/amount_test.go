package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTokenAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		want     string
	}{
		{
			name:     "whole native unit",
			amount:   "1000000000000000000",
			decimals: 18,
			want:     "1",
		},
		{
			name:     "one and a half",
			amount:   "1500000000000000000",
			decimals: 18,
			want:     "1.5",
		},
		{
			name:     "six fractional digits max",
			amount:   "1234567890123456789",
			decimals: 18,
			want:     "1.234567",
		},
		{
			name:     "trailing zeros trimmed",
			amount:   "1100000000000000000",
			decimals: 18,
			want:     "1.1",
		},
		{
			name:     "zero",
			amount:   "0",
			decimals: 18,
			want:     "0",
		},
		{
			name:     "dust below display precision",
			amount:   "1",
			decimals: 18,
			want:     "0",
		},
		{
			name:     "six decimal token whole",
			amount:   "25000000",
			decimals: 6,
			want:     "25",
		},
		{
			name:     "six decimal token fractional",
			amount:   "25500000",
			decimals: 6,
			want:     "25.5",
		},
		{
			name:     "zero decimals",
			amount:   "42",
			decimals: 0,
			want:     "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := new(big.Int).SetString(tt.amount, 10)
			assert.True(t, ok)
			assert.Equal(t, tt.want, FormatTokenAmount(amount, tt.decimals))
		})
	}
}

func TestFormatTokenAmount_Nil(t *testing.T) {
	assert.Equal(t, "0", FormatTokenAmount(nil, 18))
}
