package utils

import (
	"math/big"
	"strings"
)

// maxFractionDigits caps how many fractional digits are rendered
const maxFractionDigits = 6

// FormatTokenAmount converts a smallest-unit integer amount to a decimal
// string using the token's decimals. Whole numbers render without a decimal
// point; fractional amounts keep at most six digits with trailing zeros
// trimmed.
func FormatTokenAmount(amount *big.Int, decimals uint8) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart := new(big.Int)
	fracPart := new(big.Int)
	intPart.QuoRem(amount, divisor, fracPart)

	if fracPart.Sign() == 0 {
		return intPart.String()
	}

	// Pad the fractional part to the full decimals width, then truncate
	frac := fracPart.String()
	if pad := int(decimals) - len(frac); pad > 0 {
		frac = strings.Repeat("0", pad) + frac
	}
	if len(frac) > maxFractionDigits {
		frac = frac[:maxFractionDigits]
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return intPart.String()
	}

	return intPart.String() + "." + frac
}
