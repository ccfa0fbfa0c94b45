// Package money holds the fixed-point helpers shared by every amount field.
// Amounts are shopspring decimals with two fractional digits.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
)

const Scale = 2

// Format renders d with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// Check rejects amounts that carry more than two fractional digits.
func Check(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(Scale)) {
		return apperr.Validation("%s must have at most %d decimal places", field, Scale)
	}

	return nil
}

// Parse reads an amount as exported by accounting tools: "1,234.56",
// "-588.74", "$1,200.00" and accounting negatives such as "(45.10)".
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	clean = strings.NewReplacer(",", "", "$", "", " ", "").Replace(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}

	if negative {
		d = d.Neg()
	}

	return d.Round(Scale), nil
}
