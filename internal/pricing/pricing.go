// Package pricing holds the fixed order price calculation and the
// delivery-field sanitizers. Amounts in DZD are whole dinars (int64);
// the USD side stays decimal to avoid float rounding.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// ExchangeRate is the fixed USD -> DZD conversion applied to every order.
	ExchangeRate = 250
	// CommissionDZD is the flat service fee added regardless of product price.
	CommissionDZD = 500
	// PostalCodeMaxLen caps the sanitized postal code length.
	PostalCodeMaxLen = 5
)

var ErrNegativePrice = errors.New("price must be non-negative")

// Breakdown is the computed monetary triple stored on every order.
// TotalDZD always equals PriceDZD + CommissionDZD.
type Breakdown struct {
	PriceDZD      int64 `json:"price_dzd"`
	CommissionDZD int64 `json:"commission_dzd"`
	TotalDZD      int64 `json:"total_price_dzd"`
}

// Quote computes the DZD breakdown for a USD product price.
// PriceDZD = round(priceUSD * 250), half away from zero.
func Quote(priceUSD decimal.Decimal) (Breakdown, error) {
	if priceUSD.IsNegative() {
		return Breakdown{}, ErrNegativePrice
	}
	local := priceUSD.Mul(decimal.NewFromInt(ExchangeRate)).Round(0).IntPart()
	return Breakdown{
		PriceDZD:      local,
		CommissionDZD: CommissionDZD,
		TotalDZD:      local + CommissionDZD,
	}, nil
}

// QuoteString parses a USD amount and quotes it. An unparseable amount is
// not an error here: it quotes as zero, mirroring the intake form which
// shows zeroes until the price is corrected.
func QuoteString(priceUSD string) Breakdown {
	d, err := decimal.NewFromString(priceUSD)
	if err != nil || d.IsNegative() {
		b, _ := Quote(decimal.Zero)
		return b
	}
	b, _ := Quote(d)
	return b
}

// SanitizePostalCode keeps only digit characters and truncates to five.
func SanitizePostalCode(s string) string {
	out := make([]byte, 0, PostalCodeMaxLen)
	for i := 0; i < len(s) && len(out) < PostalCodeMaxLen; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
