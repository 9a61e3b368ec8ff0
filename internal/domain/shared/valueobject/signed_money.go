package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// SignedMoney is a monetary amount that may be negative. It exists for
// read-side arithmetic such as profit and margin, where a loss is a
// legitimate result. Billable amounts stay in Money.
type SignedMoney struct {
	minorUnits int64
	currency   Currency
}

// NewSignedMoney creates a SignedMoney from minor units; any sign is allowed
func NewSignedMoney(minorUnits int64, currency Currency) (SignedMoney, error) {
	if !currency.IsValid() {
		return SignedMoney{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	return SignedMoney{minorUnits: minorUnits, currency: currency}, nil
}

// SignedZero returns a zero SignedMoney in the given currency
func SignedZero(currency Currency) SignedMoney {
	return SignedMoney{minorUnits: 0, currency: currency}
}

// Signed converts a Money into its signed counterpart
func (m Money) Signed() SignedMoney {
	return SignedMoney{minorUnits: m.minorUnits, currency: m.currency}
}

// MinorUnits returns the signed amount in minor units
func (s SignedMoney) MinorUnits() int64 {
	return s.minorUnits
}

// Currency returns the currency code
func (s SignedMoney) Currency() Currency {
	return s.currency
}

// IsNegative returns true if the amount is below zero
func (s SignedMoney) IsNegative() bool {
	return s.minorUnits < 0
}

// IsZero returns true if the amount is zero
func (s SignedMoney) IsZero() bool {
	return s.minorUnits == 0
}

// Add returns the sum of both amounts. Fails if currencies differ.
func (s SignedMoney) Add(other SignedMoney) (SignedMoney, error) {
	if s.currency != other.currency {
		return SignedMoney{}, currencyMismatch(s.currency, other.currency)
	}
	return SignedMoney{minorUnits: s.minorUnits + other.minorUnits, currency: s.currency}, nil
}

// Subtract returns the difference; the result may be negative
func (s SignedMoney) Subtract(other SignedMoney) (SignedMoney, error) {
	if s.currency != other.currency {
		return SignedMoney{}, currencyMismatch(s.currency, other.currency)
	}
	return SignedMoney{minorUnits: s.minorUnits - other.minorUnits, currency: s.currency}, nil
}

// Decimal returns the major-unit amount as a decimal
func (s SignedMoney) Decimal() decimal.Decimal {
	return decimal.NewFromInt(s.minorUnits).Div(decimal.NewFromInt(100))
}

// Float64 returns the major-unit amount as a float64 (may lose precision)
func (s SignedMoney) Float64() float64 {
	f, _ := s.Decimal().Float64()
	return f
}

// String returns a string representation like "-12.50 USD"
func (s SignedMoney) String() string {
	return fmt.Sprintf("%s %s", s.Decimal().StringFixed(2), s.currency)
}

// MarshalJSON implements json.Marshaler
func (s SignedMoney) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}{
		Amount:   s.Decimal().StringFixed(2),
		Currency: s.currency,
	})
}
