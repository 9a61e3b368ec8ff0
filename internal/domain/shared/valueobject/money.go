package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code
type Currency string

const (
	USD Currency = "USD" // US Dollar (default)
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	CHF Currency = "CHF" // Swiss Franc
	CAD Currency = "CAD" // Canadian Dollar
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = USD

// IsValid checks that the code is three letters long
func (c Currency) IsValid() bool {
	return len(c) == 3
}

// String returns the string representation of the currency
func (c Currency) String() string {
	return string(c)
}

// Money is a value object representing a non-negative monetary amount as
// an exact count of minor units (cents). It is immutable - all operations
// return new Money instances. Billable amounts never go below zero;
// computations that can legitimately turn negative (profit, margin) use
// SignedMoney instead.
type Money struct {
	minorUnits int64
	currency   Currency
}

// NewMoneyFromMinorUnits creates Money from an integer count of minor units
func NewMoneyFromMinorUnits(minorUnits int64, currency Currency) (Money, error) {
	if minorUnits < 0 {
		return Money{}, shared.ErrInvalidAmount
	}
	if !currency.IsValid() {
		return Money{}, shared.NewDomainError("INVALID_AMOUNT", "Currency must be a 3-letter ISO code")
	}
	return Money{minorUnits: minorUnits, currency: currency}, nil
}

// NewMoneyFromFloat creates Money from a major-unit float value.
// The value is rounded to the nearest minor unit.
func NewMoneyFromFloat(amount float64, currency Currency) (Money, error) {
	minor := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return NewMoneyFromMinorUnits(minor, currency)
}

// NewMoneyFromString creates Money from a major-unit decimal string such as "19.99"
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	minor := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return NewMoneyFromMinorUnits(minor, currency)
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{minorUnits: 0, currency: currency}
}

// MinorUnits returns the amount as an integer count of minor units
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// Decimal returns the major-unit amount as a decimal
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.minorUnits).Div(decimal.NewFromInt(100))
}

// Float64 returns the major-unit amount as a float64 (may lose precision)
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.minorUnits == 0
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.minorUnits > 0
}

// Add returns a new Money with the sum of both amounts.
// Fails if currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, currencyMismatch(m.currency, other.currency)
	}
	return Money{minorUnits: m.minorUnits + other.minorUnits, currency: m.currency}, nil
}

// MustAdd adds two Money values, panics if currencies don't match
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Subtract returns a new Money with the difference. Fails if currencies
// differ, or with an invalid-amount error if the result would be negative.
// Use SignedSubtract when a negative result is meaningful.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, currencyMismatch(m.currency, other.currency)
	}
	return NewMoneyFromMinorUnits(m.minorUnits-other.minorUnits, m.currency)
}

// SignedSubtract returns the difference as SignedMoney, which may be negative
func (m Money) SignedSubtract(other Money) (SignedMoney, error) {
	if m.currency != other.currency {
		return SignedMoney{}, currencyMismatch(m.currency, other.currency)
	}
	return SignedMoney{minorUnits: m.minorUnits - other.minorUnits, currency: m.currency}, nil
}

// Multiply returns a new Money multiplied by an integer factor
func (m Money) Multiply(factor int64) (Money, error) {
	return NewMoneyFromMinorUnits(m.minorUnits*factor, m.currency)
}

// Divide returns a new Money divided by an integer divisor. The result is
// rounded to the nearest minor unit, half away from zero. Fails on
// division by zero.
func (m Money) Divide(divisor int64) (Money, error) {
	if divisor == 0 {
		return Money{}, shared.ErrDivisionByZero
	}
	q := decimal.NewFromInt(m.minorUnits).
		Div(decimal.NewFromInt(divisor)).
		Round(0).
		IntPart()
	return NewMoneyFromMinorUnits(q, m.currency)
}

// MultiplyBasisPoints scales the amount by bp/10000, rounding to the
// nearest minor unit. A 20% deposit is MultiplyBasisPoints(2000).
func (m Money) MultiplyBasisPoints(bp int64) (Money, error) {
	scaled, err := m.Multiply(bp)
	if err != nil {
		return Money{}, err
	}
	return scaled.Divide(10000)
}

// MultiplyDecimal returns the amount scaled by an arbitrary decimal
// factor, rounded to the nearest minor unit. Used for hour-based cost
// computation where the factor is fractional.
func (m Money) MultiplyDecimal(factor decimal.Decimal) (Money, error) {
	minor := decimal.NewFromInt(m.minorUnits).Mul(factor).Round(0).IntPart()
	return NewMoneyFromMinorUnits(minor, m.currency)
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.minorUnits == other.minorUnits
}

// LessThan returns true if this Money is less than the other.
// Fails if currencies differ.
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, currencyMismatch(m.currency, other.currency)
	}
	return m.minorUnits < other.minorUnits, nil
}

// GreaterThan returns true if this Money is greater than the other
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, currencyMismatch(m.currency, other.currency)
	}
	return m.minorUnits > other.minorUnits, nil
}

// GreaterThanOrEqual returns true if this Money is at least the other
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, currencyMismatch(m.currency, other.currency)
	}
	return m.minorUnits >= other.minorUnits, nil
}

// String returns a string representation like "123.45 USD"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(2), m.currency)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}{
		Amount:   m.Decimal().StringFixed(2),
		Currency: m.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler for request binding. The
// constructor checks still apply: negative amounts and malformed
// currencies are rejected.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewMoneyFromString(v.Amount, v.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer for database storage (minor units only)
func (m Money) Value() (driver.Value, error) {
	return m.minorUnits, nil
}

// Scan implements sql.Scanner. Only the minor-unit amount is scanned;
// the currency must come from its own column.
func (m *Money) Scan(value any) error {
	if value == nil {
		m.minorUnits = 0
		if m.currency == "" {
			m.currency = DefaultCurrency
		}
		return nil
	}
	v, ok := value.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into Money", value)
	}
	if v < 0 {
		return shared.ErrInvalidAmount
	}
	m.minorUnits = v
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	return nil
}

func currencyMismatch(a, b Currency) error {
	return shared.NewDomainError("CURRENCY_MISMATCH",
		fmt.Sprintf("Currency mismatch: %s vs %s", a, b))
}
