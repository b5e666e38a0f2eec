// Package parse coerces the string literals arriving from forms, JSON and CSV
// into the numeric and date types the services work with. Malformed literals
// are reported as apperr.ErrInvalidInput, never silently defaulted.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-collector-ledger/internal/apperr"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Money parses a decimal money literal. The empty string is zero.
func Money(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed amount %q", apperr.ErrInvalidInput, s)
	}
	return d, nil
}

// NonNegativeMoney parses a money literal and rejects negative values.
func NonNegativeMoney(s string) (decimal.Decimal, error) {
	d, err := Money(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount %q must not be negative", apperr.ErrInvalidInput, s)
	}
	return d, nil
}

// Quantity parses an integer literal. The empty string is zero.
func Quantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed quantity %q", apperr.ErrInvalidInput, s)
	}
	return n, nil
}

// Date parses an ISO date (YYYY-MM-DD). The empty string yields nil.
func Date(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed date %q, expected YYYY-MM-DD", apperr.ErrInvalidInput, s)
	}
	return &t, nil
}

// DateOrToday parses an ISO date, substituting today's date for the empty string.
func DateOrToday(s string) (time.Time, error) {
	t, err := Date(s)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		now := time.Now().UTC().Truncate(24 * time.Hour)
		return now, nil
	}
	return *t, nil
}
