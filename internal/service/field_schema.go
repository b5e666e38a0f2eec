package service

import (
	"fmt"
	"math"
	"strings"

	"go-collector-ledger/internal/apperr"
	"go-collector-ledger/pkg/parse"

	"github.com/shopspring/decimal"
)

// The update and bulk-update operations accept free-form patches, but only
// the columns enumerated here may ever be written. Each field carries a kind
// that drives coercion of the incoming JSON value; anything malformed is an
// invalid-input error, never a silent default.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldMoney
	fieldInt
	fieldBool
	fieldDate
)

type fieldSchema map[string]fieldKind

var cardFields = fieldSchema{
	"name":              fieldText,
	"set_code":          fieldText,
	"collector_number":  fieldText,
	"condition":         fieldText,
	"language":          fieldText,
	"is_foil":           fieldBool,
	"acquisition_price": fieldMoney,
	"market_price":      fieldMoney,
	"quantity":          fieldInt,
	"acquired_at":       fieldDate,
	"notes":             fieldText,
}

var sealedFields = fieldSchema{
	"name":              fieldText,
	"set_code":          fieldText,
	"product_type":      fieldText,
	"acquisition_price": fieldMoney,
	"market_price":      fieldMoney,
	"quantity":          fieldInt,
	"acquired_at":       fieldDate,
	"notes":             fieldText,
}

var supplyFields = fieldSchema{
	"description":        fieldText,
	"supplier":           fieldText,
	"unit_cost":          fieldMoney,
	"quantity_purchased": fieldInt,
	"quantity_available": fieldInt,
	"purchased_at":       fieldDate,
	"notes":              fieldText,
}

// coerce validates and converts a patch against the schema. Unknown keys are
// skipped when strict is false (single-record update) and rejected when
// strict is true (bulk update filters and writes).
func (s fieldSchema) coerce(patch map[string]interface{}, strict bool) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(patch))
	for key, raw := range patch {
		kind, ok := s[key]
		if !ok {
			if strict {
				return nil, fmt.Errorf("%w: field %q is not writable", apperr.ErrInvalidInput, key)
			}
			continue
		}
		value, err := coerceValue(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		out[key] = value
	}
	return out, nil
}

func coerceValue(kind fieldKind, raw interface{}) (interface{}, error) {
	switch kind {
	case fieldText:
		if raw == nil {
			return "", nil
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected text, got %T", apperr.ErrInvalidInput, raw)
		}
		return s, nil

	case fieldMoney:
		switch v := raw.(type) {
		case nil:
			return decimal.Zero, nil
		case string:
			return parse.Money(v)
		case float64:
			return decimal.NewFromFloat(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case decimal.Decimal:
			return v, nil
		default:
			return nil, fmt.Errorf("%w: expected amount, got %T", apperr.ErrInvalidInput, raw)
		}

	case fieldInt:
		n, err := coerceInt(raw)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", apperr.ErrInvalidInput)
		}
		return n, nil

	case fieldBool:
		switch v := raw.(type) {
		case nil:
			return false, nil
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(v) {
			case "on", "true", "1":
				return true, nil
			case "", "off", "false", "0":
				return false, nil
			}
			return nil, fmt.Errorf("%w: malformed boolean %q", apperr.ErrInvalidInput, v)
		default:
			return nil, fmt.Errorf("%w: expected boolean, got %T", apperr.ErrInvalidInput, raw)
		}

	case fieldDate:
		switch v := raw.(type) {
		case nil:
			return nil, nil
		case string:
			return parse.Date(v)
		default:
			return nil, fmt.Errorf("%w: expected date string, got %T", apperr.ErrInvalidInput, raw)
		}
	}
	return nil, fmt.Errorf("%w: unknown field kind", apperr.ErrInvalidInput)
}

func coerceInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: quantity %v is not an integer", apperr.ErrInvalidInput, v)
		}
		return int(v), nil
	case string:
		return parse.Quantity(v)
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", apperr.ErrInvalidInput, raw)
	}
}
