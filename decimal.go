package tradecore

import (
	"time"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Dec is a convenient factory for decimal.Decimal values.
func Dec[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | string | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			panic("invalid decimal literal " + v)
		}
		return d
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// NDec wraps a value into a present decimal.NullDecimal.
func NDec[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | string | decimal.Decimal](value T) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: Dec(value), Valid: true}
}

// NoDec is the absent decimal.NullDecimal.
func NoDec() decimal.NullDecimal { return decimal.NullDecimal{} }

// requirePositive rejects values <= 0.
func requirePositive(field string, v decimal.Decimal) error {
	if v.Sign() <= 0 {
		return errRange(field, "must be > 0, got %s", v)
	}
	return nil
}

// requireNonNegative rejects values < 0.
func requireNonNegative(field string, v decimal.Decimal) error {
	if v.Sign() < 0 {
		return errRange(field, "must be >= 0, got %s", v)
	}
	return nil
}

// requirePositiveWhenSet rejects present values <= 0; an absent value is fine.
func requirePositiveWhenSet(field string, v decimal.NullDecimal) error {
	if v.Valid {
		return requirePositive(field, v.Decimal)
	}
	return nil
}

// requireNonNegativeWhenSet rejects present values < 0; an absent value is fine.
func requireNonNegativeWhenSet(field string, v decimal.NullDecimal) error {
	if v.Valid {
		return requireNonNegative(field, v.Decimal)
	}
	return nil
}

// requireTimestamp rejects the zero time. Go timestamps always carry an
// offset, so the zero value is the one way to smuggle in a "naive" timestamp.
func requireTimestamp(field string, t time.Time) error {
	if t.IsZero() {
		return errFormat(field, "timestamp is required and must carry a UTC offset")
	}
	return nil
}

// nullEqual compares two optional decimals: both absent, or both present and
// numerically equal.
func nullEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
