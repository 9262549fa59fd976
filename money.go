package tradecore

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount for display in the given currency. Fiat
// currencies use their ISO symbol, grouping and fraction rules; crypto
// currencies keep the full decimal precision since they have no ISO entry.
func FormatAmount(amount decimal.Decimal, c Currency) string {
	cur := money.GetCurrency(string(c))
	if cur == nil {
		return amount.String() + " " + string(c)
	}
	minor := amount.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// RoundAmount rounds an amount to the currency's minor-unit precision. A
// currency without an ISO entry is returned unrounded.
func RoundAmount(amount decimal.Decimal, c Currency) decimal.Decimal {
	cur := money.GetCurrency(string(c))
	if cur == nil {
		return amount
	}
	return amount.Round(int32(cur.Fraction))
}
