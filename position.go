package tradecore

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Position is a holding in a single instrument. Quantity is signed: positive
// is long, negative is short, zero is flat. A Position belongs to a
// PortfolioState; "updating" one always means constructing a new instance.
type Position struct {
	symbol       string
	quantity     decimal.Decimal
	averagePrice decimal.Decimal
	realizedPnL  decimal.Decimal
	timestamp    time.Time
	currentPrice decimal.NullDecimal
}

// PositionParams is the construction record for a Position.
type PositionParams struct {
	Symbol       string
	Quantity     decimal.Decimal
	AveragePrice decimal.Decimal
	RealizedPnL  decimal.Decimal
	Timestamp    time.Time
	CurrentPrice decimal.NullDecimal
}

// NewPosition validates the params and returns the Position. The average
// price and, when present, the current price must be non-negative.
func NewPosition(p PositionParams) (Position, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return Position{}, err
	}
	if err := requireTimestamp("timestamp", p.Timestamp); err != nil {
		return Position{}, err
	}
	if err := requireNonNegative("averagePrice", p.AveragePrice); err != nil {
		return Position{}, err
	}
	if err := requireNonNegativeWhenSet("currentPrice", p.CurrentPrice); err != nil {
		return Position{}, err
	}
	return Position{
		symbol:       symbol,
		quantity:     p.Quantity,
		averagePrice: p.AveragePrice,
		realizedPnL:  p.RealizedPnL,
		timestamp:    p.Timestamp,
		currentPrice: p.CurrentPrice,
	}, nil
}

func (p Position) Symbol() string                    { return p.symbol }
func (p Position) Quantity() decimal.Decimal         { return p.quantity }
func (p Position) AveragePrice() decimal.Decimal     { return p.averagePrice }
func (p Position) RealizedPnL() decimal.Decimal      { return p.realizedPnL }
func (p Position) Timestamp() time.Time              { return p.timestamp }
func (p Position) CurrentPrice() decimal.NullDecimal { return p.currentPrice }

// IsLong reports a positive quantity.
func (p Position) IsLong() bool { return p.quantity.Sign() > 0 }

// IsShort reports a negative quantity.
func (p Position) IsShort() bool { return p.quantity.Sign() < 0 }

// IsFlat reports a zero quantity, regardless of the average price.
func (p Position) IsFlat() bool { return p.quantity.Sign() == 0 }

// markPrice resolves the price used to value the position: the current
// market price when known, else the cost basis.
func (p Position) markPrice() decimal.Decimal {
	if p.currentPrice.Valid {
		return p.currentPrice.Decimal
	}
	return p.averagePrice
}

// MarketValue returns the signed market value: quantity * mark price. A
// short position has a negative market value, so portfolio-level sums
// compose correctly across mixed long/short books.
func (p Position) MarketValue() decimal.Decimal {
	return p.quantity.Mul(p.markPrice())
}

// UnrealizedPnL returns (currentPrice - averagePrice) * quantity. The single
// signed formula is correct for both directions: a short's negative quantity
// flips the sign.
func (p Position) UnrealizedPnL(currentPrice decimal.Decimal) decimal.Decimal {
	return currentPrice.Sub(p.averagePrice).Mul(p.quantity)
}

// Equal reports field-by-field equality, with exact decimal comparison.
func (p Position) Equal(o Position) bool {
	return p.symbol == o.symbol &&
		p.quantity.Equal(o.quantity) &&
		p.averagePrice.Equal(o.averagePrice) &&
		p.realizedPnL.Equal(o.realizedPnL) &&
		p.timestamp.Equal(o.timestamp) &&
		nullEqual(p.currentPrice, o.currentPrice)
}

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", p.symbol)
	w.Append("quantity", p.quantity)
	w.Append("averagePrice", p.averagePrice)
	w.Append("realizedPnl", p.realizedPnL)
	w.Append("timestamp", p.timestamp)
	w.OptionalDecimal("currentPrice", p.currentPrice)
	return w.MarshalJSON()
}

type positionJSON struct {
	Symbol       string              `json:"symbol"`
	Quantity     decimal.Decimal     `json:"quantity"`
	AveragePrice decimal.Decimal     `json:"averagePrice"`
	RealizedPnL  decimal.Decimal     `json:"realizedPnl"`
	Timestamp    time.Time           `json:"timestamp"`
	CurrentPrice decimal.NullDecimal `json:"currentPrice"`

	// AvgEntryPrice is a decode-time compatibility alias from older
	// snapshots; when present it overrides averagePrice.
	AvgEntryPrice decimal.NullDecimal `json:"avgEntryPrice"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Position,
// routing through NewPosition.
func (p *Position) UnmarshalJSON(data []byte) error {
	var j positionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	average := j.AveragePrice
	if j.AvgEntryPrice.Valid {
		average = j.AvgEntryPrice.Decimal
	}
	pos, err := NewPosition(PositionParams{
		Symbol:       j.Symbol,
		Quantity:     j.Quantity,
		AveragePrice: average,
		RealizedPnL:  j.RealizedPnL,
		Timestamp:    j.Timestamp,
		CurrentPrice: j.CurrentPrice,
	})
	if err != nil {
		return err
	}
	*p = pos
	return nil
}
