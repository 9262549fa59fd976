package tradecore

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time snapshot of the best bid and ask for an
// instrument.
type Quote struct {
	symbol    string
	timestamp time.Time
	bid       decimal.Decimal
	ask       decimal.Decimal
	bidSize   decimal.Decimal
	askSize   decimal.Decimal
}

// QuoteParams is the construction record for a Quote.
type QuoteParams struct {
	Symbol    string
	Timestamp time.Time
	Bid       decimal.Decimal
	Ask       decimal.Decimal
	BidSize   decimal.Decimal
	AskSize   decimal.Decimal
}

// NewQuote validates the params and returns the Quote. Bid and ask must be
// positive, sizes non-negative, and the market must not be crossed: ask >=
// bid. An equal bid and ask is permitted (the zero-liquidity case).
func NewQuote(p QuoteParams) (Quote, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return Quote{}, err
	}
	if err := requireTimestamp("timestamp", p.Timestamp); err != nil {
		return Quote{}, err
	}
	if err := requirePositive("bid", p.Bid); err != nil {
		return Quote{}, err
	}
	if err := requirePositive("ask", p.Ask); err != nil {
		return Quote{}, err
	}
	if err := requireNonNegative("bidSize", p.BidSize); err != nil {
		return Quote{}, err
	}
	if err := requireNonNegative("askSize", p.AskSize); err != nil {
		return Quote{}, err
	}
	if p.Ask.LessThan(p.Bid) {
		return Quote{}, errRelational("spread", "market is crossed: ask %s < bid %s", p.Ask, p.Bid)
	}
	return Quote{
		symbol:    symbol,
		timestamp: p.Timestamp,
		bid:       p.Bid,
		ask:       p.Ask,
		bidSize:   p.BidSize,
		askSize:   p.AskSize,
	}, nil
}

func (q Quote) Symbol() string           { return q.symbol }
func (q Quote) Timestamp() time.Time     { return q.timestamp }
func (q Quote) Bid() decimal.Decimal     { return q.bid }
func (q Quote) Ask() decimal.Decimal     { return q.ask }
func (q Quote) BidSize() decimal.Decimal { return q.bidSize }
func (q Quote) AskSize() decimal.Decimal { return q.askSize }

// Mid returns the mid price (bid + ask) / 2.
func (q Quote) Mid() decimal.Decimal {
	return q.bid.Add(q.ask).Div(two)
}

// Spread returns ask - bid.
func (q Quote) Spread() decimal.Decimal {
	return q.ask.Sub(q.bid)
}

// SpreadBps returns the spread in basis points: spread / mid * 10000, or 0
// when the mid is zero.
func (q Quote) SpreadBps() decimal.Decimal {
	mid := q.Mid()
	if mid.IsZero() {
		return decimal.Zero
	}
	return q.Spread().Div(mid).Mul(decimal.NewFromInt(10000))
}

// Equal reports field-by-field equality, with exact decimal comparison.
func (q Quote) Equal(o Quote) bool {
	return q.symbol == o.symbol &&
		q.timestamp.Equal(o.timestamp) &&
		q.bid.Equal(o.bid) &&
		q.ask.Equal(o.ask) &&
		q.bidSize.Equal(o.bidSize) &&
		q.askSize.Equal(o.askSize)
}

// MarshalJSON implements the json.Marshaler interface for Quote.
func (q Quote) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", q.symbol)
	w.Append("timestamp", q.timestamp)
	w.Append("bid", q.bid)
	w.Append("ask", q.ask)
	w.Append("bidSize", q.bidSize)
	w.Append("askSize", q.askSize)
	return w.MarshalJSON()
}

type quoteJSON struct {
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
	BidSize   decimal.Decimal `json:"bidSize"`
	AskSize   decimal.Decimal `json:"askSize"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Quote, routing
// through NewQuote.
func (q *Quote) UnmarshalJSON(data []byte) error {
	var j quoteJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	quote, err := NewQuote(QuoteParams{
		Symbol:    j.Symbol,
		Timestamp: j.Timestamp,
		Bid:       j.Bid,
		Ask:       j.Ask,
		BidSize:   j.BidSize,
		AskSize:   j.AskSize,
	})
	if err != nil {
		return err
	}
	*q = quote
	return nil
}
