package tradecore

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioState is a point-in-time snapshot of an account: its cash
// balances, open positions and margin figures. Positions are keyed by
// canonical symbol, and the key set is deterministic: Symbols returns it in
// sorted order.
type PortfolioState struct {
	timestamp          time.Time
	cash               decimal.Decimal
	unsettledCash      decimal.Decimal
	realizedPnL        decimal.Decimal
	positions          map[string]Position
	symbols            []string
	buyingPower        decimal.NullDecimal
	marginUsed         decimal.NullDecimal
	dayTradesRemaining *int
}

// PortfolioStateParams is the construction record for a PortfolioState.
type PortfolioStateParams struct {
	Timestamp          time.Time
	Cash               decimal.Decimal
	UnsettledCash      decimal.Decimal
	RealizedPnL        decimal.Decimal
	Positions          map[string]Position
	BuyingPower        decimal.NullDecimal
	MarginUsed         decimal.NullDecimal
	DayTradesRemaining *int
}

// NewPortfolioState validates the params and returns the PortfolioState.
// Cash may be negative on a margin account. Position keys are canonicalized
// on the way in; two keys that collapse to the same canonical symbol are
// rejected.
func NewPortfolioState(p PortfolioStateParams) (PortfolioState, error) {
	if err := requireTimestamp("timestamp", p.Timestamp); err != nil {
		return PortfolioState{}, err
	}
	if err := requireNonNegativeWhenSet("buyingPower", p.BuyingPower); err != nil {
		return PortfolioState{}, err
	}
	if err := requireNonNegativeWhenSet("marginUsed", p.MarginUsed); err != nil {
		return PortfolioState{}, err
	}
	if p.DayTradesRemaining != nil && *p.DayTradesRemaining < 0 {
		return PortfolioState{}, errRange("dayTradesRemaining", "day trades remaining must be non-negative, got %d", *p.DayTradesRemaining)
	}
	positions := make(map[string]Position, len(p.Positions))
	for key, pos := range p.Positions {
		canonical, err := canonicalize("positions", key)
		if err != nil {
			return PortfolioState{}, err
		}
		if _, dup := positions[canonical]; dup {
			return PortfolioState{}, errConsistency("positions", "duplicate position for %q after normalization", canonical)
		}
		positions[canonical] = pos
	}
	symbols := make([]string, 0, len(positions))
	for s := range positions {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return PortfolioState{
		timestamp:          p.Timestamp,
		cash:               p.Cash,
		unsettledCash:      p.UnsettledCash,
		realizedPnL:        p.RealizedPnL,
		positions:          positions,
		symbols:            symbols,
		buyingPower:        p.BuyingPower,
		marginUsed:         p.MarginUsed,
		dayTradesRemaining: p.DayTradesRemaining,
	}, nil
}

func (s PortfolioState) Timestamp() time.Time             { return s.timestamp }
func (s PortfolioState) Cash() decimal.Decimal            { return s.cash }
func (s PortfolioState) UnsettledCash() decimal.Decimal   { return s.unsettledCash }
func (s PortfolioState) RealizedPnL() decimal.Decimal     { return s.realizedPnL }
func (s PortfolioState) BuyingPower() decimal.NullDecimal { return s.buyingPower }
func (s PortfolioState) MarginUsed() decimal.NullDecimal  { return s.marginUsed }

// DayTradesRemaining returns the pattern-day-trade allowance and whether the
// broker reported one.
func (s PortfolioState) DayTradesRemaining() (int, bool) {
	if s.dayTradesRemaining == nil {
		return 0, false
	}
	return *s.dayTradesRemaining, true
}

// Symbols returns the canonical symbols with an open position, sorted.
func (s PortfolioState) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Position looks up the position for a symbol. The query is trimmed and
// uppercased, but not otherwise rewritten: it must already be canonical.
func (s PortfolioState) Position(symbol string) (Position, bool) {
	pos, ok := s.positions[strings.ToUpper(strings.TrimSpace(symbol))]
	return pos, ok
}

// Len returns the number of open positions.
func (s PortfolioState) Len() int { return len(s.positions) }

// TotalMarketValue returns the sum of the signed market values of all
// positions.
func (s PortfolioState) TotalMarketValue() decimal.Decimal {
	total := decimal.Zero
	for _, sym := range s.symbols {
		total = total.Add(s.positions[sym].MarketValue())
	}
	return total
}

// Equity returns settled cash plus unsettled cash plus the total market
// value of open positions.
func (s PortfolioState) Equity() decimal.Decimal {
	return s.cash.Add(s.unsettledCash).Add(s.TotalMarketValue())
}

// TotalUnrealizedPnL prices every open position from the given mark prices
// and sums the unrealized P&L. Price keys are trimmed and uppercased before
// lookup; a position with no price in the map is a Lookup error.
func (s PortfolioState) TotalUnrealizedPnL(prices map[string]decimal.Decimal) (decimal.Decimal, error) {
	marks := make(map[string]decimal.Decimal, len(prices))
	for sym, price := range prices {
		marks[strings.ToUpper(strings.TrimSpace(sym))] = price
	}
	total := decimal.Zero
	for _, sym := range s.symbols {
		price, ok := marks[sym]
		if !ok {
			return decimal.Zero, errLookup("prices", "no price for position %q", sym)
		}
		total = total.Add(s.positions[sym].UnrealizedPnL(price))
	}
	return total, nil
}

// Equal reports field-by-field equality, with exact decimal comparison and
// position-by-position comparison of the maps.
func (s PortfolioState) Equal(o PortfolioState) bool {
	if (s.dayTradesRemaining == nil) != (o.dayTradesRemaining == nil) {
		return false
	}
	if s.dayTradesRemaining != nil && *s.dayTradesRemaining != *o.dayTradesRemaining {
		return false
	}
	if len(s.positions) != len(o.positions) {
		return false
	}
	for sym, pos := range s.positions {
		other, ok := o.positions[sym]
		if !ok || !pos.Equal(other) {
			return false
		}
	}
	return s.timestamp.Equal(o.timestamp) &&
		s.cash.Equal(o.cash) &&
		s.unsettledCash.Equal(o.unsettledCash) &&
		s.realizedPnL.Equal(o.realizedPnL) &&
		nullEqual(s.buyingPower, o.buyingPower) &&
		nullEqual(s.marginUsed, o.marginUsed)
}

func (s PortfolioState) isZero() bool { return s.timestamp.IsZero() }

// MarshalJSON implements the json.Marshaler interface for PortfolioState.
// Positions are written in sorted symbol order so the output is
// byte-for-byte deterministic.
func (s PortfolioState) MarshalJSON() ([]byte, error) {
	var positions jsonObjectWriter
	for _, sym := range s.symbols {
		positions.Append(sym, s.positions[sym])
	}
	var w jsonObjectWriter
	w.Append("timestamp", s.timestamp)
	w.Append("cash", s.cash)
	w.Append("unsettledCash", s.unsettledCash)
	w.Append("realizedPnl", s.realizedPnL)
	w.Append("positions", &positions)
	w.OptionalDecimal("buyingPower", s.buyingPower)
	w.OptionalDecimal("marginUsed", s.marginUsed)
	if s.dayTradesRemaining != nil {
		w.Append("dayTradesRemaining", *s.dayTradesRemaining)
	}
	return w.MarshalJSON()
}

type portfolioStateJSON struct {
	Timestamp          time.Time           `json:"timestamp"`
	Cash               decimal.Decimal     `json:"cash"`
	UnsettledCash      decimal.Decimal     `json:"unsettledCash"`
	RealizedPnL        decimal.Decimal     `json:"realizedPnl"`
	Positions          map[string]Position `json:"positions"`
	BuyingPower        decimal.NullDecimal `json:"buyingPower"`
	MarginUsed         decimal.NullDecimal `json:"marginUsed"`
	DayTradesRemaining *int                `json:"dayTradesRemaining"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for
// PortfolioState, routing through NewPortfolioState.
func (s *PortfolioState) UnmarshalJSON(data []byte) error {
	var j portfolioStateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	state, err := NewPortfolioState(PortfolioStateParams{
		Timestamp:          j.Timestamp,
		Cash:               j.Cash,
		UnsettledCash:      j.UnsettledCash,
		RealizedPnL:        j.RealizedPnL,
		Positions:          j.Positions,
		BuyingPower:        j.BuyingPower,
		MarginUsed:         j.MarginUsed,
		DayTradesRemaining: j.DayTradesRemaining,
	})
	if err != nil {
		return err
	}
	*s = state
	return nil
}
