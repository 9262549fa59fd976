package tradecore

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is an OHLCV candle for a single time period. A Bar is immutable: it is
// constructed once per observed interval and never changes.
type Bar struct {
	timestamp time.Time
	symbol    string
	open      decimal.Decimal
	high      decimal.Decimal
	low       decimal.Decimal
	close     decimal.Decimal
	volume    decimal.Decimal
}

// BarParams is the construction record for a Bar.
type BarParams struct {
	Timestamp time.Time
	Symbol    string
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}

// NewBar validates the params and returns the Bar. All four prices must be
// positive, volume non-negative, and the OHLC ordering must hold: low is the
// floor and high the ceiling of the open and close. A doji (all four prices
// equal) is a valid bar.
func NewBar(p BarParams) (Bar, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return Bar{}, err
	}
	if err := requireTimestamp("timestamp", p.Timestamp); err != nil {
		return Bar{}, err
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{{"open", p.Open}, {"high", p.High}, {"low", p.Low}, {"close", p.Close}} {
		if err := requirePositive(f.name, f.v); err != nil {
			return Bar{}, err
		}
	}
	if err := requireNonNegative("volume", p.Volume); err != nil {
		return Bar{}, err
	}
	if p.High.LessThan(p.Low) {
		return Bar{}, errRelational("ohlc", "high %s must be >= low %s", p.High, p.Low)
	}
	if p.High.LessThan(p.Open) {
		return Bar{}, errRelational("ohlc", "high %s must be >= open %s", p.High, p.Open)
	}
	if p.High.LessThan(p.Close) {
		return Bar{}, errRelational("ohlc", "high %s must be >= close %s", p.High, p.Close)
	}
	if p.Low.GreaterThan(p.Open) {
		return Bar{}, errRelational("ohlc", "low %s must be <= open %s", p.Low, p.Open)
	}
	if p.Low.GreaterThan(p.Close) {
		return Bar{}, errRelational("ohlc", "low %s must be <= close %s", p.Low, p.Close)
	}
	return Bar{
		timestamp: p.Timestamp,
		symbol:    symbol,
		open:      p.Open,
		high:      p.High,
		low:       p.Low,
		close:     p.Close,
		volume:    p.Volume,
	}, nil
}

func (b Bar) Timestamp() time.Time    { return b.timestamp }
func (b Bar) Symbol() string          { return b.symbol }
func (b Bar) Open() decimal.Decimal   { return b.open }
func (b Bar) High() decimal.Decimal   { return b.high }
func (b Bar) Low() decimal.Decimal    { return b.low }
func (b Bar) Close() decimal.Decimal  { return b.close }
func (b Bar) Volume() decimal.Decimal { return b.volume }

// Midrange returns (high + low) / 2, a range-invariant price reference used
// by directional-change and range-bar strategies.
func (b Bar) Midrange() decimal.Decimal {
	return b.high.Add(b.low).Div(two)
}

// Range returns high - low, the intrabar price movement.
func (b Bar) Range() decimal.Decimal {
	return b.high.Sub(b.low)
}

// TrueRangeMidrange is the gap-aware range against the previous bar's
// midrange: max(range, |midrange - prev|). Without a previous midrange it is
// just the range.
func (b Bar) TrueRangeMidrange(prevMidrange decimal.NullDecimal) decimal.Decimal {
	r := b.Range()
	if !prevMidrange.Valid {
		return r
	}
	gap := b.Midrange().Sub(prevMidrange.Decimal).Abs()
	return decimal.Max(r, gap)
}

// TrueRangeHL is the gap-aware range against the previous bar's high and
// low: the maximum of the bar's own range, |high - prevHigh|, and
// |low - prevLow|, each prior term participating only when supplied.
func (b Bar) TrueRangeHL(prevHigh, prevLow decimal.NullDecimal) decimal.Decimal {
	tr := b.Range()
	if prevHigh.Valid {
		tr = decimal.Max(tr, b.high.Sub(prevHigh.Decimal).Abs())
	}
	if prevLow.Valid {
		tr = decimal.Max(tr, b.low.Sub(prevLow.Decimal).Abs())
	}
	return tr
}

// Equal reports field-by-field equality, with exact decimal comparison.
func (b Bar) Equal(o Bar) bool {
	return b.timestamp.Equal(o.timestamp) &&
		b.symbol == o.symbol &&
		b.open.Equal(o.open) &&
		b.high.Equal(o.high) &&
		b.low.Equal(o.low) &&
		b.close.Equal(o.close) &&
		b.volume.Equal(o.volume)
}

// MarshalJSON implements the json.Marshaler interface for Bar. Decimal
// fields serialize as exact strings.
func (b Bar) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("timestamp", b.timestamp)
	w.Append("symbol", b.symbol)
	w.Append("open", b.open)
	w.Append("high", b.high)
	w.Append("low", b.low)
	w.Append("close", b.close)
	w.Append("volume", b.volume)
	return w.MarshalJSON()
}

// barJSON is the decoding shape of a Bar.
type barJSON struct {
	Timestamp time.Time       `json:"timestamp"`
	Symbol    string          `json:"symbol"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Bar. The
// decoded value routes through NewBar, so it satisfies every construction
// invariant.
func (b *Bar) UnmarshalJSON(data []byte) error {
	var j barJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	bar, err := NewBar(BarParams{
		Timestamp: j.Timestamp,
		Symbol:    j.Symbol,
		Open:      j.Open,
		High:      j.High,
		Low:       j.Low,
		Close:     j.Close,
		Volume:    j.Volume,
	})
	if err != nil {
		return err
	}
	*b = bar
	return nil
}
