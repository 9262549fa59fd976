package tradecore

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Trade is a completed round trip: an entry fill, an exit fill and the
// summary metrics of the excursion between them.
type Trade struct {
	symbol        string
	entryFill     Fill
	exitFill      Fill
	pnl           decimal.Decimal
	returnPct     decimal.Decimal
	holdingPeriod int
}

// TradeParams is the construction record for a Trade.
type TradeParams struct {
	Symbol        string
	EntryFill     Fill
	ExitFill      Fill
	PnL           decimal.Decimal
	ReturnPct     decimal.Decimal
	HoldingPeriod int // in bars or seconds, whichever the strategy counts in
}

// NewTrade validates the params and returns the Trade. Both fills must be
// present, carry the trade's symbol, and be in entry-before-exit order.
func NewTrade(p TradeParams) (Trade, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return Trade{}, err
	}
	if p.EntryFill.isZero() {
		return Trade{}, errRelational("entryFill", "trade requires an entry fill")
	}
	if p.ExitFill.isZero() {
		return Trade{}, errRelational("exitFill", "trade requires an exit fill")
	}
	if p.EntryFill.Symbol() != symbol {
		return Trade{}, errRelational("entryFill", "entry fill is for %q, trade is for %q", p.EntryFill.Symbol(), symbol)
	}
	if p.ExitFill.Symbol() != symbol {
		return Trade{}, errRelational("exitFill", "exit fill is for %q, trade is for %q", p.ExitFill.Symbol(), symbol)
	}
	if p.ExitFill.Timestamp().Before(p.EntryFill.Timestamp()) {
		return Trade{}, errRelational("exitFill", "exit fill precedes entry fill")
	}
	if p.HoldingPeriod <= 0 {
		return Trade{}, errRange("holdingPeriod", "holding period must be positive, got %d", p.HoldingPeriod)
	}
	return Trade{
		symbol:        symbol,
		entryFill:     p.EntryFill,
		exitFill:      p.ExitFill,
		pnl:           p.PnL,
		returnPct:     p.ReturnPct,
		holdingPeriod: p.HoldingPeriod,
	}, nil
}

func (t Trade) Symbol() string             { return t.symbol }
func (t Trade) EntryFill() Fill            { return t.entryFill }
func (t Trade) ExitFill() Fill             { return t.exitFill }
func (t Trade) PnL() decimal.Decimal       { return t.pnl }
func (t Trade) ReturnPct() decimal.Decimal { return t.returnPct }
func (t Trade) HoldingPeriod() int         { return t.holdingPeriod }

// IsWinner reports whether the trade closed at a profit.
func (t Trade) IsWinner() bool { return t.pnl.IsPositive() }

// Equal reports field-by-field equality, with exact decimal comparison.
func (t Trade) Equal(o Trade) bool {
	return t.symbol == o.symbol &&
		t.entryFill.Equal(o.entryFill) &&
		t.exitFill.Equal(o.exitFill) &&
		t.pnl.Equal(o.pnl) &&
		t.returnPct.Equal(o.returnPct) &&
		t.holdingPeriod == o.holdingPeriod
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", t.symbol)
	w.Append("entryFill", t.entryFill)
	w.Append("exitFill", t.exitFill)
	w.Append("pnl", t.pnl)
	w.Append("returnPct", t.returnPct)
	w.Append("holdingPeriod", t.holdingPeriod)
	return w.MarshalJSON()
}

type tradeJSON struct {
	Symbol        string          `json:"symbol"`
	EntryFill     Fill            `json:"entryFill"`
	ExitFill      Fill            `json:"exitFill"`
	PnL           decimal.Decimal `json:"pnl"`
	ReturnPct     decimal.Decimal `json:"returnPct"`
	HoldingPeriod int             `json:"holdingPeriod"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Trade,
// routing through NewTrade.
func (t *Trade) UnmarshalJSON(data []byte) error {
	var j tradeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	tr, err := NewTrade(TradeParams{
		Symbol:        j.Symbol,
		EntryFill:     j.EntryFill,
		ExitFill:      j.ExitFill,
		PnL:           j.PnL,
		ReturnPct:     j.ReturnPct,
		HoldingPeriod: j.HoldingPeriod,
	})
	if err != nil {
		return err
	}
	*t = tr
	return nil
}
