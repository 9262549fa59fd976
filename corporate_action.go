package tradecore

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CorporateAction is an issuer event that adjusts positions or cash: a
// split, dividend, spinoff or merger. Ratio carries the split factor when
// one applies, Amount the per-share cash when one applies.
type CorporateAction struct {
	symbol string
	action ActionType
	exDate time.Time
	ratio  decimal.NullDecimal
	amount decimal.NullDecimal
}

// CorporateActionParams is the construction record for a CorporateAction.
type CorporateActionParams struct {
	Symbol string
	Action ActionType
	ExDate time.Time
	Ratio  decimal.NullDecimal
	Amount decimal.NullDecimal
}

// NewCorporateAction validates the params and returns the CorporateAction.
func NewCorporateAction(p CorporateActionParams) (CorporateAction, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return CorporateAction{}, err
	}
	if _, err := ParseActionType(string(p.Action)); err != nil {
		return CorporateAction{}, err
	}
	if err := requireTimestamp("exDate", p.ExDate); err != nil {
		return CorporateAction{}, err
	}
	return CorporateAction{
		symbol: symbol,
		action: p.Action,
		exDate: p.ExDate,
		ratio:  p.Ratio,
		amount: p.Amount,
	}, nil
}

func (a CorporateAction) Symbol() string              { return a.symbol }
func (a CorporateAction) Action() ActionType          { return a.action }
func (a CorporateAction) ExDate() time.Time           { return a.exDate }
func (a CorporateAction) Ratio() decimal.NullDecimal  { return a.ratio }
func (a CorporateAction) Amount() decimal.NullDecimal { return a.amount }

func (a CorporateAction) isZero() bool { return a.symbol == "" }

// Equal reports field-by-field equality, with exact decimal comparison.
func (a CorporateAction) Equal(o CorporateAction) bool {
	return a.symbol == o.symbol &&
		a.action == o.action &&
		a.exDate.Equal(o.exDate) &&
		nullEqual(a.ratio, o.ratio) &&
		nullEqual(a.amount, o.amount)
}

// MarshalJSON implements the json.Marshaler interface for CorporateAction.
func (a CorporateAction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", a.symbol)
	w.Append("actionType", a.action)
	w.Append("exDate", a.exDate)
	w.OptionalDecimal("ratio", a.ratio)
	w.OptionalDecimal("amount", a.amount)
	return w.MarshalJSON()
}

type corporateActionJSON struct {
	Symbol string              `json:"symbol"`
	Action ActionType          `json:"actionType"`
	ExDate time.Time           `json:"exDate"`
	Ratio  decimal.NullDecimal `json:"ratio"`
	Amount decimal.NullDecimal `json:"amount"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for
// CorporateAction, routing through NewCorporateAction.
func (a *CorporateAction) UnmarshalJSON(data []byte) error {
	var j corporateActionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	ca, err := NewCorporateAction(CorporateActionParams{
		Symbol: j.Symbol,
		Action: j.Action,
		ExDate: j.ExDate,
		Ratio:  j.Ratio,
		Amount: j.Amount,
	})
	if err != nil {
		return err
	}
	*a = ca
	return nil
}
