package tradecore

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fill is the immutable audit record of a completed execution of all or part
// of an order.
type Fill struct {
	fillID        uuid.UUID
	clientOrderID uuid.UUID
	symbol        string
	side          OrderSide
	quantity      decimal.Decimal
	price         decimal.Decimal
	commission    decimal.Decimal
	slippage      decimal.NullDecimal
	realizedPnL   decimal.NullDecimal
	provider      Provider
	partial       bool
	timestamp     time.Time
}

// FillParams is the construction record for a Fill.
type FillParams struct {
	FillID        uuid.UUID
	ClientOrderID uuid.UUID // links the fill back to its OrderRequest
	Symbol        string
	Side          OrderSide
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	Commission    decimal.Decimal
	Slippage      decimal.NullDecimal
	RealizedPnL   decimal.NullDecimal
	Provider      Provider // optional
	Partial       bool
	Timestamp     time.Time
}

// NewFill validates the params and returns the Fill. Quantity and price must
// be positive and the commission non-negative. Both identifiers are
// mandatory: a fill without provenance is not auditable.
func NewFill(p FillParams) (Fill, error) {
	if p.FillID == uuid.Nil {
		return Fill{}, errFormat("fillId", "fill id is required")
	}
	if p.ClientOrderID == uuid.Nil {
		return Fill{}, errFormat("clientOrderId", "client order id is required")
	}
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return Fill{}, err
	}
	if _, err := ParseOrderSide(string(p.Side)); err != nil {
		return Fill{}, err
	}
	if err := requireTimestamp("timestamp", p.Timestamp); err != nil {
		return Fill{}, err
	}
	if err := requirePositive("quantity", p.Quantity); err != nil {
		return Fill{}, err
	}
	if err := requirePositive("price", p.Price); err != nil {
		return Fill{}, err
	}
	if err := requireNonNegative("commission", p.Commission); err != nil {
		return Fill{}, err
	}
	if p.Provider != "" {
		if _, err := ParseProvider(string(p.Provider)); err != nil {
			return Fill{}, err
		}
	}
	return Fill{
		fillID:        p.FillID,
		clientOrderID: p.ClientOrderID,
		symbol:        symbol,
		side:          p.Side,
		quantity:      p.Quantity,
		price:         p.Price,
		commission:    p.Commission,
		slippage:      p.Slippage,
		realizedPnL:   p.RealizedPnL,
		provider:      p.Provider,
		partial:       p.Partial,
		timestamp:     p.Timestamp,
	}, nil
}

func (f Fill) FillID() uuid.UUID                { return f.fillID }
func (f Fill) ClientOrderID() uuid.UUID         { return f.clientOrderID }
func (f Fill) Symbol() string                   { return f.symbol }
func (f Fill) Side() OrderSide                  { return f.side }
func (f Fill) Quantity() decimal.Decimal        { return f.quantity }
func (f Fill) Price() decimal.Decimal           { return f.price }
func (f Fill) Commission() decimal.Decimal      { return f.commission }
func (f Fill) Slippage() decimal.NullDecimal    { return f.slippage }
func (f Fill) RealizedPnL() decimal.NullDecimal { return f.realizedPnL }
func (f Fill) Provider() Provider               { return f.provider }
func (f Fill) Partial() bool                    { return f.partial }
func (f Fill) Timestamp() time.Time             { return f.timestamp }

// NotionalValue returns quantity * price, the gross value of the execution
// before costs.
func (f Fill) NotionalValue() decimal.Decimal {
	return f.quantity.Mul(f.price)
}

// TotalCost returns the signed cash impact of the fill. A buy costs the
// notional plus commission (outflow); a sell nets the notional inflow minus
// commission, the commission remaining a cost either way.
func (f Fill) TotalCost() decimal.Decimal {
	if f.side == Buy {
		return f.NotionalValue().Add(f.commission)
	}
	return f.NotionalValue().Neg().Add(f.commission)
}

// isZero reports an unconstructed Fill, used by the ledger's payload checks.
func (f Fill) isZero() bool { return f.symbol == "" }

// Equal reports field-by-field equality, with exact decimal comparison.
func (f Fill) Equal(o Fill) bool {
	return f.fillID == o.fillID &&
		f.clientOrderID == o.clientOrderID &&
		f.symbol == o.symbol &&
		f.side == o.side &&
		f.quantity.Equal(o.quantity) &&
		f.price.Equal(o.price) &&
		f.commission.Equal(o.commission) &&
		nullEqual(f.slippage, o.slippage) &&
		nullEqual(f.realizedPnL, o.realizedPnL) &&
		f.provider == o.provider &&
		f.partial == o.partial &&
		f.timestamp.Equal(o.timestamp)
}

// MarshalJSON implements the json.Marshaler interface for Fill.
func (f Fill) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("fillId", f.fillID)
	w.Append("clientOrderId", f.clientOrderID)
	w.Append("symbol", f.symbol)
	w.Append("side", f.side)
	w.Append("quantity", f.quantity)
	w.Append("price", f.price)
	w.Append("commission", f.commission)
	w.OptionalDecimal("slippage", f.slippage)
	w.OptionalDecimal("realizedPnl", f.realizedPnL)
	w.Optional("provider", f.provider)
	w.Optional("partial", f.partial)
	w.Append("timestamp", f.timestamp)
	return w.MarshalJSON()
}

type fillJSON struct {
	FillID        uuid.UUID           `json:"fillId"`
	ClientOrderID uuid.UUID           `json:"clientOrderId"`
	Symbol        string              `json:"symbol"`
	Side          OrderSide           `json:"side"`
	Quantity      decimal.Decimal     `json:"quantity"`
	Price         decimal.Decimal     `json:"price"`
	Commission    decimal.Decimal     `json:"commission"`
	Slippage      decimal.NullDecimal `json:"slippage"`
	RealizedPnL   decimal.NullDecimal `json:"realizedPnl"`
	Provider      Provider            `json:"provider"`
	Partial       bool                `json:"partial"`
	Timestamp     time.Time           `json:"timestamp"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Fill, routing
// through NewFill.
func (f *Fill) UnmarshalJSON(data []byte) error {
	var j fillJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	fill, err := NewFill(FillParams{
		FillID:        j.FillID,
		ClientOrderID: j.ClientOrderID,
		Symbol:        j.Symbol,
		Side:          j.Side,
		Quantity:      j.Quantity,
		Price:         j.Price,
		Commission:    j.Commission,
		Slippage:      j.Slippage,
		RealizedPnL:   j.RealizedPnL,
		Provider:      j.Provider,
		Partial:       j.Partial,
		Timestamp:     j.Timestamp,
	})
	if err != nil {
		return err
	}
	*f = fill
	return nil
}
