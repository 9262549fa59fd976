package tradecore

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRequest is the immutable intent to trade, as handed to an execution
// venue. The order type dictates which price fields are required: a limit
// order needs a limit price, a stop order a stop price, and a stop-limit
// order both. A market order needs neither.
type OrderRequest struct {
	clientOrderID uuid.UUID
	symbol        string
	side          OrderSide
	orderType     OrderType
	quantity      decimal.Decimal
	limitPrice    decimal.NullDecimal
	stopPrice     decimal.NullDecimal
	timeInForce   TimeInForce
	strategyID    string
	confidence    *float64
	timestamp     time.Time
}

// OrderRequestParams is the construction record for an OrderRequest.
type OrderRequestParams struct {
	ClientOrderID uuid.UUID // generated when zero
	Symbol        string
	Side          OrderSide
	OrderType     OrderType
	Quantity      decimal.Decimal
	LimitPrice    decimal.NullDecimal
	StopPrice     decimal.NullDecimal
	TimeInForce   TimeInForce // defaults to Day
	StrategyID    string
	Confidence    *float64 // within [0, 1] when set
	Timestamp     time.Time
}

// NewOrderRequest validates the params and returns the OrderRequest. A zero
// ClientOrderID is replaced with a fresh one so every request is
// individually traceable.
func NewOrderRequest(p OrderRequestParams) (OrderRequest, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return OrderRequest{}, err
	}
	if _, err := ParseOrderSide(string(p.Side)); err != nil {
		return OrderRequest{}, err
	}
	if _, err := ParseOrderType(string(p.OrderType)); err != nil {
		return OrderRequest{}, err
	}
	tif := p.TimeInForce
	if tif == "" {
		tif = Day
	}
	if _, err := ParseTimeInForce(string(tif)); err != nil {
		return OrderRequest{}, err
	}
	if err := requireTimestamp("timestamp", p.Timestamp); err != nil {
		return OrderRequest{}, err
	}
	if err := requirePositive("quantity", p.Quantity); err != nil {
		return OrderRequest{}, err
	}
	if err := requirePositiveWhenSet("limitPrice", p.LimitPrice); err != nil {
		return OrderRequest{}, err
	}
	if err := requirePositiveWhenSet("stopPrice", p.StopPrice); err != nil {
		return OrderRequest{}, err
	}
	switch p.OrderType {
	case Limit:
		if !p.LimitPrice.Valid {
			return OrderRequest{}, errRelational("limitPrice", "limit order requires a limit price")
		}
	case Stop:
		if !p.StopPrice.Valid {
			return OrderRequest{}, errRelational("stopPrice", "stop order requires a stop price")
		}
	case StopLimit:
		if !p.LimitPrice.Valid || !p.StopPrice.Valid {
			return OrderRequest{}, errRelational("orderType", "stop-limit order requires both a limit and a stop price")
		}
	}
	if p.Confidence != nil && (*p.Confidence < 0 || *p.Confidence > 1) {
		return OrderRequest{}, errRange("confidence", "confidence %v is outside [0, 1]", *p.Confidence)
	}
	id := p.ClientOrderID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return OrderRequest{
		clientOrderID: id,
		symbol:        symbol,
		side:          p.Side,
		orderType:     p.OrderType,
		quantity:      p.Quantity,
		limitPrice:    p.LimitPrice,
		stopPrice:     p.StopPrice,
		timeInForce:   tif,
		strategyID:    p.StrategyID,
		confidence:    p.Confidence,
		timestamp:     p.Timestamp,
	}, nil
}

func (r OrderRequest) ClientOrderID() uuid.UUID        { return r.clientOrderID }
func (r OrderRequest) Symbol() string                  { return r.symbol }
func (r OrderRequest) Side() OrderSide                 { return r.side }
func (r OrderRequest) OrderType() OrderType            { return r.orderType }
func (r OrderRequest) Quantity() decimal.Decimal       { return r.quantity }
func (r OrderRequest) LimitPrice() decimal.NullDecimal { return r.limitPrice }
func (r OrderRequest) StopPrice() decimal.NullDecimal  { return r.stopPrice }
func (r OrderRequest) TimeInForce() TimeInForce        { return r.timeInForce }
func (r OrderRequest) StrategyID() string              { return r.strategyID }
func (r OrderRequest) Timestamp() time.Time            { return r.timestamp }

// Confidence returns the strategy's conviction in [0, 1] and whether one was
// supplied.
func (r OrderRequest) Confidence() (float64, bool) {
	if r.confidence == nil {
		return 0, false
	}
	return *r.confidence, true
}

// Equal reports field-by-field equality, with exact decimal comparison.
func (r OrderRequest) Equal(o OrderRequest) bool {
	if (r.confidence == nil) != (o.confidence == nil) {
		return false
	}
	if r.confidence != nil && *r.confidence != *o.confidence {
		return false
	}
	return r.clientOrderID == o.clientOrderID &&
		r.symbol == o.symbol &&
		r.side == o.side &&
		r.orderType == o.orderType &&
		r.quantity.Equal(o.quantity) &&
		nullEqual(r.limitPrice, o.limitPrice) &&
		nullEqual(r.stopPrice, o.stopPrice) &&
		r.timeInForce == o.timeInForce &&
		r.strategyID == o.strategyID &&
		r.timestamp.Equal(o.timestamp)
}

// MarshalJSON implements the json.Marshaler interface for OrderRequest.
func (r OrderRequest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("clientOrderId", r.clientOrderID)
	w.Append("symbol", r.symbol)
	w.Append("side", r.side)
	w.Append("orderType", r.orderType)
	w.Append("quantity", r.quantity)
	w.OptionalDecimal("limitPrice", r.limitPrice)
	w.OptionalDecimal("stopPrice", r.stopPrice)
	w.Append("timeInForce", r.timeInForce)
	w.Optional("strategyId", r.strategyID)
	if r.confidence != nil {
		w.Append("confidence", *r.confidence)
	}
	w.Append("timestamp", r.timestamp)
	return w.MarshalJSON()
}

type orderRequestJSON struct {
	ClientOrderID uuid.UUID           `json:"clientOrderId"`
	Symbol        string              `json:"symbol"`
	Side          OrderSide           `json:"side"`
	OrderType     OrderType           `json:"orderType"`
	Quantity      decimal.Decimal     `json:"quantity"`
	LimitPrice    decimal.NullDecimal `json:"limitPrice"`
	StopPrice     decimal.NullDecimal `json:"stopPrice"`
	TimeInForce   TimeInForce         `json:"timeInForce"`
	StrategyID    string              `json:"strategyId"`
	Confidence    *float64            `json:"confidence"`
	Timestamp     time.Time           `json:"timestamp"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for OrderRequest,
// routing through NewOrderRequest.
func (r *OrderRequest) UnmarshalJSON(data []byte) error {
	var j orderRequestJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	req, err := NewOrderRequest(OrderRequestParams{
		ClientOrderID: j.ClientOrderID,
		Symbol:        j.Symbol,
		Side:          j.Side,
		OrderType:     j.OrderType,
		Quantity:      j.Quantity,
		LimitPrice:    j.LimitPrice,
		StopPrice:     j.StopPrice,
		TimeInForce:   j.TimeInForce,
		StrategyID:    j.StrategyID,
		Confidence:    j.Confidence,
		Timestamp:     j.Timestamp,
	})
	if err != nil {
		return err
	}
	*r = req
	return nil
}
