package tradecore

import "time"

// AssetClass classifies tradeable asset types. It drives symbol
// normalization: forex pairs canonicalize to BASE_QUOTE, crypto pairs to
// BASE-QUOTE, everything else to a bare uppercase ticker.
type AssetClass string

const (
	Forex  AssetClass = "forex"
	Crypto AssetClass = "crypto"
	Equity AssetClass = "equity"
	Future AssetClass = "future"
	Option AssetClass = "option"
)

// ParseAssetClass parses a string into an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch AssetClass(s) {
	case Forex, Crypto, Equity, Future, Option:
		return AssetClass(s), nil
	default:
		return "", errFormat("assetClass", "unknown asset class: %q", s)
	}
}

// OrderSide is the direction of an order or fill.
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// ParseOrderSide parses a string into an OrderSide.
func ParseOrderSide(s string) (OrderSide, error) {
	switch OrderSide(s) {
	case Buy, Sell:
		return OrderSide(s), nil
	default:
		return "", errFormat("side", "unknown order side: %q", s)
	}
}

// OrderType selects the execution style of an order. Limit and stop types
// come with conditional price requirements enforced by NewOrderRequest.
type OrderType string

const (
	Market    OrderType = "market"
	Limit     OrderType = "limit"
	Stop      OrderType = "stop"
	StopLimit OrderType = "stop_limit"
)

// ParseOrderType parses a string into an OrderType.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case Market, Limit, Stop, StopLimit:
		return OrderType(s), nil
	default:
		return "", errFormat("orderType", "unknown order type: %q", s)
	}
}

// TimeInForce is the duration an order remains active.
type TimeInForce string

const (
	Day TimeInForce = "day" // valid until end of trading session
	GTC TimeInForce = "gtc" // good til canceled
	IOC TimeInForce = "ioc" // immediate or cancel
	FOK TimeInForce = "fok" // fill or kill
)

// ParseTimeInForce parses a string into a TimeInForce.
func ParseTimeInForce(s string) (TimeInForce, error) {
	switch TimeInForce(s) {
	case Day, GTC, IOC, FOK:
		return TimeInForce(s), nil
	default:
		return "", errFormat("timeInForce", "unknown time in force: %q", s)
	}
}

// OrderStatus is the lifecycle status of an order, as reported by execution
// collaborators.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusSubmitted OrderStatus = "submitted"
	StatusPartial   OrderStatus = "partial"
	StatusFilled    OrderStatus = "filled"
	StatusCancelled OrderStatus = "cancelled"
	StatusRejected  OrderStatus = "rejected"
)

// ParseOrderStatus parses a string into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusSubmitted, StatusPartial, StatusFilled, StatusCancelled, StatusRejected:
		return OrderStatus(s), nil
	default:
		return "", errFormat("status", "unknown order status: %q", s)
	}
}

// Provider identifies a supported data or execution provider.
type Provider string

const (
	Oanda        Provider = "oanda"
	Binance      Provider = "binance"
	Coinbase     Provider = "coinbase"
	Polygon      Provider = "polygon"
	Alpaca       Provider = "alpaca"
	Tradestation Provider = "tradestation"
	Robinhood    Provider = "robinhood"
)

// ParseProvider parses a string into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case Oanda, Binance, Coinbase, Polygon, Alpaca, Tradestation, Robinhood:
		return Provider(s), nil
	default:
		return "", errFormat("provider", "unknown provider: %q", s)
	}
}

// Currency is an account or cash-movement denomination. The set is fixed to
// the denominations the stack actually settles in; codes keep their
// conventional fixed case.
type Currency string

const (
	USD  Currency = "USD"
	EUR  Currency = "EUR"
	GBP  Currency = "GBP"
	JPY  Currency = "JPY"
	BTC  Currency = "BTC"
	ETH  Currency = "ETH"
	USDT Currency = "USDT"
)

// ParseCurrency parses a string into a Currency.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case USD, EUR, GBP, JPY, BTC, ETH, USDT:
		return Currency(s), nil
	default:
		return "", errFormat("currency", "unknown currency: %q", s)
	}
}

// Timeframe is a bar interval.
type Timeframe string

const (
	M1  Timeframe = "1m"
	M5  Timeframe = "5m"
	M15 Timeframe = "15m"
	M30 Timeframe = "30m"
	H1  Timeframe = "1h"
	H4  Timeframe = "4h"
	D1  Timeframe = "1d"
	W1  Timeframe = "1w"
	MO1 Timeframe = "1mo"
)

// ParseTimeframe parses a string into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case M1, M5, M15, M30, H1, H4, D1, W1, MO1:
		return Timeframe(s), nil
	default:
		return "", errFormat("timeframe", "unknown timeframe: %q", s)
	}
}

// Duration returns the fixed length of the timeframe. Calendar-length frames
// (1mo) have no fixed duration and report false.
func (t Timeframe) Duration() (time.Duration, bool) {
	switch t {
	case M1:
		return time.Minute, true
	case M5:
		return 5 * time.Minute, true
	case M15:
		return 15 * time.Minute, true
	case M30:
		return 30 * time.Minute, true
	case H1:
		return time.Hour, true
	case H4:
		return 4 * time.Hour, true
	case D1:
		return 24 * time.Hour, true
	case W1:
		return 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// MovementType is the tag of a cash movement.
type MovementType string

const (
	Deposit    MovementType = "deposit"
	Withdrawal MovementType = "withdrawal"
	Dividend   MovementType = "dividend"
	Interest   MovementType = "interest"
	Fee        MovementType = "fee"
)

// ParseMovementType parses a string into a MovementType.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case Deposit, Withdrawal, Dividend, Interest, Fee:
		return MovementType(s), nil
	default:
		return "", errFormat("movementType", "unknown movement type: %q", s)
	}
}

// ActionType is the tag of a corporate action.
type ActionType string

const (
	SplitAction    ActionType = "split"
	DividendAction ActionType = "dividend"
	SpinoffAction  ActionType = "spinoff"
	MergerAction   ActionType = "merger"
)

// ParseActionType parses a string into an ActionType.
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case SplitAction, DividendAction, SpinoffAction, MergerAction:
		return ActionType(s), nil
	default:
		return "", errFormat("actionType", "unknown action type: %q", s)
	}
}

// EntryType is the discriminant tag of a ledger entry.
type EntryType string

const (
	EntryFill            EntryType = "fill"
	EntryCash            EntryType = "cash"
	EntryCorporateAction EntryType = "corporate_action"
	EntryMarginCall      EntryType = "margin_call"
)

// ParseEntryType parses a string into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryFill, EntryCash, EntryCorporateAction, EntryMarginCall:
		return EntryType(s), nil
	default:
		return "", errFormat("entryType", "unknown entry type: %q", s)
	}
}
