// Package feed decodes raw provider payloads into market data values.
//
// Every provider names and nests its candle and ticker fields differently,
// so a spec carries jsonpath extraction paths for one payload shape and the
// decode functions apply them. The package never fetches anything itself:
// callers hand it the payload bytes.
package feed

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tradecore"
	"github.com/shopspring/decimal"
)

// SeriesSpec describes where one provider keeps its candle fields. Candles
// selects the list of candle nodes in the payload; the remaining paths are
// evaluated against each candle node.
type SeriesSpec struct {
	Provider  tradecore.Provider
	Class     tradecore.AssetClass
	Candles   string
	Timestamp string
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string // empty when the provider reports no volume
}

// QuoteSpec describes where one provider keeps its top-of-book fields. The
// paths are evaluated against the payload root. Timestamp may be empty for
// providers that send no instant; the caller's asOf is used instead.
type QuoteSpec struct {
	Provider  tradecore.Provider
	Class     tradecore.AssetClass
	Timestamp string
	Bid       string
	Ask       string
	BidSize   string
	AskSize   string
}

// OandaCandles decodes the Oanda v20 candles endpoint, shaped like:
//
//	{"instrument":"EUR_USD","granularity":"H1","candles":[
//	  {"time":"2025-03-14T09:00:00.000000000Z","volume":125000,
//	   "mid":{"o":"1.0850","h":"1.0875","l":"1.0840","c":"1.0860"}}]}
var OandaCandles = SeriesSpec{
	Provider:  tradecore.Oanda,
	Class:     tradecore.Forex,
	Candles:   "$.candles[*]",
	Timestamp: "$.time",
	Open:      "$.mid.o",
	High:      "$.mid.h",
	Low:       "$.mid.l",
	Close:     "$.mid.c",
	Volume:    "$.volume",
}

// BinanceKlines decodes the Binance klines endpoint, whose candles are
// positional arrays: open time in milliseconds, then OHLC and volume as
// strings.
var BinanceKlines = SeriesSpec{
	Provider:  tradecore.Binance,
	Class:     tradecore.Crypto,
	Candles:   "$[*]",
	Timestamp: "$[0]",
	Open:      "$[1]",
	High:      "$[2]",
	Low:       "$[3]",
	Close:     "$[4]",
	Volume:    "$[5]",
}

// BinanceBookTicker decodes the Binance bookTicker endpoint, which carries
// no instant of its own.
var BinanceBookTicker = QuoteSpec{
	Provider: tradecore.Binance,
	Class:    tradecore.Crypto,
	Bid:      "$.bidPrice",
	Ask:      "$.askPrice",
	BidSize:  "$.bidQty",
	AskSize:  "$.askQty",
}

// DecodeBars extracts the candle series for symbol from a raw provider
// payload. The symbol is canonicalized for the spec's asset class; each
// candle goes through the bar constructor, so a malformed candle fails the
// whole series rather than slipping through.
func DecodeBars(spec SeriesSpec, symbol string, payload []byte) ([]tradecore.Bar, error) {
	symbol = tradecore.NormalizeSymbol(symbol, spec.Class)

	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return nil, fmt.Errorf("error decoding %q payload: %w", symbol, err)
	}
	jval, err := jsonpath.Get(spec.Candles, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", symbol, spec.Candles, err)
	}
	candles, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: %q is not a list", symbol, spec.Candles)
	}

	bars := make([]tradecore.Bar, 0, len(candles))
	for i, candle := range candles {
		ts, err := extractTime(spec.Timestamp, candle)
		if err != nil {
			return nil, fmt.Errorf("candle %d of %q: %w", i, symbol, err)
		}
		open, err := extractDecimal(spec.Open, candle)
		if err != nil {
			return nil, fmt.Errorf("candle %d of %q: %w", i, symbol, err)
		}
		high, err := extractDecimal(spec.High, candle)
		if err != nil {
			return nil, fmt.Errorf("candle %d of %q: %w", i, symbol, err)
		}
		low, err := extractDecimal(spec.Low, candle)
		if err != nil {
			return nil, fmt.Errorf("candle %d of %q: %w", i, symbol, err)
		}
		cls, err := extractDecimal(spec.Close, candle)
		if err != nil {
			return nil, fmt.Errorf("candle %d of %q: %w", i, symbol, err)
		}
		var volume decimal.Decimal
		if spec.Volume != "" {
			volume, err = extractDecimal(spec.Volume, candle)
			if err != nil {
				return nil, fmt.Errorf("candle %d of %q: %w", i, symbol, err)
			}
		}
		bar, err := tradecore.NewBar(tradecore.BarParams{
			Timestamp: ts,
			Symbol:    symbol,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     cls,
			Volume:    volume,
		})
		if err != nil {
			return nil, fmt.Errorf("candle %d of %q: %w", i, symbol, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// DecodeQuote extracts the top of book for symbol from a raw provider
// payload. asOf stamps the quote when the spec has no timestamp path.
func DecodeQuote(spec QuoteSpec, symbol string, asOf time.Time, payload []byte) (tradecore.Quote, error) {
	symbol = tradecore.NormalizeSymbol(symbol, spec.Class)

	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return tradecore.Quote{}, fmt.Errorf("error decoding %q payload: %w", symbol, err)
	}
	ts := asOf
	if spec.Timestamp != "" {
		var err error
		ts, err = extractTime(spec.Timestamp, jobj)
		if err != nil {
			return tradecore.Quote{}, fmt.Errorf("quote for %q: %w", symbol, err)
		}
	}
	bid, err := extractDecimal(spec.Bid, jobj)
	if err != nil {
		return tradecore.Quote{}, fmt.Errorf("quote for %q: %w", symbol, err)
	}
	ask, err := extractDecimal(spec.Ask, jobj)
	if err != nil {
		return tradecore.Quote{}, fmt.Errorf("quote for %q: %w", symbol, err)
	}
	var bidSize, askSize decimal.Decimal
	if spec.BidSize != "" {
		if bidSize, err = extractDecimal(spec.BidSize, jobj); err != nil {
			return tradecore.Quote{}, fmt.Errorf("quote for %q: %w", symbol, err)
		}
	}
	if spec.AskSize != "" {
		if askSize, err = extractDecimal(spec.AskSize, jobj); err != nil {
			return tradecore.Quote{}, fmt.Errorf("quote for %q: %w", symbol, err)
		}
	}
	return tradecore.NewQuote(tradecore.QuoteParams{
		Symbol:    symbol,
		Timestamp: ts,
		Bid:       bid,
		Ask:       ask,
		BidSize:   bidSize,
		AskSize:   askSize,
	})
}

// extract evaluates a jsonpath against a node.
func extract(path string, jobj any) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer,
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

// extractDecimal reads a numeric field that providers send either as a
// string or as a JSON number.
func extractDecimal(path string, jobj any) (decimal.Decimal, error) {
	jval, err := extract(path, jobj)
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch v := jval.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%q is an invalid number at %q: %w", v, path, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number at %q: %v", path, jval)
	}
}

// extractTime reads an instant sent either as an RFC 3339 string or as an
// epoch number, in seconds or milliseconds.
func extractTime(path string, jobj any) (time.Time, error) {
	jval, err := extract(path, jobj)
	if err != nil {
		return time.Time{}, err
	}
	switch v := jval.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return ts, nil
		}
		epoch, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%q is an invalid instant at %q", v, path)
		}
		return epochTime(epoch), nil
	case float64:
		return epochTime(int64(v)), nil
	default:
		return time.Time{}, fmt.Errorf("not an instant at %q: %v", path, jval)
	}
}

// epochTime interprets values beyond the year 33658 in seconds as
// milliseconds, which is what every provider sending ms epochs produces.
func epochTime(epoch int64) time.Time {
	if epoch > 1e12 {
		return time.UnixMilli(epoch).UTC()
	}
	return time.Unix(epoch, 0).UTC()
}
