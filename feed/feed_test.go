package feed

import (
	"testing"
	"time"

	"github.com/etnz/tradecore"
)

const oandaCandlesPayload = `{
  "instrument": "EUR_USD",
  "granularity": "H1",
  "candles": [
    {"complete": true, "volume": 125000, "time": "2025-03-14T09:00:00.000000000Z",
     "mid": {"o": "1.0850", "h": "1.0875", "l": "1.0840", "c": "1.0860"}},
    {"complete": true, "volume": 98000, "time": "2025-03-14T10:00:00.000000000Z",
     "mid": {"o": "1.0860", "h": "1.0880", "l": "1.0855", "c": "1.0870"}}
  ]
}`

const binanceKlinesPayload = `[
  [1741942800000, "65000.00", "65100.00", "64900.00", "65050.00", "12.5",
   1741946399999, "812812.50", 4123, "6.2", "403100.00", "0"]
]`

const binanceBookTickerPayload = `{
  "symbol": "BTCUSDT",
  "bidPrice": "64995.50", "bidQty": "1.2",
  "askPrice": "65004.50", "askQty": "0.8"
}`

func TestDecodeBarsOanda(t *testing.T) {
	bars, err := DecodeBars(OandaCandles, "EUR/USD", []byte(oandaCandlesPayload))
	if err != nil {
		t.Fatalf("DecodeBars() failed: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("DecodeBars() returned %d bars, want 2", len(bars))
	}
	b := bars[0]
	if b.Symbol() != "EUR_USD" {
		t.Errorf("Symbol() = %q, want EUR_USD", b.Symbol())
	}
	if want := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC); !b.Timestamp().Equal(want) {
		t.Errorf("Timestamp() = %s, want %s", b.Timestamp(), want)
	}
	if !b.Open().Equal(tradecore.Dec("1.0850")) || !b.Close().Equal(tradecore.Dec("1.0860")) {
		t.Errorf("open/close = %s/%s, want 1.0850/1.0860", b.Open(), b.Close())
	}
	if !b.Volume().Equal(tradecore.Dec(125000)) {
		t.Errorf("Volume() = %s, want 125000", b.Volume())
	}
}

func TestDecodeBarsBinance(t *testing.T) {
	bars, err := DecodeBars(BinanceKlines, "btcusdt", []byte(binanceKlinesPayload))
	if err != nil {
		t.Fatalf("DecodeBars() failed: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("DecodeBars() returned %d bars, want 1", len(bars))
	}
	b := bars[0]
	if b.Symbol() != "BTC-USDT" {
		t.Errorf("Symbol() = %q, want BTC-USDT", b.Symbol())
	}
	// 1741942800000 is a millisecond epoch.
	if want := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC); !b.Timestamp().Equal(want) {
		t.Errorf("Timestamp() = %s, want %s", b.Timestamp(), want)
	}
	if !b.High().Equal(tradecore.Dec("65100.00")) || !b.Volume().Equal(tradecore.Dec("12.5")) {
		t.Errorf("high/volume = %s/%s, want 65100.00/12.5", b.High(), b.Volume())
	}
}

func TestDecodeBarsRejects(t *testing.T) {
	t.Run("malformed payload", func(t *testing.T) {
		if _, err := DecodeBars(OandaCandles, "EUR_USD", []byte("not json")); err == nil {
			t.Error("DecodeBars() accepted a malformed payload")
		}
	})
	t.Run("missing candle field", func(t *testing.T) {
		payload := `{"candles": [{"time": "2025-03-14T09:00:00Z", "mid": {"o": "1.0850"}}]}`
		if _, err := DecodeBars(OandaCandles, "EUR_USD", []byte(payload)); err == nil {
			t.Error("DecodeBars() accepted a candle without high")
		}
	})
	t.Run("invalid ohlc ordering", func(t *testing.T) {
		payload := `{"candles": [{"volume": 1, "time": "2025-03-14T09:00:00Z",
			"mid": {"o": "1.0850", "h": "1.0840", "l": "1.0860", "c": "1.0850"}}]}`
		_, err := DecodeBars(OandaCandles, "EUR_USD", []byte(payload))
		if got := tradecore.KindOf(err); got != tradecore.Relational {
			t.Errorf("KindOf() = %v, want %v (err: %v)", got, tradecore.Relational, err)
		}
	})
}

func TestDecodeQuote(t *testing.T) {
	asOf := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	q, err := DecodeQuote(BinanceBookTicker, "BTCUSDT", asOf, []byte(binanceBookTickerPayload))
	if err != nil {
		t.Fatalf("DecodeQuote() failed: %v", err)
	}
	if q.Symbol() != "BTC-USDT" {
		t.Errorf("Symbol() = %q, want BTC-USDT", q.Symbol())
	}
	if !q.Timestamp().Equal(asOf) {
		t.Errorf("Timestamp() = %s, want asOf %s", q.Timestamp(), asOf)
	}
	if !q.Bid().Equal(tradecore.Dec("64995.50")) || !q.AskSize().Equal(tradecore.Dec("0.8")) {
		t.Errorf("bid/askSize = %s/%s, want 64995.50/0.8", q.Bid(), q.AskSize())
	}
	if !q.Mid().Equal(tradecore.Dec("65000")) {
		t.Errorf("Mid() = %s, want 65000", q.Mid())
	}
}

func TestDecodeQuoteCrossed(t *testing.T) {
	asOf := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	payload := `{"bidPrice": "65004.50", "bidQty": "1", "askPrice": "64995.50", "askQty": "1"}`
	_, err := DecodeQuote(BinanceBookTicker, "BTCUSDT", asOf, []byte(payload))
	if got := tradecore.KindOf(err); got != tradecore.Relational {
		t.Errorf("KindOf() = %v, want %v (err: %v)", got, tradecore.Relational, err)
	}
}
