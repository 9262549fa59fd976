package tradecore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ts returns a fixed, timezone-aware instant offset by the given number of
// hours, so related fixtures order deterministically.
func ts(hours int) time.Time {
	base := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	return base.Add(time.Duration(hours) * time.Hour)
}

func mustBar(t *testing.T, p BarParams) Bar {
	t.Helper()
	b, err := NewBar(p)
	if err != nil {
		t.Fatalf("NewBar() failed: %v", err)
	}
	return b
}

// eurusdBar is a plausible EUR_USD hourly bar.
func eurusdBarParams() BarParams {
	return BarParams{
		Timestamp: ts(0),
		Symbol:    "EUR_USD",
		Open:      Dec("1.0850"),
		High:      Dec("1.0875"),
		Low:       Dec("1.0840"),
		Close:     Dec("1.0860"),
		Volume:    Dec("125000"),
	}
}

func mustQuote(t *testing.T, p QuoteParams) Quote {
	t.Helper()
	q, err := NewQuote(p)
	if err != nil {
		t.Fatalf("NewQuote() failed: %v", err)
	}
	return q
}

func btcQuoteParams() QuoteParams {
	return QuoteParams{
		Symbol:    "BTC-USD",
		Timestamp: ts(0),
		Bid:       Dec("64995.50"),
		Ask:       Dec("65004.50"),
		BidSize:   Dec("2.5"),
		AskSize:   Dec("1.8"),
	}
}

func mustPosition(t *testing.T, p PositionParams) Position {
	t.Helper()
	pos, err := NewPosition(p)
	if err != nil {
		t.Fatalf("NewPosition() failed: %v", err)
	}
	return pos
}

func mustFill(t *testing.T, p FillParams) Fill {
	t.Helper()
	f, err := NewFill(p)
	if err != nil {
		t.Fatalf("NewFill() failed: %v", err)
	}
	return f
}

func eurusdFillParams() FillParams {
	return FillParams{
		FillID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		ClientOrderID: uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8"),
		Symbol:        "EUR_USD",
		Side:          Buy,
		Quantity:      Dec("10000"),
		Price:         Dec("1.1000"),
		Commission:    Dec("0.50"),
		Provider:      Oanda,
		Timestamp:     ts(0),
	}
}

func mustState(t *testing.T, p PortfolioStateParams) PortfolioState {
	t.Helper()
	s, err := NewPortfolioState(p)
	if err != nil {
		t.Fatalf("NewPortfolioState() failed: %v", err)
	}
	return s
}

// wantKind fails the test unless err carries the expected validation kind.
func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Errorf("KindOf() = %s, want %s (err: %v)", got, kind, err)
	}
}

// decEqual fails the test unless the two decimals are exactly equal.
func decEqual(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
