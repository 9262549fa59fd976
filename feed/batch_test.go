package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/tradecore"
)

func mustBar(t *testing.T, symbol string, hour int, close string) tradecore.Bar {
	t.Helper()
	b, err := tradecore.NewBar(tradecore.BarParams{
		Timestamp: time.Date(2025, 3, 14, hour, 0, 0, 0, time.UTC),
		Symbol:    symbol,
		Open:      tradecore.Dec(close),
		High:      tradecore.Dec(close),
		Low:       tradecore.Dec(close),
		Close:     tradecore.Dec(close),
		Volume:    tradecore.Dec(1000),
	})
	if err != nil {
		t.Fatalf("NewBar() failed: %v", err)
	}
	return b
}

func TestFetchSeries(t *testing.T) {
	fetch := func(symbol string) ([]tradecore.Bar, error) {
		if symbol == "GBP_USD" {
			return nil, errors.New("rate limited")
		}
		return []tradecore.Bar{mustBar(t, symbol, 9, "1.0860")}, nil
	}
	series, batch, err := FetchSeries([]string{"EUR/USD", "GBP/USD", "USD/JPY"}, tradecore.Forex, fetch)
	if err != nil {
		t.Fatalf("FetchSeries() failed: %v", err)
	}
	if batch.Total() != 3 || batch.Succeeded() != 2 || batch.Failed() != 1 {
		t.Errorf("batch = %d/%d/%d, want 3/2/1", batch.Total(), batch.Succeeded(), batch.Failed())
	}
	if len(series) != 2 {
		t.Fatalf("got %d series, want 2", len(series))
	}
	if _, ok := series["EUR_USD"]; !ok {
		t.Error("series is missing EUR_USD under its canonical key")
	}
	if _, ok := series["GBP_USD"]; ok {
		t.Error("failed symbol GBP_USD must not appear in the series")
	}
	failures := batch.Failures()
	if len(failures) != 1 || failures[0].ResultSymbol() != "GBP_USD" {
		t.Fatalf("Failures() = %v, want one GBP_USD failure", failures)
	}
	if failures[0].ErrorMessage() != "rate limited" {
		t.Errorf("ErrorMessage() = %q, want %q", failures[0].ErrorMessage(), "rate limited")
	}
}

func TestUpdateSeries(t *testing.T) {
	stored := map[string][]tradecore.Bar{
		"EUR_USD": {mustBar(t, "EUR_USD", 9, "1.0860")},
	}
	fetch := func(symbol string) ([]tradecore.Bar, error) {
		// One bar the store already has, one it does not.
		return []tradecore.Bar{
			mustBar(t, symbol, 9, "1.0860"),
			mustBar(t, symbol, 10, "1.0870"),
		}, nil
	}
	batch, err := UpdateSeries(stored, []string{"EUR_USD"}, tradecore.Forex, fetch)
	if err != nil {
		t.Fatalf("UpdateSeries() failed: %v", err)
	}
	if batch.Total() != 1 || batch.Succeeded() != 1 {
		t.Fatalf("batch = %d/%d, want 1/1", batch.Total(), batch.Succeeded())
	}
	r, ok := batch.Results()[0].(tradecore.UpdateResult)
	if !ok {
		t.Fatalf("result is a %T, want tradecore.UpdateResult", batch.Results()[0])
	}
	if r.GapsFilled() != 1 || r.TotalRows() != 2 {
		t.Errorf("gapsFilled/totalRows = %d/%d, want 1/2", r.GapsFilled(), r.TotalRows())
	}
	if len(stored["EUR_USD"]) != 2 {
		t.Errorf("stored EUR_USD has %d bars, want 2", len(stored["EUR_USD"]))
	}
}

func TestUpdateSeriesFailure(t *testing.T) {
	fetch := func(symbol string) ([]tradecore.Bar, error) {
		return nil, errors.New("connection reset")
	}
	batch, err := UpdateSeries(map[string][]tradecore.Bar{}, []string{"EUR_USD"}, tradecore.Forex, fetch)
	if err != nil {
		t.Fatalf("UpdateSeries() failed: %v", err)
	}
	if batch.Failed() != 1 {
		t.Fatalf("Failed() = %d, want 1", batch.Failed())
	}
	if got := batch.Failures()[0].ErrorMessage(); got != "connection reset" {
		t.Errorf("ErrorMessage() = %q, want %q", got, "connection reset")
	}
}
