package tradecore

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func roundTripParams(t *testing.T) TradeParams {
	t.Helper()
	entry := mustFill(t, eurusdFillParams()) // buy 10000 @ 1.1000 at ts(0)
	exitParams := eurusdFillParams()
	exitParams.FillID = uuid.MustParse("6ba7b813-9dad-11d1-80b4-00c04fd430c8")
	exitParams.Side = Sell
	exitParams.Price = Dec("1.1150")
	exitParams.Timestamp = ts(6)
	exit := mustFill(t, exitParams)
	return TradeParams{
		Symbol:        "EUR_USD",
		EntryFill:     entry,
		ExitFill:      exit,
		PnL:           Dec("149"), // (1.1150 - 1.1000) * 10000 - 2 * 0.50
		ReturnPct:     Dec("1.3545"),
		HoldingPeriod: 6,
	}
}

func TestNewTrade(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*TradeParams)
		wantKind ErrorKind
	}{
		{name: "valid", mutate: func(p *TradeParams) {}},
		{
			name:     "missing entry fill",
			mutate:   func(p *TradeParams) { p.EntryFill = Fill{} },
			wantKind: Relational,
		},
		{
			name:     "symbol mismatch",
			mutate:   func(p *TradeParams) { p.Symbol = "GBP_USD" },
			wantKind: Relational,
		},
		{
			name: "exit before entry",
			mutate: func(p *TradeParams) {
				p.EntryFill, p.ExitFill = p.ExitFill, p.EntryFill
			},
			wantKind: Relational,
		},
		{
			name:     "non-positive holding period",
			mutate:   func(p *TradeParams) { p.HoldingPeriod = 0 },
			wantKind: Range,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := roundTripParams(t)
			tc.mutate(&p)
			_, err := NewTrade(p)
			if tc.wantKind == 0 {
				if err != nil {
					t.Fatalf("NewTrade() failed: %v", err)
				}
				return
			}
			wantKind(t, err, tc.wantKind)
		})
	}
}

func TestTradeIsWinner(t *testing.T) {
	p := roundTripParams(t)
	tr, err := NewTrade(p)
	if err != nil {
		t.Fatalf("NewTrade() failed: %v", err)
	}
	if !tr.IsWinner() {
		t.Error("IsWinner() = false for a profitable trade")
	}

	p.PnL = Dec("-50")
	loser, err := NewTrade(p)
	if err != nil {
		t.Fatalf("NewTrade() failed: %v", err)
	}
	if loser.IsWinner() {
		t.Error("IsWinner() = true for a losing trade")
	}
}

func TestTradeRoundTrip(t *testing.T) {
	tr, err := NewTrade(roundTripParams(t))
	if err != nil {
		t.Fatalf("NewTrade() failed: %v", err)
	}
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var back Trade
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !tr.Equal(back) {
		t.Errorf("round trip mismatch: %s", data)
	}
}
