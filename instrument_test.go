package tradecore

import (
	"encoding/json"
	"testing"
)

func oandaEurusdParams() InstrumentParams {
	return InstrumentParams{
		Symbol:          "EUR/USD",
		Provider:        Oanda,
		CanonicalSymbol: "EUR_USD",
		AssetClass:      Forex,
		Name:            "Euro / US Dollar",
		BaseCurrency:    "EUR",
		QuoteCurrency:   "USD",
		TickSize:        Dec("0.00001"),
		LotSize:         Dec("1"),
		Active:          true,
		TradingHours:    map[string]string{"sunday": "17:00-24:00", "weekday": "00:00-24:00"},
	}
}

func TestNewInstrument(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*InstrumentParams)
		wantKind ErrorKind
	}{
		{name: "valid", mutate: func(p *InstrumentParams) {}},
		{
			name:     "empty provider symbol",
			mutate:   func(p *InstrumentParams) { p.Symbol = "  " },
			wantKind: Format,
		},
		{
			name:     "non-canonical symbol",
			mutate:   func(p *InstrumentParams) { p.CanonicalSymbol = "EUR/USD" },
			wantKind: Format,
		},
		{
			name:     "non-positive tick size",
			mutate:   func(p *InstrumentParams) { p.TickSize = Dec(0) },
			wantKind: Range,
		},
		{
			name:     "non-positive lot size",
			mutate:   func(p *InstrumentParams) { p.LotSize = Dec("-1") },
			wantKind: Range,
		},
		{
			name:     "unknown asset class",
			mutate:   func(p *InstrumentParams) { p.AssetClass = "bond" },
			wantKind: Format,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := oandaEurusdParams()
			tc.mutate(&p)
			_, err := NewInstrument(p)
			if tc.wantKind == 0 {
				if err != nil {
					t.Fatalf("NewInstrument() failed: %v", err)
				}
				return
			}
			wantKind(t, err, tc.wantKind)
		})
	}
}

// The provider spelling is kept verbatim: it is what the provider's API
// expects back.
func TestInstrumentKeepsProviderSpelling(t *testing.T) {
	ins, err := NewInstrument(oandaEurusdParams())
	if err != nil {
		t.Fatalf("NewInstrument() failed: %v", err)
	}
	if ins.Symbol() != "EUR/USD" {
		t.Errorf("Symbol() = %q, want EUR/USD", ins.Symbol())
	}
	if ins.CanonicalSymbol() != "EUR_USD" {
		t.Errorf("CanonicalSymbol() = %q, want EUR_USD", ins.CanonicalSymbol())
	}
}

func TestInstrumentRoundTrip(t *testing.T) {
	ins, err := NewInstrument(oandaEurusdParams())
	if err != nil {
		t.Fatalf("NewInstrument() failed: %v", err)
	}
	data, err := json.Marshal(ins)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var back Instrument
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !ins.Equal(back) {
		t.Errorf("round trip mismatch: %s", data)
	}
}

func TestNewProviderMetadata(t *testing.T) {
	valid := ProviderMetadataParams{
		ProviderName:       Binance,
		AssetClasses:       []AssetClass{Crypto},
		APIEndpoint:        "https://api.binance.com",
		RateLimitPerMinute: 1200,
		Enabled:            true,
		Priority:           1,
	}

	t.Run("valid", func(t *testing.T) {
		if _, err := NewProviderMetadata(valid); err != nil {
			t.Fatalf("NewProviderMetadata() failed: %v", err)
		}
	})
	t.Run("zero rate limit", func(t *testing.T) {
		p := valid
		p.RateLimitPerMinute = 0
		_, err := NewProviderMetadata(p)
		wantKind(t, err, Range)
	})
	t.Run("zero priority", func(t *testing.T) {
		p := valid
		p.Priority = 0
		_, err := NewProviderMetadata(p)
		wantKind(t, err, Range)
	})
	t.Run("non-positive daily limit", func(t *testing.T) {
		p := valid
		p.RateLimitPerDay = intPtr(0)
		_, err := NewProviderMetadata(p)
		wantKind(t, err, Range)
	})
	t.Run("round trip", func(t *testing.T) {
		p := valid
		p.RateLimitPerDay = intPtr(100000)
		p.HistoricalDataLimitYears = intPtr(5)
		p.LastSuccessfulFetch = ts(0)
		pm, err := NewProviderMetadata(p)
		if err != nil {
			t.Fatalf("NewProviderMetadata() failed: %v", err)
		}
		data, err := json.Marshal(pm)
		if err != nil {
			t.Fatalf("Marshal() failed: %v", err)
		}
		var back ProviderMetadata
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal() failed: %v", err)
		}
		if !pm.Equal(back) {
			t.Errorf("round trip mismatch: %s", data)
		}
	})
}
