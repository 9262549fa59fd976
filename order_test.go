package tradecore

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func marketOrderParams() OrderRequestParams {
	return OrderRequestParams{
		ClientOrderID: uuid.MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8"),
		Symbol:        "EUR_USD",
		Side:          Buy,
		OrderType:     Market,
		Quantity:      Dec("10000"),
		Timestamp:     ts(0),
	}
}

func TestNewOrderRequestPriceRules(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*OrderRequestParams)
		wantKind ErrorKind
	}{
		{name: "market without prices", mutate: func(p *OrderRequestParams) {}},
		{
			name: "limit with limit price",
			mutate: func(p *OrderRequestParams) {
				p.OrderType = Limit
				p.LimitPrice = NDec("1.0950")
			},
		},
		{
			name: "stop with stop price",
			mutate: func(p *OrderRequestParams) {
				p.OrderType = Stop
				p.StopPrice = NDec("1.1050")
			},
		},
		{
			name: "stop limit with both",
			mutate: func(p *OrderRequestParams) {
				p.OrderType = StopLimit
				p.LimitPrice = NDec("1.1040")
				p.StopPrice = NDec("1.1050")
			},
		},
		{
			name:   "market with limit price",
			mutate: func(p *OrderRequestParams) { p.LimitPrice = NDec("1.0950") },
		},
		{
			name: "stop with extra limit price",
			mutate: func(p *OrderRequestParams) {
				p.OrderType = Stop
				p.StopPrice = NDec("1.1050")
				p.LimitPrice = NDec("1.1040")
			},
		},
		{
			name:     "limit without limit price",
			mutate:   func(p *OrderRequestParams) { p.OrderType = Limit },
			wantKind: Relational,
		},
		{
			name: "stop without stop price",
			mutate: func(p *OrderRequestParams) {
				p.OrderType = Stop
				p.LimitPrice = NDec("1.1040")
			},
			wantKind: Relational,
		},
		{
			name: "stop limit missing stop price",
			mutate: func(p *OrderRequestParams) {
				p.OrderType = StopLimit
				p.LimitPrice = NDec("1.1040")
			},
			wantKind: Relational,
		},
		{
			name: "non-positive limit price",
			mutate: func(p *OrderRequestParams) {
				p.OrderType = Limit
				p.LimitPrice = NDec(0)
			},
			wantKind: Range,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := marketOrderParams()
			tc.mutate(&p)
			_, err := NewOrderRequest(p)
			if tc.wantKind == 0 {
				if err != nil {
					t.Fatalf("NewOrderRequest() failed: %v", err)
				}
				return
			}
			wantKind(t, err, tc.wantKind)
		})
	}
}

func TestNewOrderRequestDefaults(t *testing.T) {
	p := marketOrderParams()
	p.ClientOrderID = uuid.Nil
	p.TimeInForce = ""
	r, err := NewOrderRequest(p)
	if err != nil {
		t.Fatalf("NewOrderRequest() failed: %v", err)
	}
	if r.ClientOrderID() == uuid.Nil {
		t.Error("ClientOrderID() is nil, want a generated id")
	}
	if r.TimeInForce() != Day {
		t.Errorf("TimeInForce() = %s, want %s", r.TimeInForce(), Day)
	}
}

func TestNewOrderRequestConfidence(t *testing.T) {
	testCases := []struct {
		name       string
		confidence float64
		wantErr    bool
	}{
		{name: "lower bound", confidence: 0},
		{name: "upper bound", confidence: 1},
		{name: "interior", confidence: 0.75},
		{name: "below range", confidence: -0.1, wantErr: true},
		{name: "above range", confidence: 1.5, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := marketOrderParams()
			p.Confidence = &tc.confidence
			r, err := NewOrderRequest(p)
			if tc.wantErr {
				wantKind(t, err, Range)
				return
			}
			if err != nil {
				t.Fatalf("NewOrderRequest() failed: %v", err)
			}
			got, ok := r.Confidence()
			if !ok || got != tc.confidence {
				t.Errorf("Confidence() = (%v, %v), want (%v, true)", got, ok, tc.confidence)
			}
		})
	}
}

func TestOrderRequestRoundTrip(t *testing.T) {
	p := marketOrderParams()
	p.OrderType = StopLimit
	p.LimitPrice = NDec("1.1040")
	p.StopPrice = NDec("1.1050")
	p.StrategyID = "breakout-v2"
	conf := 0.85
	p.Confidence = &conf
	r, err := NewOrderRequest(p)
	if err != nil {
		t.Fatalf("NewOrderRequest() failed: %v", err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var back OrderRequest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !r.Equal(back) {
		t.Errorf("round trip mismatch: %s", data)
	}
}
