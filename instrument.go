package tradecore

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Instrument maps a provider-specific symbol to a canonical one and carries
// the static reference data needed to trade it. The provider spelling is
// kept verbatim (only trimmed), since it is what the provider's API expects
// back.
type Instrument struct {
	symbol          string
	provider        Provider
	canonicalSymbol string
	assetClass      AssetClass
	name            string
	baseCurrency    string
	quoteCurrency   string
	tickSize        decimal.Decimal
	lotSize         decimal.Decimal
	active          bool
	tradingHours    map[string]string
}

// InstrumentParams is the construction record for an Instrument.
type InstrumentParams struct {
	Symbol          string // provider-specific spelling, e.g. "EUR/USD"
	Provider        Provider
	CanonicalSymbol string
	AssetClass      AssetClass
	Name            string
	BaseCurrency    string
	QuoteCurrency   string
	TickSize        decimal.Decimal
	LotSize         decimal.Decimal
	Active          bool
	TradingHours    map[string]string
}

// NewInstrument validates the params and returns the Instrument.
func NewInstrument(p InstrumentParams) (Instrument, error) {
	symbol := strings.TrimSpace(p.Symbol)
	if symbol == "" {
		return Instrument{}, errFormat("symbol", "provider symbol is required")
	}
	if _, err := ParseProvider(string(p.Provider)); err != nil {
		return Instrument{}, err
	}
	canonical, err := canonicalize("canonicalSymbol", p.CanonicalSymbol)
	if err != nil {
		return Instrument{}, err
	}
	if _, err := ParseAssetClass(string(p.AssetClass)); err != nil {
		return Instrument{}, err
	}
	if err := requirePositive("tickSize", p.TickSize); err != nil {
		return Instrument{}, err
	}
	if err := requirePositive("lotSize", p.LotSize); err != nil {
		return Instrument{}, err
	}
	var hours map[string]string
	if len(p.TradingHours) > 0 {
		hours = make(map[string]string, len(p.TradingHours))
		for k, v := range p.TradingHours {
			hours[k] = v
		}
	}
	return Instrument{
		symbol:          symbol,
		provider:        p.Provider,
		canonicalSymbol: canonical,
		assetClass:      p.AssetClass,
		name:            strings.TrimSpace(p.Name),
		baseCurrency:    strings.TrimSpace(p.BaseCurrency),
		quoteCurrency:   strings.TrimSpace(p.QuoteCurrency),
		tickSize:        p.TickSize,
		lotSize:         p.LotSize,
		active:          p.Active,
		tradingHours:    hours,
	}, nil
}

func (i Instrument) Symbol() string            { return i.symbol }
func (i Instrument) Provider() Provider        { return i.provider }
func (i Instrument) CanonicalSymbol() string   { return i.canonicalSymbol }
func (i Instrument) AssetClass() AssetClass    { return i.assetClass }
func (i Instrument) Name() string              { return i.name }
func (i Instrument) BaseCurrency() string      { return i.baseCurrency }
func (i Instrument) QuoteCurrency() string     { return i.quoteCurrency }
func (i Instrument) TickSize() decimal.Decimal { return i.tickSize }
func (i Instrument) LotSize() decimal.Decimal  { return i.lotSize }
func (i Instrument) Active() bool              { return i.active }

// TradingHours returns a copy of the market-hours information, keyed by
// session name.
func (i Instrument) TradingHours() map[string]string {
	if i.tradingHours == nil {
		return nil
	}
	out := make(map[string]string, len(i.tradingHours))
	for k, v := range i.tradingHours {
		out[k] = v
	}
	return out
}

// Equal reports field-by-field equality, with exact decimal comparison.
func (i Instrument) Equal(o Instrument) bool {
	if len(i.tradingHours) != len(o.tradingHours) {
		return false
	}
	for k, v := range i.tradingHours {
		if o.tradingHours[k] != v {
			return false
		}
	}
	return i.symbol == o.symbol &&
		i.provider == o.provider &&
		i.canonicalSymbol == o.canonicalSymbol &&
		i.assetClass == o.assetClass &&
		i.name == o.name &&
		i.baseCurrency == o.baseCurrency &&
		i.quoteCurrency == o.quoteCurrency &&
		i.tickSize.Equal(o.tickSize) &&
		i.lotSize.Equal(o.lotSize) &&
		i.active == o.active
}

// MarshalJSON implements the json.Marshaler interface for Instrument.
func (i Instrument) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", i.symbol)
	w.Append("provider", i.provider)
	w.Append("canonicalSymbol", i.canonicalSymbol)
	w.Append("assetClass", i.assetClass)
	w.Append("name", i.name)
	w.Append("baseCurrency", i.baseCurrency)
	w.Append("quoteCurrency", i.quoteCurrency)
	w.Append("tickSize", i.tickSize)
	w.Append("lotSize", i.lotSize)
	w.Append("active", i.active)
	if i.tradingHours != nil {
		w.Append("tradingHours", i.tradingHours)
	}
	return w.MarshalJSON()
}

type instrumentJSON struct {
	Symbol          string            `json:"symbol"`
	Provider        Provider          `json:"provider"`
	CanonicalSymbol string            `json:"canonicalSymbol"`
	AssetClass      AssetClass        `json:"assetClass"`
	Name            string            `json:"name"`
	BaseCurrency    string            `json:"baseCurrency"`
	QuoteCurrency   string            `json:"quoteCurrency"`
	TickSize        decimal.Decimal   `json:"tickSize"`
	LotSize         decimal.Decimal   `json:"lotSize"`
	Active          bool              `json:"active"`
	TradingHours    map[string]string `json:"tradingHours"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Instrument,
// routing through NewInstrument.
func (i *Instrument) UnmarshalJSON(data []byte) error {
	var j instrumentJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	ins, err := NewInstrument(InstrumentParams{
		Symbol:          j.Symbol,
		Provider:        j.Provider,
		CanonicalSymbol: j.CanonicalSymbol,
		AssetClass:      j.AssetClass,
		Name:            j.Name,
		BaseCurrency:    j.BaseCurrency,
		QuoteCurrency:   j.QuoteCurrency,
		TickSize:        j.TickSize,
		LotSize:         j.LotSize,
		Active:          j.Active,
		TradingHours:    j.TradingHours,
	})
	if err != nil {
		return err
	}
	*i = ins
	return nil
}

// ProviderMetadata stores configuration and capabilities for a data
// provider. Priority orders providers when several can serve the same
// instrument, lower meaning higher priority.
type ProviderMetadata struct {
	providerName             Provider
	assetClasses             []AssetClass
	apiEndpoint              string
	rateLimitPerMinute       int
	enabled                  bool
	priority                 int
	authenticationRequired   bool
	rateLimitPerDay          *int
	historicalDataLimitYears *int
	lastSuccessfulFetch      time.Time
}

// ProviderMetadataParams is the construction record for a ProviderMetadata.
type ProviderMetadataParams struct {
	ProviderName             Provider
	AssetClasses             []AssetClass
	APIEndpoint              string
	RateLimitPerMinute       int
	Enabled                  bool
	Priority                 int
	AuthenticationRequired   bool
	RateLimitPerDay          *int
	HistoricalDataLimitYears *int
	LastSuccessfulFetch      time.Time // optional, zero means never fetched
}

// NewProviderMetadata validates the params and returns the
// ProviderMetadata.
func NewProviderMetadata(p ProviderMetadataParams) (ProviderMetadata, error) {
	if _, err := ParseProvider(string(p.ProviderName)); err != nil {
		return ProviderMetadata{}, err
	}
	for _, ac := range p.AssetClasses {
		if _, err := ParseAssetClass(string(ac)); err != nil {
			return ProviderMetadata{}, err
		}
	}
	if p.RateLimitPerMinute <= 0 {
		return ProviderMetadata{}, errRange("rateLimitPerMinute", "rate limit must be positive, got %d", p.RateLimitPerMinute)
	}
	if p.Priority < 1 {
		return ProviderMetadata{}, errRange("priority", "priority must be at least 1, got %d", p.Priority)
	}
	if p.RateLimitPerDay != nil && *p.RateLimitPerDay <= 0 {
		return ProviderMetadata{}, errRange("rateLimitPerDay", "daily rate limit must be positive, got %d", *p.RateLimitPerDay)
	}
	classes := make([]AssetClass, len(p.AssetClasses))
	copy(classes, p.AssetClasses)
	return ProviderMetadata{
		providerName:             p.ProviderName,
		assetClasses:             classes,
		apiEndpoint:              strings.TrimSpace(p.APIEndpoint),
		rateLimitPerMinute:       p.RateLimitPerMinute,
		enabled:                  p.Enabled,
		priority:                 p.Priority,
		authenticationRequired:   p.AuthenticationRequired,
		rateLimitPerDay:          p.RateLimitPerDay,
		historicalDataLimitYears: p.HistoricalDataLimitYears,
		lastSuccessfulFetch:      p.LastSuccessfulFetch,
	}, nil
}

func (m ProviderMetadata) ProviderName() Provider       { return m.providerName }
func (m ProviderMetadata) APIEndpoint() string          { return m.apiEndpoint }
func (m ProviderMetadata) RateLimitPerMinute() int      { return m.rateLimitPerMinute }
func (m ProviderMetadata) Enabled() bool                { return m.enabled }
func (m ProviderMetadata) Priority() int                { return m.priority }
func (m ProviderMetadata) AuthenticationRequired() bool { return m.authenticationRequired }

// AssetClasses returns a copy of the supported asset classes.
func (m ProviderMetadata) AssetClasses() []AssetClass {
	out := make([]AssetClass, len(m.assetClasses))
	copy(out, m.assetClasses)
	return out
}

// RateLimitPerDay returns the daily request budget and whether the provider
// declares one.
func (m ProviderMetadata) RateLimitPerDay() (int, bool) {
	if m.rateLimitPerDay == nil {
		return 0, false
	}
	return *m.rateLimitPerDay, true
}

// HistoricalDataLimitYears returns how far back the provider serves data
// and whether a limit is declared.
func (m ProviderMetadata) HistoricalDataLimitYears() (int, bool) {
	if m.historicalDataLimitYears == nil {
		return 0, false
	}
	return *m.historicalDataLimitYears, true
}

// LastSuccessfulFetch returns the instant of the last successful fetch and
// whether one ever happened.
func (m ProviderMetadata) LastSuccessfulFetch() (time.Time, bool) {
	return m.lastSuccessfulFetch, !m.lastSuccessfulFetch.IsZero()
}

// Equal reports field-by-field equality.
func (m ProviderMetadata) Equal(o ProviderMetadata) bool {
	if len(m.assetClasses) != len(o.assetClasses) {
		return false
	}
	for i, ac := range m.assetClasses {
		if o.assetClasses[i] != ac {
			return false
		}
	}
	if (m.rateLimitPerDay == nil) != (o.rateLimitPerDay == nil) {
		return false
	}
	if m.rateLimitPerDay != nil && *m.rateLimitPerDay != *o.rateLimitPerDay {
		return false
	}
	if (m.historicalDataLimitYears == nil) != (o.historicalDataLimitYears == nil) {
		return false
	}
	if m.historicalDataLimitYears != nil && *m.historicalDataLimitYears != *o.historicalDataLimitYears {
		return false
	}
	return m.providerName == o.providerName &&
		m.apiEndpoint == o.apiEndpoint &&
		m.rateLimitPerMinute == o.rateLimitPerMinute &&
		m.enabled == o.enabled &&
		m.priority == o.priority &&
		m.authenticationRequired == o.authenticationRequired &&
		m.lastSuccessfulFetch.Equal(o.lastSuccessfulFetch)
}

// MarshalJSON implements the json.Marshaler interface for ProviderMetadata.
func (m ProviderMetadata) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("providerName", m.providerName)
	w.Append("assetClasses", m.assetClasses)
	w.Append("apiEndpoint", m.apiEndpoint)
	w.Append("rateLimitPerMinute", m.rateLimitPerMinute)
	w.Append("enabled", m.enabled)
	w.Append("priority", m.priority)
	w.Append("authenticationRequired", m.authenticationRequired)
	if m.rateLimitPerDay != nil {
		w.Append("rateLimitPerDay", *m.rateLimitPerDay)
	}
	if m.historicalDataLimitYears != nil {
		w.Append("historicalDataLimitYears", *m.historicalDataLimitYears)
	}
	if !m.lastSuccessfulFetch.IsZero() {
		w.Append("lastSuccessfulFetch", m.lastSuccessfulFetch)
	}
	return w.MarshalJSON()
}

type providerMetadataJSON struct {
	ProviderName             Provider     `json:"providerName"`
	AssetClasses             []AssetClass `json:"assetClasses"`
	APIEndpoint              string       `json:"apiEndpoint"`
	RateLimitPerMinute       int          `json:"rateLimitPerMinute"`
	Enabled                  bool         `json:"enabled"`
	Priority                 int          `json:"priority"`
	AuthenticationRequired   bool         `json:"authenticationRequired"`
	RateLimitPerDay          *int         `json:"rateLimitPerDay"`
	HistoricalDataLimitYears *int         `json:"historicalDataLimitYears"`
	LastSuccessfulFetch      time.Time    `json:"lastSuccessfulFetch"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for
// ProviderMetadata, routing through NewProviderMetadata.
func (m *ProviderMetadata) UnmarshalJSON(data []byte) error {
	var j providerMetadataJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	pm, err := NewProviderMetadata(ProviderMetadataParams{
		ProviderName:             j.ProviderName,
		AssetClasses:             j.AssetClasses,
		APIEndpoint:              j.APIEndpoint,
		RateLimitPerMinute:       j.RateLimitPerMinute,
		Enabled:                  j.Enabled,
		Priority:                 j.Priority,
		AuthenticationRequired:   j.AuthenticationRequired,
		RateLimitPerDay:          j.RateLimitPerDay,
		HistoricalDataLimitYears: j.HistoricalDataLimitYears,
		LastSuccessfulFetch:      j.LastSuccessfulFetch,
	})
	if err != nil {
		return err
	}
	*m = pm
	return nil
}
