package tradecore

import (
	"regexp"
	"strings"
)

// canonicalSymbolRegex checks the canonical form: starts and ends with an
// alphanumeric, with alphanumerics, underscores, or hyphens in between; a
// bare two-character symbol is also accepted.
var canonicalSymbolRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{0,18}[A-Z0-9]$|^[A-Z0-9]{2}$`)

// cryptoQuotes lists the known crypto quote currencies used to split joined
// pairs like BTCUSDT. Ordered longest first so USDT wins over USD.
var cryptoQuotes = []string{"USDT", "USDC", "BUSD", "USD", "BTC", "ETH", "EUR", "GBP"}

// NormalizeSymbol normalizes a raw provider symbol into its canonical form
// for the given asset class:
//
//   - Forex pairs become BASE_QUOTE (EUR/USD -> EUR_USD).
//   - Crypto pairs become BASE-QUOTE (btcusdt -> BTC-USDT).
//   - Equity and other classes keep the bare uppercase ticker (aapl -> AAPL).
//
// An exchange prefix before a ':' is stripped first, so "BINANCE:btcusdt"
// normalizes like "btcusdt". A crypto symbol that cannot be decomposed (no
// known quote suffix, fewer than six characters) is returned unsplit; callers
// must treat that as "not decomposable", not as an error.
func NormalizeSymbol(symbol string, class AssetClass) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	// Drop the exchange prefix, e.g. "BINANCE:BTCUSDT" -> "BTCUSDT".
	if i := strings.LastIndex(symbol, ":"); i >= 0 {
		symbol = symbol[i+1:]
	}

	switch class {
	case Forex:
		return normalizeForex(symbol)
	case Crypto:
		return normalizeCrypto(symbol)
	default:
		return symbol
	}
}

func normalizeForex(symbol string) string {
	symbol = strings.ReplaceAll(symbol, "/", "_")
	symbol = strings.ReplaceAll(symbol, "-", "_")

	// A joined six-character pair splits 3/3: EURUSD -> EUR_USD.
	if !strings.Contains(symbol, "_") && len(symbol) == 6 {
		return symbol[:3] + "_" + symbol[3:]
	}
	return symbol
}

func normalizeCrypto(symbol string) string {
	symbol = strings.ReplaceAll(symbol, "_", "-")
	if strings.Contains(symbol, "-") {
		return symbol
	}

	for _, quote := range cryptoQuotes {
		if base, ok := strings.CutSuffix(symbol, quote); ok && base != "" {
			return base + "-" + quote
		}
	}

	// No known quote currency: assume a three-character base when the symbol
	// is long enough to hold one.
	if len(symbol) >= 6 {
		return symbol[:3] + "-" + symbol[3:]
	}
	return symbol
}

// ParseSymbol splits a canonical symbol into its base and quote components.
// Underscore-separated symbols split as forex pairs, hyphen-separated ones as
// crypto pairs; anything else is a single asset and the quote is empty.
func ParseSymbol(canonical string) (base, quote string) {
	if b, q, ok := strings.Cut(canonical, "_"); ok {
		return b, q
	}
	if b, q, ok := strings.Cut(canonical, "-"); ok {
		return b, q
	}
	return canonical, ""
}

// ValidateSymbol reports whether a symbol is in canonical form: 2 to 20
// characters, uppercase alphanumerics with interior underscores or hyphens,
// starting and ending with an alphanumeric. It never returns an error; a
// malformed symbol is simply not canonical.
func ValidateSymbol(symbol string) bool {
	if len(symbol) < 2 || len(symbol) > 20 {
		return false
	}
	return canonicalSymbolRegex.MatchString(symbol)
}

// canonicalize trims, uppercases, and validates a symbol field at a
// construction boundary. Every entity with a symbol field funnels through
// here.
func canonicalize(field, symbol string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	if !ValidateSymbol(normalized) {
		return "", errFormat(field, "symbol %q is not canonical (uppercase with _ or -)", symbol)
	}
	return normalized, nil
}
