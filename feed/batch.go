package feed

import (
	"errors"
	"time"

	"github.com/etnz/tradecore"
)

// BarsFunc decodes or retrieves one symbol's series. The symbol it receives
// is already canonical.
type BarsFunc func(symbol string) ([]tradecore.Bar, error)

// FetchSeries runs fetch on every symbol and collects the decoded series
// keyed by canonical symbol, with a per-symbol outcome in the batch. A
// failing symbol is recorded as a failure and never disturbs the others.
//
// The returned error is non-nil only when a raw symbol is too malformed to
// name an outcome at all; such symbols are absent from the batch.
func FetchSeries(symbols []string, class tradecore.AssetClass, fetch BarsFunc) (map[string][]tradecore.Bar, tradecore.BatchResult, error) {
	series := make(map[string][]tradecore.Bar, len(symbols))
	results := make([]tradecore.Result, 0, len(symbols))
	var errs []error
	for _, raw := range symbols {
		symbol := tradecore.NormalizeSymbol(raw, class)
		bars, err := fetch(symbol)
		if err != nil {
			r, rerr := tradecore.NewFetchResult(tradecore.FetchResultParams{
				Symbol: symbol,
				Error:  err.Error(),
			})
			if rerr != nil {
				errs = append(errs, rerr)
				continue
			}
			results = append(results, r)
			continue
		}
		series[symbol] = bars
		count := len(bars)
		r, rerr := tradecore.NewFetchResult(tradecore.FetchResultParams{
			Symbol:  symbol,
			Success: true,
			Count:   &count,
		})
		if rerr != nil {
			delete(series, symbol)
			errs = append(errs, rerr)
			continue
		}
		results = append(results, r)
	}
	return series, tradecore.SummarizeBatch(results), errors.Join(errs...)
}

// UpdateSeries merges freshly fetched bars into the stored series, filling
// instants the store does not have yet. It reports per symbol how many gaps
// were filled and the resulting row total. Like FetchSeries, one failing
// symbol never disturbs the others.
func UpdateSeries(stored map[string][]tradecore.Bar, symbols []string, class tradecore.AssetClass, fetch BarsFunc) (tradecore.BatchResult, error) {
	results := make([]tradecore.Result, 0, len(symbols))
	var errs []error
	for _, raw := range symbols {
		symbol := tradecore.NormalizeSymbol(raw, class)
		fresh, err := fetch(symbol)
		if err != nil {
			r, rerr := tradecore.NewUpdateResult(tradecore.UpdateResultParams{
				Symbol: symbol,
				Error:  err.Error(),
			})
			if rerr != nil {
				errs = append(errs, rerr)
				continue
			}
			results = append(results, r)
			continue
		}
		have := make(map[time.Time]struct{}, len(stored[symbol]))
		for _, bar := range stored[symbol] {
			have[bar.Timestamp()] = struct{}{}
		}
		filled := 0
		for _, bar := range fresh {
			if _, ok := have[bar.Timestamp()]; ok {
				continue
			}
			stored[symbol] = append(stored[symbol], bar)
			have[bar.Timestamp()] = struct{}{}
			filled++
		}
		total := len(stored[symbol])
		r, rerr := tradecore.NewUpdateResult(tradecore.UpdateResultParams{
			Symbol:     symbol,
			Success:    true,
			GapsFilled: &filled,
			TotalRows:  &total,
		})
		if rerr != nil {
			errs = append(errs, rerr)
			continue
		}
		results = append(results, r)
	}
	return tradecore.SummarizeBatch(results), errors.Join(errs...)
}
