package tradecore

import (
	"encoding/json"
)

// Result is the common interface of per-symbol outcome records, so a batch
// can aggregate fetches and updates alike.
type Result interface {
	ResultSymbol() string
	Succeeded() bool
	ErrorMessage() string
}

// FetchResult is the outcome of fetching one symbol's data. On success it
// carries the row count; on failure, the error message. Neither ever
// carries both.
type FetchResult struct {
	symbol  string
	success bool
	count   int
	err     string
}

// FetchResultParams is the construction record for a FetchResult.
type FetchResultParams struct {
	Symbol  string
	Success bool
	Count   *int   // required on success
	Error   string // required on failure
}

// NewFetchResult validates the params and returns the FetchResult.
func NewFetchResult(p FetchResultParams) (FetchResult, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return FetchResult{}, err
	}
	if p.Success {
		if p.Count == nil {
			return FetchResult{}, errRelational("count", "count is required on success")
		}
		if p.Error != "" {
			return FetchResult{}, errRelational("error", "error must be absent on success")
		}
		if *p.Count < 0 {
			return FetchResult{}, errRange("count", "count must be non-negative, got %d", *p.Count)
		}
		return FetchResult{symbol: symbol, success: true, count: *p.Count}, nil
	}
	if p.Error == "" {
		return FetchResult{}, errRelational("error", "error is required on failure")
	}
	if p.Count != nil {
		return FetchResult{}, errRelational("count", "count must be absent on failure")
	}
	return FetchResult{symbol: symbol, err: p.Error}, nil
}

func (r FetchResult) ResultSymbol() string { return r.symbol }
func (r FetchResult) Succeeded() bool      { return r.success }
func (r FetchResult) ErrorMessage() string { return r.err }

// Count returns the number of rows fetched; it is zero on failure.
func (r FetchResult) Count() int { return r.count }

// Equal reports field-by-field equality.
func (r FetchResult) Equal(o FetchResult) bool { return r == o }

// MarshalJSON implements the json.Marshaler interface for FetchResult.
func (r FetchResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", r.symbol)
	w.Append("success", r.success)
	if r.success {
		w.Append("count", r.count)
	}
	w.Optional("error", r.err)
	return w.MarshalJSON()
}

type fetchResultJSON struct {
	Symbol  string `json:"symbol"`
	Success bool   `json:"success"`
	Count   *int   `json:"count"`
	Error   string `json:"error"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for FetchResult,
// routing through NewFetchResult.
func (r *FetchResult) UnmarshalJSON(data []byte) error {
	var j fetchResultJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	fr, err := NewFetchResult(FetchResultParams{
		Symbol:  j.Symbol,
		Success: j.Success,
		Count:   j.Count,
		Error:   j.Error,
	})
	if err != nil {
		return err
	}
	*r = fr
	return nil
}

// UpdateResult is the outcome of updating one symbol's stored data. On
// success it carries how many gaps were backfilled and the resulting row
// total; on failure, the error message.
type UpdateResult struct {
	symbol     string
	success    bool
	gapsFilled int
	totalRows  int
	err        string
}

// UpdateResultParams is the construction record for an UpdateResult.
type UpdateResultParams struct {
	Symbol     string
	Success    bool
	GapsFilled *int   // required on success
	TotalRows  *int   // required on success
	Error      string // required on failure
}

// NewUpdateResult validates the params and returns the UpdateResult.
func NewUpdateResult(p UpdateResultParams) (UpdateResult, error) {
	symbol, err := canonicalize("symbol", p.Symbol)
	if err != nil {
		return UpdateResult{}, err
	}
	if p.Success {
		if p.GapsFilled == nil {
			return UpdateResult{}, errRelational("gapsFilled", "gapsFilled is required on success")
		}
		if p.TotalRows == nil {
			return UpdateResult{}, errRelational("totalRows", "totalRows is required on success")
		}
		if p.Error != "" {
			return UpdateResult{}, errRelational("error", "error must be absent on success")
		}
		if *p.GapsFilled < 0 {
			return UpdateResult{}, errRange("gapsFilled", "gapsFilled must be non-negative, got %d", *p.GapsFilled)
		}
		if *p.TotalRows < 0 {
			return UpdateResult{}, errRange("totalRows", "totalRows must be non-negative, got %d", *p.TotalRows)
		}
		return UpdateResult{symbol: symbol, success: true, gapsFilled: *p.GapsFilled, totalRows: *p.TotalRows}, nil
	}
	if p.Error == "" {
		return UpdateResult{}, errRelational("error", "error is required on failure")
	}
	if p.GapsFilled != nil || p.TotalRows != nil {
		return UpdateResult{}, errRelational("gapsFilled", "success fields must be absent on failure")
	}
	return UpdateResult{symbol: symbol, err: p.Error}, nil
}

func (r UpdateResult) ResultSymbol() string { return r.symbol }
func (r UpdateResult) Succeeded() bool      { return r.success }
func (r UpdateResult) ErrorMessage() string { return r.err }

// GapsFilled returns how many gaps were backfilled; it is zero on failure.
func (r UpdateResult) GapsFilled() int { return r.gapsFilled }

// TotalRows returns the row total after the update; it is zero on failure.
func (r UpdateResult) TotalRows() int { return r.totalRows }

// Equal reports field-by-field equality.
func (r UpdateResult) Equal(o UpdateResult) bool { return r == o }

// MarshalJSON implements the json.Marshaler interface for UpdateResult.
func (r UpdateResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", r.symbol)
	w.Append("success", r.success)
	if r.success {
		w.Append("gapsFilled", r.gapsFilled)
		w.Append("totalRows", r.totalRows)
	}
	w.Optional("error", r.err)
	return w.MarshalJSON()
}

type updateResultJSON struct {
	Symbol     string `json:"symbol"`
	Success    bool   `json:"success"`
	GapsFilled *int   `json:"gapsFilled"`
	TotalRows  *int   `json:"totalRows"`
	Error      string `json:"error"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for UpdateResult,
// routing through NewUpdateResult.
func (r *UpdateResult) UnmarshalJSON(data []byte) error {
	var j updateResultJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	ur, err := NewUpdateResult(UpdateResultParams{
		Symbol:     j.Symbol,
		Success:    j.Success,
		GapsFilled: j.GapsFilled,
		TotalRows:  j.TotalRows,
		Error:      j.Error,
	})
	if err != nil {
		return err
	}
	*r = ur
	return nil
}

// BatchResult aggregates the per-symbol results of one batch operation. The
// totals are checked against the result list at construction, so a
// BatchResult's summary can be trusted without recounting.
type BatchResult struct {
	total     int
	succeeded int
	failed    int
	results   []Result
}

// NewBatchResult validates the totals against the results and returns the
// BatchResult.
func NewBatchResult(total, succeeded, failed int, results []Result) (BatchResult, error) {
	if total != succeeded+failed {
		return BatchResult{}, errConsistency("total", "total %d does not equal succeeded %d + failed %d", total, succeeded, failed)
	}
	if len(results) != total {
		return BatchResult{}, errConsistency("results", "results length %d does not equal total %d", len(results), total)
	}
	out := make([]Result, len(results))
	copy(out, results)
	return BatchResult{total: total, succeeded: succeeded, failed: failed, results: out}, nil
}

// SummarizeBatch counts successes and failures in the results and builds
// the matching BatchResult. It cannot fail: the totals are derived.
func SummarizeBatch(results []Result) BatchResult {
	succeeded := 0
	for _, r := range results {
		if r.Succeeded() {
			succeeded++
		}
	}
	batch, _ := NewBatchResult(len(results), succeeded, len(results)-succeeded, results)
	return batch
}

func (b BatchResult) Total() int     { return b.total }
func (b BatchResult) Succeeded() int { return b.succeeded }
func (b BatchResult) Failed() int    { return b.failed }

// Results returns a copy of the individual results in their original order.
func (b BatchResult) Results() []Result {
	out := make([]Result, len(b.results))
	copy(out, b.results)
	return out
}

// SuccessRate returns the percentage of successful operations, 0 when the
// batch is empty.
func (b BatchResult) SuccessRate() float64 {
	if b.total == 0 {
		return 0
	}
	return float64(b.succeeded) / float64(b.total) * 100
}

// Failures returns the failed results, preserving their original order.
func (b BatchResult) Failures() []Result {
	var out []Result
	for _, r := range b.results {
		if !r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}

// Successes returns the successful results, preserving their original
// order.
func (b BatchResult) Successes() []Result {
	var out []Result
	for _, r := range b.results {
		if r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}
