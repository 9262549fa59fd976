// Package tradecore provides the canonical, immutable value layer shared by
// the trading stack: price bars, quotes, positions, fills, orders, portfolio
// snapshots, cash movements, corporate actions, and ledger entries, together
// with the pure functions that normalize instrument symbols and derive
// financial analytics (mid/spread, range/true range, P&L, equity).
//
// The core functionalities include:
//   - Symbol Canonicalization: normalizing raw provider symbols into a single
//     canonical form per asset class (EUR_USD, BTC-USDT, AAPL) and validating
//     that form everywhere a symbol appears.
//   - Validated Value Objects: every entity is built from a parameter record
//     and either comes out fully valid or not at all; no partially valid
//     value can exist, and values are never mutated after construction.
//   - Exact Arithmetic: monetary and quantity fields are arbitrary-precision
//     decimals and serialize as exact strings, so round trips never lose
//     precision.
//   - Ledger Entries: a closed set of entry types (fill, cash, corporate
//     action, margin call) recorded in chronological order and persisted in a
//     human-readable JSONL format.
//   - Operation Results: structured per-symbol and batch outcome records for
//     the fetch/update collaborators that feed data into this layer.
//
// Everything in this package is pure and synchronous: no I/O, no clocks, no
// goroutines. Collaborators (data feeds, brokers, storage, the tcs
// command-line tool) consume and produce these values but carry no validation
// logic of their own.
package tradecore
