package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradecore"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	ledgerFile string
	pricesFile string
	currency   string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a portfolio summary from the latest snapshot" }
func (*summaryCmd) Usage() string {
	return `tcs summary [-l <ledger_file>] [-p <prices_file>] [-c <currency>]

  Displays a summary of the portfolio from the most recent snapshot in the
  ledger: cash, equity, realized P&L and open positions. With a prices file
  (a JSON object of canonical symbol to current price), unrealized P&L is
  computed as well.

Usage Examples:
$ tcs summary -l ledger.jsonl -p prices.json

`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "ledger.jsonl", "Ledger file to report on.")
	f.StringVar(&c.pricesFile, "p", "", "Current prices file (JSON object, symbol to price).")
	f.StringVar(&c.currency, "c", "USD", "Currency used to display amounts.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cur, err := tradecore.ParseCurrency(c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedgerFile(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	state, ok := ledger.LastState()
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: ledger %q has no portfolio snapshot\n", c.ledgerFile)
		return subcommands.ExitFailure
	}

	var prices map[string]decimal.Decimal
	if c.pricesFile != "" {
		data, err := os.ReadFile(c.pricesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading prices file %q: %v\n", c.pricesFile, err)
			return subcommands.ExitFailure
		}
		if err := json.Unmarshal(data, &prices); err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding prices file %q: %v\n", c.pricesFile, err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(summaryMarkdown(state, prices, cur))
	return subcommands.ExitSuccess
}

// summaryMarkdown renders the snapshot as a markdown report.
func summaryMarkdown(state tradecore.PortfolioState, prices map[string]decimal.Decimal, cur tradecore.Currency) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Summary (%s)\n\n", state.Timestamp().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- Cash: %s\n", tradecore.FormatAmount(state.Cash(), cur))
	if !state.UnsettledCash().IsZero() {
		fmt.Fprintf(&b, "- Unsettled cash: %s\n", tradecore.FormatAmount(state.UnsettledCash(), cur))
	}
	fmt.Fprintf(&b, "- Equity: %s\n", tradecore.FormatAmount(state.Equity(), cur))
	fmt.Fprintf(&b, "- Realized P&L: %s\n", tradecore.FormatAmount(state.RealizedPnL(), cur))
	if prices != nil {
		if pnl, err := state.TotalUnrealizedPnL(prices); err == nil {
			fmt.Fprintf(&b, "- Unrealized P&L: %s\n", tradecore.FormatAmount(pnl, cur))
		} else {
			fmt.Fprintf(&b, "- Unrealized P&L: unavailable (%v)\n", err)
		}
	}

	if state.Len() == 0 {
		b.WriteString("\nNo open positions.\n")
		return b.String()
	}

	b.WriteString("\n| Symbol | Quantity | Avg Price | Market Value |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, symbol := range state.Symbols() {
		pos, _ := state.Position(symbol)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			symbol, pos.Quantity(), pos.AveragePrice(), tradecore.FormatAmount(pos.MarketValue(), cur))
	}
	return b.String()
}
