package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradecore"
	"github.com/google/subcommands"
)

// normalizeCmd holds the flags for the 'normalize' subcommand.
type normalizeCmd struct {
	class string
}

func (*normalizeCmd) Name() string     { return "normalize" }
func (*normalizeCmd) Synopsis() string { return "normalize raw provider symbols into canonical form" }
func (*normalizeCmd) Usage() string {
	return `tcs normalize -a <asset-class> <symbols...>

  Normalizes raw provider symbols into their canonical form: forex pairs
  become BASE_QUOTE, crypto pairs BASE-QUOTE, everything else a bare
  uppercase ticker. Exchange prefixes like "BINANCE:" are stripped.

Usage Examples:
$ tcs normalize -a forex EUR/USD gbpusd
$ tcs normalize -a crypto btcusdt BINANCE:ethusdt

`
}

func (c *normalizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.class, "a", "equity", "Asset class of the symbols (forex, crypto, equity, future, option).")
}

func (c *normalizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, err := tradecore.ParseAssetClass(c.class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if len(f.Args()) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no symbols given\n")
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, raw := range f.Args() {
		symbol := tradecore.NormalizeSymbol(raw, class)
		if !tradecore.ValidateSymbol(symbol) {
			fmt.Fprintf(os.Stderr, "Error: %q does not normalize to a canonical symbol (got %q)\n", raw, symbol)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Println(symbol)
	}
	return status
}
