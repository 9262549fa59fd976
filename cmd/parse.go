package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradecore"
	"github.com/google/subcommands"
)

type parseCmd struct{}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "split canonical symbols into base and quote" }
func (*parseCmd) Usage() string {
	return `tcs parse <symbols...>

  Splits canonical symbols into their base and quote components. A symbol
  without a separator is a single asset and has no quote.

Usage Examples:
$ tcs parse EUR_USD BTC-USDT AAPL

`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(f.Args()) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no symbols given\n")
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		if !tradecore.ValidateSymbol(symbol) {
			fmt.Fprintf(os.Stderr, "Error: %q is not a canonical symbol\n", symbol)
			status = subcommands.ExitFailure
			continue
		}
		base, quote := tradecore.ParseSymbol(symbol)
		if quote == "" {
			fmt.Printf("%s: %s\n", symbol, base)
			continue
		}
		fmt.Printf("%s: base=%s quote=%s\n", symbol, base, quote)
	}
	return status
}
