package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradecore"
	"github.com/google/subcommands"
)

// fmtCmd holds the flags for the 'fmt' subcommand.
type fmtCmd struct {
	ledgerFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `tcs fmt [-l <ledger_file>]

  Validates and formats the ledger file. This command reads all entries,
  validates them through their constructors, sorts them by instant, and
  writes them back in a canonical JSONL format in-place.

Usage Examples:
# Formats the default ledger file.
$ tcs fmt

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "ledger.jsonl", "Ledger file to format.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedgerFile(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	if err := tradecore.EncodeLedger(&buf, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ledger %q: %v\n", c.ledgerFile, err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.ledgerFile, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", c.ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %d entries in %q.\n", ledger.Len(), c.ledgerFile)
	return subcommands.ExitSuccess
}
