// Package cmd implements the CLI application to work with trading ledgers
// and market data symbols.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tradecore"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&normalizeCmd{}, "symbols")
	c.Register(&parseCmd{}, "symbols")

	c.Register(&fmtCmd{}, "ledger")
	c.Register(&summaryCmd{}, "ledger")
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// decodeLedgerFile reads and decodes a JSONL ledger file.
func decodeLedgerFile(filename string) (*tradecore.Ledger, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", filename, err)
	}
	defer f.Close()
	ledger, err := tradecore.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger file %q: %w", filename, err)
	}
	return ledger, nil
}
