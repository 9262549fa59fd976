package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/tradecore"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// createTempLedger writes a ledger file into a temp dir and returns its path.
func createTempLedger(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "ledger.jsonl")
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp ledger: %v", err)
	}
	return name
}

func TestFmtCmd(t *testing.T) {
	// Two entries out of chronological order.
	original := `{"entry":"margin_call","timestamp":"2025-03-14T15:00:00Z","description":"maintenance margin breached"}
{"entry":"cash","timestamp":"2025-03-14T07:30:00Z","cashMovement":{"timestamp":"2025-03-14T07:30:00Z","amount":"100000","currency":"USD","movementType":"deposit"}}
`
	name := createTempLedger(t, original)

	c := &fmtCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-l", name}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if status := c.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}

	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("Failed to read formatted ledger: %v", err)
	}

	// The formatted file is the canonical encoding of the decoded ledger.
	ledger, err := tradecore.DecodeLedger(bytes.NewReader([]byte(original)))
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	var want bytes.Buffer
	if err := tradecore.EncodeLedger(&want, ledger); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}
	if string(got) != want.String() {
		t.Errorf("formatted ledger mismatch.\nGot:\n%s\nWant:\n%s", got, want.String())
	}

	// Chronological order: the cash deposit comes first now.
	lines := strings.Split(strings.TrimSpace(string(got)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], `{"entry":"cash"`) {
		t.Errorf("first line is not the cash entry: %s", lines[0])
	}
}

func TestFmtCmdRejectsInvalid(t *testing.T) {
	name := createTempLedger(t, `{"entry":"teleport","timestamp":"2025-03-14T07:30:00Z"}`+"\n")

	c := &fmtCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-l", name}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if status := c.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", status)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	pos, err := tradecore.NewPosition(tradecore.PositionParams{
		Symbol:       "EUR_USD",
		Quantity:     decimal.NewFromInt(10000),
		AveragePrice: decimal.RequireFromString("1.1000"),
		Timestamp:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewPosition() failed: %v", err)
	}
	state, err := tradecore.NewPortfolioState(tradecore.PortfolioStateParams{
		Timestamp:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Cash:        decimal.NewFromInt(89000),
		RealizedPnL: decimal.NewFromInt(500),
		Positions:   map[string]tradecore.Position{"EUR_USD": pos},
	})
	if err != nil {
		t.Fatalf("NewPortfolioState() failed: %v", err)
	}
	prices := map[string]decimal.Decimal{"EUR_USD": decimal.RequireFromString("1.1200")}

	md := summaryMarkdown(state, prices, tradecore.USD)

	for _, want := range []string{
		"# Portfolio Summary (2025-03-14 09:30 UTC)",
		"Cash: $89,000.00",
		"Equity: $100,000.00",
		"Realized P&L: $500.00",
		"Unrealized P&L: $200.00",
		"| EUR_USD | 10000 | 1.1000 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("summary is missing %q:\n%s", want, md)
		}
	}
}

func TestSummaryMarkdownNoPositions(t *testing.T) {
	state, err := tradecore.NewPortfolioState(tradecore.PortfolioStateParams{
		Timestamp: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Cash:      decimal.NewFromInt(50000),
	})
	if err != nil {
		t.Fatalf("NewPortfolioState() failed: %v", err)
	}
	md := summaryMarkdown(state, nil, tradecore.USD)
	if !strings.Contains(md, "No open positions.") {
		t.Errorf("summary should report no open positions:\n%s", md)
	}
	if strings.Contains(md, "Unrealized") {
		t.Errorf("summary without prices must not report unrealized P&L:\n%s", md)
	}
}
