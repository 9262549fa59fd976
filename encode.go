package tradecore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// EncodeEntry marshals a single ledger entry and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeEntry(w io.Writer, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal %s entry: %w", e.Type(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// EncodeLedger persists a ledger to an io.Writer in JSONL format, one entry
// per line in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, e := range ledger.entries {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a stream of JSONL entry lines, decodes each line into
// the variant named by its "entry" discriminant, and returns a
// chronologically sorted Ledger. Every decoded payload passes through its
// constructor, so a ledger read back from disk satisfies the same
// invariants as one built in memory.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Entry EntryType `json:"entry"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify entry in line %q: %w", string(line), err)
		}
		tag, err := ParseEntryType(string(identifier.Entry))
		if err != nil {
			return nil, err
		}

		var decoded Entry
		switch tag {
		case EntryFill:
			var temp struct {
				Fill  Fill            `json:"fill"`
				After *PortfolioState `json:"portfolioStateAfter"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, err
			}
			decoded, err = NewFillEntry(temp.Fill, temp.After)
			if err != nil {
				return nil, err
			}
		case EntryCash:
			var temp struct {
				Movement CashMovement    `json:"cashMovement"`
				After    *PortfolioState `json:"portfolioStateAfter"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, err
			}
			decoded, err = NewCashEntry(temp.Movement, temp.After)
			if err != nil {
				return nil, err
			}
		case EntryCorporateAction:
			var temp struct {
				Action CorporateAction `json:"corporateAction"`
				After  *PortfolioState `json:"portfolioStateAfter"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, err
			}
			decoded, err = NewCorporateActionEntry(temp.Action, temp.After)
			if err != nil {
				return nil, err
			}
		case EntryMarginCall:
			var temp struct {
				Timestamp   time.Time       `json:"timestamp"`
				Description string          `json:"description"`
				After       *PortfolioState `json:"portfolioStateAfter"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, err
			}
			decoded, err = NewMarginCallEntry(temp.Timestamp, temp.Description, temp.After)
			if err != nil {
				return nil, err
			}
		}
		ledger.entries = append(ledger.entries, decoded)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()
	return ledger, nil
}
