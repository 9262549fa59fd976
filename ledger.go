package tradecore

import (
	"iter"
	"sort"
	"strings"
	"time"
)

// Entry is the common interface for all event types recorded in a ledger.
// It is a closed set: the variants are FillEntry, CashEntry,
// CorporateActionEntry and MarginCallEntry, and each carries exactly the
// payload its tag requires.
type Entry interface {
	Type() EntryType // Type returns the discriminant tag of the entry (e.g. "fill", "cash").
	When() time.Time // When returns the instant the recorded event occurred.
	Equal(Entry) bool

	// StateAfter returns the portfolio snapshot taken after the event was
	// applied, if one was recorded.
	StateAfter() (PortfolioState, bool)

	entry() // marks the set closed
}

// baseEntry carries what every entry variant shares: the event instant and
// the optional post-event snapshot.
type baseEntry struct {
	timestamp  time.Time
	stateAfter PortfolioState
	hasState   bool
}

func (e baseEntry) When() time.Time { return e.timestamp }
func (e baseEntry) entry()          {}

func (e baseEntry) StateAfter() (PortfolioState, bool) {
	return e.stateAfter, e.hasState
}

func (e baseEntry) equalBase(o baseEntry) bool {
	if e.hasState != o.hasState {
		return false
	}
	if e.hasState && !e.stateAfter.Equal(o.stateAfter) {
		return false
	}
	return e.timestamp.Equal(o.timestamp)
}

func newBaseEntry(timestamp time.Time, after *PortfolioState) (baseEntry, error) {
	if err := requireTimestamp("timestamp", timestamp); err != nil {
		return baseEntry{}, err
	}
	b := baseEntry{timestamp: timestamp}
	if after != nil {
		if after.isZero() {
			return baseEntry{}, errRelational("portfolioStateAfter", "snapshot is present but empty")
		}
		b.stateAfter = *after
		b.hasState = true
	}
	return b, nil
}

// FillEntry records an execution.
type FillEntry struct {
	baseEntry
	fill Fill
}

// NewFillEntry builds a ledger entry for a fill. The entry's instant is the
// fill's own timestamp. The snapshot is optional.
func NewFillEntry(fill Fill, after *PortfolioState) (FillEntry, error) {
	if fill.isZero() {
		return FillEntry{}, errRelational("fill", "fill entry requires a fill payload")
	}
	base, err := newBaseEntry(fill.Timestamp(), after)
	if err != nil {
		return FillEntry{}, err
	}
	return FillEntry{baseEntry: base, fill: fill}, nil
}

func (e FillEntry) Type() EntryType { return EntryFill }
func (e FillEntry) Fill() Fill      { return e.fill }

func (e FillEntry) Equal(o Entry) bool {
	other, ok := o.(FillEntry)
	return ok && e.equalBase(other.baseEntry) && e.fill.Equal(other.fill)
}

// CashEntry records a non-trade cash flow.
type CashEntry struct {
	baseEntry
	movement CashMovement
}

// NewCashEntry builds a ledger entry for a cash movement. The entry's
// instant is the movement's own timestamp. The snapshot is optional.
func NewCashEntry(movement CashMovement, after *PortfolioState) (CashEntry, error) {
	if movement.isZero() {
		return CashEntry{}, errRelational("cashMovement", "cash entry requires a cash movement payload")
	}
	base, err := newBaseEntry(movement.Timestamp(), after)
	if err != nil {
		return CashEntry{}, err
	}
	return CashEntry{baseEntry: base, movement: movement}, nil
}

func (e CashEntry) Type() EntryType            { return EntryCash }
func (e CashEntry) CashMovement() CashMovement { return e.movement }

func (e CashEntry) Equal(o Entry) bool {
	other, ok := o.(CashEntry)
	return ok && e.equalBase(other.baseEntry) && e.movement.Equal(other.movement)
}

// CorporateActionEntry records an issuer event.
type CorporateActionEntry struct {
	baseEntry
	action CorporateAction
}

// NewCorporateActionEntry builds a ledger entry for a corporate action. The
// entry's instant is the action's ex-date. The snapshot is optional.
func NewCorporateActionEntry(action CorporateAction, after *PortfolioState) (CorporateActionEntry, error) {
	if action.isZero() {
		return CorporateActionEntry{}, errRelational("corporateAction", "corporate action entry requires an action payload")
	}
	base, err := newBaseEntry(action.ExDate(), after)
	if err != nil {
		return CorporateActionEntry{}, err
	}
	return CorporateActionEntry{baseEntry: base, action: action}, nil
}

func (e CorporateActionEntry) Type() EntryType                  { return EntryCorporateAction }
func (e CorporateActionEntry) CorporateAction() CorporateAction { return e.action }

func (e CorporateActionEntry) Equal(o Entry) bool {
	other, ok := o.(CorporateActionEntry)
	return ok && e.equalBase(other.baseEntry) && e.action.Equal(other.action)
}

// MarginCallEntry records a margin call notice. It carries no typed payload
// beyond an optional broker message.
type MarginCallEntry struct {
	baseEntry
	description string
}

// NewMarginCallEntry builds a margin call entry at the given instant. The
// snapshot is optional.
func NewMarginCallEntry(timestamp time.Time, description string, after *PortfolioState) (MarginCallEntry, error) {
	base, err := newBaseEntry(timestamp, after)
	if err != nil {
		return MarginCallEntry{}, err
	}
	return MarginCallEntry{baseEntry: base, description: description}, nil
}

func (e MarginCallEntry) Type() EntryType     { return EntryMarginCall }
func (e MarginCallEntry) Description() string { return e.description }

func (e MarginCallEntry) Equal(o Entry) bool {
	other, ok := o.(MarginCallEntry)
	return ok && e.equalBase(other.baseEntry) && e.description == other.description
}

// entryHeader is the shared prefix of every ledger line: discriminant
// first, then the instant, so a line is identifiable from its first bytes.
type entryHeader struct {
	Entry     EntryType `json:"entry"`
	Timestamp time.Time `json:"timestamp"`
}

func (e baseEntry) writeHeader(w *jsonObjectWriter, tag EntryType) {
	w.EmbedFrom(entryHeader{Entry: tag, Timestamp: e.timestamp})
}

func (e baseEntry) writeState(w *jsonObjectWriter) {
	if e.hasState {
		w.Append("portfolioStateAfter", e.stateAfter)
	}
}

// MarshalJSON implements the json.Marshaler interface for FillEntry.
func (e FillEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	e.writeHeader(&w, EntryFill)
	w.Append("fill", e.fill)
	e.writeState(&w)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for CashEntry.
func (e CashEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	e.writeHeader(&w, EntryCash)
	w.Append("cashMovement", e.movement)
	e.writeState(&w)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for CorporateActionEntry.
func (e CorporateActionEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	e.writeHeader(&w, EntryCorporateAction)
	w.Append("corporateAction", e.action)
	e.writeState(&w)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for MarginCallEntry.
func (e MarginCallEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	e.writeHeader(&w, EntryMarginCall)
	w.Optional("description", e.description)
	e.writeState(&w)
	return w.MarshalJSON()
}

// Ledger is an append-only, chronologically ordered record of account
// events.
type Ledger struct {
	entries []Entry
}

// NewLedger creates a new empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds entries to the ledger and restores chronological order. The
// sort is stable, so same-instant entries keep their insertion order.
func (l *Ledger) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
	l.stableSort()
}

func (l *Ledger) stableSort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].When().Before(l.entries[j].When())
	})
}

// Len returns the number of entries in the ledger.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries iterates over the ledger in chronological order, yielding only
// entries accepted by every filter.
func (l *Ledger) Entries(filters ...func(Entry) bool) iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			accepted := true
			for _, f := range filters {
				if !f(e) {
					accepted = false
					break
				}
			}
			if accepted && !yield(i, e) {
				return
			}
		}
	}
}

// ByEntryType filters entries by their discriminant tag.
func ByEntryType(t EntryType) func(Entry) bool {
	return func(e Entry) bool { return e.Type() == t }
}

// BySymbol filters fill entries for a symbol; the query is trimmed and
// uppercased. Entries without a symbol never match.
func BySymbol(symbol string) func(Entry) bool {
	canonical := strings.ToUpper(strings.TrimSpace(symbol))
	return func(e Entry) bool {
		fe, ok := e.(FillEntry)
		return ok && fe.Fill().Symbol() == canonical
	}
}

// LastState returns the most recent portfolio snapshot recorded in the
// ledger, scanning backwards from the newest entry.
func (l *Ledger) LastState() (PortfolioState, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if state, ok := l.entries[i].StateAfter(); ok {
			return state, true
		}
	}
	return PortfolioState{}, false
}

// OldestEntryTime returns the instant of the first entry, zero when the
// ledger is empty.
func (l *Ledger) OldestEntryTime() time.Time {
	if len(l.entries) == 0 {
		return time.Time{}
	}
	return l.entries[0].When()
}

// NewestEntryTime returns the instant of the last entry, zero when the
// ledger is empty.
func (l *Ledger) NewestEntryTime() time.Time {
	if len(l.entries) == 0 {
		return time.Time{}
	}
	return l.entries[len(l.entries)-1].When()
}
