package tradecore

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CashMovement is a non-trade cash flow: a deposit, withdrawal, dividend,
// interest payment or fee. The amount is signed from the account's point of
// view, so a withdrawal or fee is negative.
type CashMovement struct {
	timestamp   time.Time
	amount      decimal.Decimal
	currency    Currency
	movement    MovementType
	description string
}

// CashMovementParams is the construction record for a CashMovement.
type CashMovementParams struct {
	Timestamp   time.Time
	Amount      decimal.Decimal
	Currency    Currency
	Movement    MovementType
	Description string
}

// NewCashMovement validates the params and returns the CashMovement.
func NewCashMovement(p CashMovementParams) (CashMovement, error) {
	if err := requireTimestamp("timestamp", p.Timestamp); err != nil {
		return CashMovement{}, err
	}
	if _, err := ParseCurrency(string(p.Currency)); err != nil {
		return CashMovement{}, err
	}
	if _, err := ParseMovementType(string(p.Movement)); err != nil {
		return CashMovement{}, err
	}
	return CashMovement{
		timestamp:   p.Timestamp,
		amount:      p.Amount,
		currency:    p.Currency,
		movement:    p.Movement,
		description: p.Description,
	}, nil
}

func (m CashMovement) Timestamp() time.Time    { return m.timestamp }
func (m CashMovement) Amount() decimal.Decimal { return m.amount }
func (m CashMovement) Currency() Currency      { return m.currency }
func (m CashMovement) Movement() MovementType  { return m.movement }
func (m CashMovement) Description() string     { return m.description }

func (m CashMovement) isZero() bool { return m.currency == "" }

// Equal reports field-by-field equality, with exact decimal comparison.
func (m CashMovement) Equal(o CashMovement) bool {
	return m.timestamp.Equal(o.timestamp) &&
		m.amount.Equal(o.amount) &&
		m.currency == o.currency &&
		m.movement == o.movement &&
		m.description == o.description
}

// MarshalJSON implements the json.Marshaler interface for CashMovement.
func (m CashMovement) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("timestamp", m.timestamp)
	w.Append("amount", m.amount)
	w.Append("currency", m.currency)
	w.Append("movementType", m.movement)
	w.Optional("description", m.description)
	return w.MarshalJSON()
}

type cashMovementJSON struct {
	Timestamp   time.Time       `json:"timestamp"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Movement    MovementType    `json:"movementType"`
	Description string          `json:"description"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for CashMovement,
// routing through NewCashMovement.
func (m *CashMovement) UnmarshalJSON(data []byte) error {
	var j cashMovementJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	cm, err := NewCashMovement(CashMovementParams{
		Timestamp:   j.Timestamp,
		Amount:      j.Amount,
		Currency:    j.Currency,
		Movement:    j.Movement,
		Description: j.Description,
	})
	if err != nil {
		return err
	}
	*m = cm
	return nil
}
