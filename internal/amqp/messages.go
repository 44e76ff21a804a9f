package amqp

import (
	"encoding/json"
	"time"
)

// Sync actions carried by expense messages.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// ExpenseSyncMessage is a lightweight notification that an expense changed.
// It carries only the ID and action; the worker fetches the full expense
// from the database before mirroring it.
type ExpenseSyncMessage struct {
	ExpenseID string    `json:"expense_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseSyncMessage(expenseID, action string) *ExpenseSyncMessage {
	return &ExpenseSyncMessage{
		ExpenseID: expenseID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func ExpenseSyncMessageFromJSON(data []byte) (*ExpenseSyncMessage, error) {
	var msg ExpenseSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
