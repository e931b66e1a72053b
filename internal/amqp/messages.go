package amqp

import (
	"encoding/json"
	"time"
)

// LedgerChangedMessage notifies workers that a user's ledger changed.
// It carries only the user and the kind of change; the worker reads the
// current ledger state from the database.
type LedgerChangedMessage struct {
	UserID    string    `json:"user_id"`
	Change    string    `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangedMessage(userID, change string) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		UserID:    userID,
		Change:    change,
		Timestamp: time.Now(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
