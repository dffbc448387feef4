package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event actions carried on the mirror queue.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionExecuted = "executed"
	ActionUndone   = "undone"
)

// Entity kinds carried in ledger events.
const (
	KindTransaction          = "transaction"
	KindScheduledTransaction = "scheduled_transaction"
)

// LedgerEventMessage is a lightweight pointer to a ledger change. It carries
// only identifiers; the mirror worker fetches the current record from the
// database, so a stale message after a later update is harmless.
type LedgerEventMessage struct {
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(entityKind, entityID, userID, action string) *LedgerEventMessage {
	return &LedgerEventMessage{
		EntityKind: entityKind,
		EntityID:   entityID,
		UserID:     userID,
		Action:     action,
		Timestamp:  time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
