package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction directions, one row per participant.
const (
	TransactionTypeSent     = "sent"
	TransactionTypeReceived = "received"
)

const TransactionStatusCompleted = "completed"

// Transaction is a participant's view of one transfer.
type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	UserID           string          `gorm:"type:uuid;not null;index:idx_transactions_user_created,priority:1" json:"user_id"`
	CounterpartyID   string          `gorm:"type:uuid;not null" json:"counterparty_id"`
	CounterpartyName string          `json:"counterparty_name"`
	Type             string          `gorm:"not null" json:"type"`
	Amount           decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	Method           string          `gorm:"not null;default:'bank'" json:"method"`
	Status           string          `gorm:"not null;default:'completed'" json:"status"`
	IdempotencyKey   string          `gorm:"index" json:"-"`
	CreatedAt        time.Time       `gorm:"index:idx_transactions_user_created,priority:2,sort:desc" json:"created_at"`
}
