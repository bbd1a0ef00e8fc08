package models

import "time"

// IdempotencyRecord claims a transfer key. Response holds the JSON ledger
// response once the owning transaction commits.
type IdempotencyRecord struct {
	Key       string  `gorm:"primarykey"`
	SenderID  string  `gorm:"type:uuid;not null"`
	Response  *string `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (IdempotencyRecord) TableName() string { return "idempotency_keys" }
