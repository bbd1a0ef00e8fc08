package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is an account in the directory. Every profile owns exactly one
// wallet id; the other identifiers are optional.
type Profile struct {
	ID             uint            `gorm:"primarykey" json:"-"`
	UserID         string          `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DisplayName    string          `gorm:"not null;default:''" json:"display_name"`
	Email          *string         `gorm:"uniqueIndex" json:"email"`
	UPIID          *string         `gorm:"column:upi_id;uniqueIndex" json:"upi_id"`
	WalletID       string          `gorm:"uniqueIndex;not null" json:"wallet_id"`
	BankAccount    string          `gorm:"default:''" json:"bank_account"`
	BankIFSC       string          `gorm:"column:bank_ifsc;default:''" json:"bank_ifsc"`
	BankName       string          `gorm:"default:''" json:"bank_name"`
	BitcoinAddress *string         `gorm:"uniqueIndex" json:"bitcoin_address"`
	Balance        decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StringValue dereferences an optional profile field.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
