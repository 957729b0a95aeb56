package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is an outbound cash movement, bucketed by type for the P&L.
type Expense struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID string    `gorm:"uniqueIndex;not null"`

	ExpenseType string          `gorm:"type:varchar(40);not null;index"` // electricity | wages | repairs | ...
	Mode        string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Narration   string

	IsReversed bool `gorm:"not null;default:false"`
	ReversedAt *time.Time

	CreatedAt time.Time
}

// CashTransfer moves money between internal accounts (cash drawer ↔ bank).
// It never touches farmer or buyer balances.
type CashTransfer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID string    `gorm:"uniqueIndex;not null"`

	FromAccount string          `gorm:"type:varchar(20);not null"` // cash | account
	ToAccount   string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Narration   string

	IsReversed bool `gorm:"not null;default:false"`
	ReversedAt *time.Time

	CreatedAt time.Time
}
