package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayerType of a cash receipt.
const (
	PayerColdMerchant = "cold_merchant"
	PayerSalesGoods   = "sales_goods"
	PayerKata         = "kata"
	PayerOthers       = "others"
)

// Payment mode
const (
	ModeCash    = "cash"
	ModeAccount = "account"
)

// CashReceipt is an inbound payment. On creation it is split into
// AppliedAmount (allocated FIFO against outstanding sale dues) and
// UnappliedAmount (held against future dues for the same payer).
//
// Invariant: AppliedAmount + UnappliedAmount == Amount.
type CashReceipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID string    `gorm:"uniqueIndex;not null"` // CF + YYYYMMDD + daily counter

	PayerType string `gorm:"type:varchar(20);not null;index"`
	BuyerName string `gorm:"index"`
	Mode      string `gorm:"type:varchar(10);not null"`

	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AppliedAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UnappliedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Narration string

	IsReversed bool `gorm:"not null;default:false"`
	ReversedAt *time.Time

	Allocations []ReceiptAllocation `gorm:"foreignKey:ReceiptID"`

	CreatedAt time.Time
}

// ReceiptAllocation links a slice of a receipt to the sale it settled.
// Rows are immutable; reversing the receipt marks them reversed alongside it.
type ReceiptAllocation struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}
