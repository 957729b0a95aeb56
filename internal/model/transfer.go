package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer kinds
const (
	TransferBuyerToBuyer  = "buyer_to_buyer"
	TransferFarmerToBuyer = "farmer_to_buyer"
)

// BuyerTransfer moves an outstanding due from one buyer to another without
// moving goods. The debit side is traced by immutable TransferLeg rows sharing
// the TransferGroupID; CreditSaleID points at the adjustment sale owed by the
// recipient, so the whole event can be walked in both directions.
//
// DueBalanceAfter caches the affected buyer's balance immediately after the
// transfer. Reversing any earlier event recomputes every later snapshot for
// the touched parties (see reversal service).
type BuyerTransfer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransferGroupID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreditSaleID    uuid.UUID `gorm:"type:uuid;not null"`
	TransactionID   string    `gorm:"uniqueIndex;not null"`

	FromBuyer string          `gorm:"not null;index"`
	ToBuyer   string          `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	FromDueBalanceAfter decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ToDueBalanceAfter   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Narration string

	IsReversed bool `gorm:"not null;default:false"`
	ReversedAt *time.Time

	CreatedAt time.Time
}

// TransferLeg records how much of a transfer's debit side came out of one
// source sale. Legs are immutable, one per transfer and sale, so a sale
// feeding several transfers keeps a separate trace for each and any single
// transfer can be unwound exactly.
type TransferLeg struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransferGroupID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
}

// FarmerToBuyerTransfer moves farmer-side receivable and self-sale debt onto a
// buyer's ledger. TotalAmount == ReceivablesTransferred + SelfSalesTransferred
// is enforced at creation.
type FarmerToBuyerTransfer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransferGroupID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreditSaleID    uuid.UUID `gorm:"type:uuid;not null"`
	TransactionID   string    `gorm:"uniqueIndex;not null"`

	FarmerName string `gorm:"not null;index"`
	ToBuyer    string `gorm:"not null;index"`

	ReceivablesTransferred decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SelfSalesTransferred   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	BuyerDueBalanceAfter decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Narration string

	IsReversed bool `gorm:"not null;default:false"`
	ReversedAt *time.Time

	CreatedAt time.Time
}
