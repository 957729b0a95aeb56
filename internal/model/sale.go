package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleType: "partial" | "full" | "adjustment"
const (
	SalePartial    = "partial"
	SaleFull       = "full"
	SaleAdjustment = "adjustment"
)

// PaymentStatus: "paid" | "due" | "partial"
const (
	PaymentPaid    = "paid"
	PaymentDue     = "due"
	PaymentPartial = "partial"
)

// Sale records a specific quantity sold out of a Lot. The descriptive farmer
// and location fields are copied from the lot at sale time so the record stays
// meaningful even after a season reset archives the lot itself.
//
// Invariant: PaidAmount + DueAmount + TransferredOut + DiscountApplied ==
// ColdStorageCharge at all times. Payment-field corrections append a
// SaleEditHistory row; sales are never deleted, only reversed through
// compensating entries.
//
// Adjustment rows (IsAdjustment) are the credit legs created by the transfer
// engine: they carry a due owed by the receiving buyer and share a
// TransferGroupID with the source sale they were cut from. A receivable-only
// adjustment has LotID == uuid.Nil.
type Sale struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LotID uuid.UUID `gorm:"type:uuid;index"`

	// Snapshot of the lot at sale time
	LotNumber  int    `gorm:"not null;index"`
	FarmerName string `gorm:"not null;index"`
	Village    string
	Chamber    string
	Floor      string
	Position   string
	BagType    string `gorm:"type:varchar(20)"`

	SaleType     string `gorm:"type:varchar(10);not null"`
	QuantitySold int    `gorm:"not null"`

	// Per-bag rate components (storage fee vs labor/handling fee)
	ColdCharge decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Hammali    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// ColdStorageCharge is the total for this sale, inclusive of surcharges.
	ColdStorageCharge decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EntryDeduction    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	PaymentStatus   string          `gorm:"type:varchar(10);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DueAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TransferredOut  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountApplied decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// BuyerName is empty for a self-sale (farmer buying back their own lot).
	BuyerName string `gorm:"index"`

	// Extra dues owed to the merchant, tracked apart from farmer charges.
	ExtraHammaliDue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExtraGradingDue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExtraOtherDue   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Transfer tracking — set when a due moves to or from this sale.
	TransferGroupID *uuid.UUID `gorm:"type:uuid;index"`
	TransferredFrom string
	TransferredTo   string

	IsAdjustment bool `gorm:"not null;default:false"`
	IsReversed   bool `gorm:"not null;default:false"` // adjustment legs only
	ReversedAt   *time.Time

	BagsExited int `gorm:"not null;default:0"`

	SoldAt    time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
