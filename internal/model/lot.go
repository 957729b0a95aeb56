package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus of a lot: "available" | "sold"
const (
	LotAvailable = "available"
	LotSold      = "sold"
)

// Bag classification determines the applicable rate.
const (
	BagWafer  = "wafer"
	BagSeed   = "seed"
	BagRation = "ration"
)

// Lot is a farmer's batch of bags stored at a chamber/floor/position.
// OriginalSize is immutable after entry; RemainingSize only ever decreases.
// TotalPaidCharge/TotalDueCharge are running sums across every sale cut
// against this lot.
type Lot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LotNumber int       `gorm:"uniqueIndex;not null"`

	// Farmer identity — editable, every edit appends a LotEditHistory row.
	FarmerName string `gorm:"index;not null"`
	Contact    string
	Village    string
	Tehsil     string
	District   string
	State      string

	// Physical location
	Chamber  string `gorm:"not null"`
	Floor    string
	Position string

	BagType    string `gorm:"type:varchar(20);not null"`
	Quality    string
	PotatoSize string

	OriginalSize  int `gorm:"not null"`
	RemainingSize int `gorm:"not null"`

	// NetWeightKg is required only when the store bills per quintal.
	NetWeightKg *decimal.Decimal `gorm:"type:decimal(12,2)"`

	TotalPaidCharge decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalDueCharge  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Entry-time deductions — fixed at entry, apportioned across partial
	// sales, never re-derived.
	AdvanceDeduction decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FreightDeduction decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherDeduction   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// BaseColdChargesBilled flips to true after the first sale billed on the
	// totalRemaining basis, so fixed charges are collected exactly once.
	BaseColdChargesBilled bool `gorm:"not null;default:false"`

	SaleStatus string `gorm:"type:varchar(20);not null;default:'available'"`
	UpForSale  bool   `gorm:"not null;default:false"`
	Remarks    string

	SoldAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
