package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is a fixed-asset register entry. Depreciation is computed
// straight-line from Cost over UsefulLifeYears for the P&L.
type Asset struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Name            string          `gorm:"not null"`
	Category        string          `gorm:"type:varchar(40);not null;index"` // building | machinery | vehicle | ...
	Cost            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	UsefulLifeYears int             `gorm:"not null;default:10"`
	AcquiredAt      time.Time       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Liability term: "long_term" | "current"
const (
	LiabilityLongTerm = "long_term"
	LiabilityCurrent  = "current"
)

// Liability is a loan or payable; InterestRatePct feeds interest expense
// into the P&L.
type Liability struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Name            string          `gorm:"not null"`
	Term            string          `gorm:"type:varchar(20);not null;index"`
	Principal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	InterestRatePct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IncurredAt      time.Time       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
