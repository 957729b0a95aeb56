package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge unit configured for the store: "per_bag" | "per_quintal"
const (
	ChargePerBag     = "per_bag"
	ChargePerQuintal = "per_quintal"
)

// Settings is the single-row store configuration, read at calculation time.
type Settings struct {
	ID uint `gorm:"primaryKey"`

	StoreName  string `gorm:"not null"`
	ChargeUnit string `gorm:"type:varchar(20);not null;default:'per_bag'"`

	ColdChargePerBag decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	HammaliPerBag    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PricePerQuintal  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	StartingLotNumber int `gorm:"not null;default:1"`

	UpdatedAt time.Time
}

func (Settings) TableName() string { return "settings" }
