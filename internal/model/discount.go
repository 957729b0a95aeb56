package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount reduces a farmer's dues, allocated across one or more buyers.
// Sum of allocations equals Amount; the whole discount reverses as a unit.
type Discount struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID string    `gorm:"uniqueIndex;not null"`

	FarmerName string          `gorm:"not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Narration  string

	IsReversed bool `gorm:"not null;default:false"`
	ReversedAt *time.Time

	Allocations []DiscountAllocation `gorm:"foreignKey:DiscountID"`

	CreatedAt time.Time
}

// DiscountAllocation is one buyer's share of a discount.
type DiscountAllocation struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DiscountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerName  string          `gorm:"not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
}
