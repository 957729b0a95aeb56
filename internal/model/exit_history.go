package model

import (
	"time"

	"github.com/google/uuid"
)

// ExitHistory records physical removal of already-sold bags from storage,
// independent of whether the sale has been paid. Each exit carries a unique
// gate-pass bill number and can be reversed.
type ExitHistory struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID uuid.UUID `gorm:"type:uuid;not null;index"`

	BillNumber string `gorm:"uniqueIndex;not null"` // CF + YYYYMMDD + daily counter
	BagsExited int    `gorm:"not null"`

	IsReversed bool `gorm:"not null;default:false"`
	ReversedAt *time.Time

	CreatedAt time.Time
}

func (ExitHistory) TableName() string { return "exit_history" }
