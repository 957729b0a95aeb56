package model

import (
	"time"

	"github.com/google/uuid"
)

// LotEditHistory is an append-only audit row: full before/after JSON snapshots
// of a lot around a metadata edit. Rows are never updated or deleted.
type LotEditHistory struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LotID uuid.UUID `gorm:"type:uuid;not null;index"`

	EditedBy string `gorm:"not null"`
	Previous string `gorm:"type:jsonb;not null"`
	New      string `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
}

func (LotEditHistory) TableName() string { return "lot_edit_history" }

// SaleEditHistory audits payment-status and metadata corrections on a sale.
type SaleEditHistory struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID uuid.UUID `gorm:"type:uuid;not null;index"`

	EditedBy string `gorm:"not null"`
	Previous string `gorm:"type:jsonb;not null"`
	New      string `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
}

func (SaleEditHistory) TableName() string { return "sale_edit_history" }
