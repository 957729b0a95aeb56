package model

import (
	"time"

	"github.com/google/uuid"
)

// Access levels: "view" may only read, "edit" may mutate the ledger.
const (
	AccessView = "view"
	AccessEdit = "edit"
)

// User is an operator account. PasswordHash is bcrypt.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	AccessLevel  string    `gorm:"type:varchar(10);not null;default:'view'"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
