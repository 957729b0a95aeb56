package service

import (
	"context"

	"gorm.io/gorm"
)

// Sequencer issues globally unique bill/transaction numbers
// (CF + YYYYMMDD + per-day counter).
type Sequencer interface {
	Next(ctx context.Context) (string, error)
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with in-memory repos).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
