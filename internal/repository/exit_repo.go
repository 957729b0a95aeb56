package repository

import (
	"context"

	"coldstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExitRepository interface {
	CreateTx(tx *gorm.DB, e *model.ExitHistory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ExitHistory, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ExitHistory, error)
	// FindLatestActiveBySale returns the most recent non-reversed exit for the
	// sale — the only one ReverseLatestExit may undo.
	FindLatestActiveBySale(tx *gorm.DB, saleID uuid.UUID) (*model.ExitHistory, error)
	UpdateTx(tx *gorm.DB, e *model.ExitHistory) error
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]model.ExitHistory, error)
	DB() *gorm.DB
}

type exitRepo struct{ db *gorm.DB }

func NewExitRepository(db *gorm.DB) ExitRepository { return &exitRepo{db: db} }

func (r *exitRepo) DB() *gorm.DB { return r.db }

func (r *exitRepo) CreateTx(tx *gorm.DB, e *model.ExitHistory) error {
	return tx.Create(e).Error
}

func (r *exitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ExitHistory, error) {
	var e model.ExitHistory
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *exitRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ExitHistory, error) {
	var e model.ExitHistory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *exitRepo) FindLatestActiveBySale(tx *gorm.DB, saleID uuid.UUID) (*model.ExitHistory, error) {
	var e model.ExitHistory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sale_id = ? AND is_reversed = false", saleID).
		Order("created_at DESC").
		First(&e).Error
	return &e, err
}

func (r *exitRepo) UpdateTx(tx *gorm.DB, e *model.ExitHistory) error {
	return tx.Save(e).Error
}

func (r *exitRepo) ListBySale(ctx context.Context, saleID uuid.UUID) ([]model.ExitHistory, error) {
	var out []model.ExitHistory
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
