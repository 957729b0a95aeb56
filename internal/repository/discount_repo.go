package repository

import (
	"context"

	"coldstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiscountRepository interface {
	CreateTx(tx *gorm.DB, d *model.Discount) error
	CreateAllocationTx(tx *gorm.DB, a *model.DiscountAllocation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Discount, error)
	UpdateTx(tx *gorm.DB, d *model.Discount) error
	DB() *gorm.DB
}

type discountRepo struct{ db *gorm.DB }

func NewDiscountRepository(db *gorm.DB) DiscountRepository { return &discountRepo{db: db} }

func (r *discountRepo) DB() *gorm.DB { return r.db }

func (r *discountRepo) CreateTx(tx *gorm.DB, d *model.Discount) error {
	return tx.Create(d).Error
}

func (r *discountRepo) CreateAllocationTx(tx *gorm.DB, a *model.DiscountAllocation) error {
	return tx.Create(a).Error
}

func (r *discountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).Preload("Allocations").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *discountRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Discount, error) {
	var d model.Discount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Allocations").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *discountRepo) UpdateTx(tx *gorm.DB, d *model.Discount) error {
	return tx.Omit("Allocations").Save(d).Error
}
