package repository

import (
	"context"
	"time"

	"coldstore/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReceiptRepository interface {
	CreateTx(tx *gorm.DB, r *model.CashReceipt) error
	CreateAllocationTx(tx *gorm.DB, a *model.ReceiptAllocation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashReceipt, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.CashReceipt, error)
	UpdateTx(tx *gorm.DB, r *model.CashReceipt) error
	ListByBuyer(ctx context.Context, buyer string, limit int) ([]model.CashReceipt, error)
	SumAppliedByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error)
	SumUnappliedByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error)
	SumOtherIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	DB() *gorm.DB
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) DB() *gorm.DB { return r.db }

func (r *receiptRepo) CreateTx(tx *gorm.DB, rc *model.CashReceipt) error {
	return tx.Create(rc).Error
}

func (r *receiptRepo) CreateAllocationTx(tx *gorm.DB, a *model.ReceiptAllocation) error {
	return tx.Create(a).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashReceipt, error) {
	var rc model.CashReceipt
	err := r.db.WithContext(ctx).Preload("Allocations").First(&rc, "id = ?", id).Error
	return &rc, err
}

func (r *receiptRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.CashReceipt, error) {
	var rc model.CashReceipt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Allocations").First(&rc, "id = ?", id).Error
	return &rc, err
}

func (r *receiptRepo) UpdateTx(tx *gorm.DB, rc *model.CashReceipt) error {
	return tx.Omit("Allocations").Save(rc).Error
}

func (r *receiptRepo) ListByBuyer(ctx context.Context, buyer string, limit int) ([]model.CashReceipt, error) {
	var out []model.CashReceipt
	err := r.db.WithContext(ctx).
		Where("buyer_name = ?", buyer).
		Order("created_at DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *receiptRepo) SumAppliedByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.CashReceipt{}).
		Select("COALESCE(SUM(applied_amount), 0)").
		Where("buyer_name = ? AND is_reversed = false", buyer).
		Scan(&out).Error
	return out, err
}

func (r *receiptRepo) SumUnappliedByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.CashReceipt{}).
		Select("COALESCE(SUM(unapplied_amount), 0)").
		Where("buyer_name = ? AND is_reversed = false", buyer).
		Scan(&out).Error
	return out, err
}

func (r *receiptRepo) SumOtherIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.CashReceipt{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("payer_type IN ? AND is_reversed = false AND created_at >= ? AND created_at < ?",
			[]string{model.PayerKata, model.PayerOthers}, from, to).
		Scan(&out).Error
	return out, err
}
