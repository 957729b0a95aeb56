package repository

import (
	"context"
	"time"

	"coldstore/internal/dto"
	"coldstore/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	// OutstandingByBuyer returns non-reversed sales with a positive due for the
	// buyer, locked for update, oldest first.
	OutstandingByBuyer(tx *gorm.DB, buyer string) ([]model.Sale, error)
	// OutstandingSelfSales are the farmer's own dues (no buyer recorded).
	OutstandingSelfSales(tx *gorm.DB, farmer string) ([]model.Sale, error)
	// DiscountedByBuyer returns the buyer's sales still carrying applied
	// discount, newest first, locked — the order discounts unwind in.
	DiscountedByBuyer(tx *gorm.DB, buyer string) ([]model.Sale, error)
	SumDueByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error)
	// SumDueAll is the receivables line of the balance sheet.
	SumDueAll(ctx context.Context) (decimal.Decimal, error)
	SumChargedByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error)
	// Aggregates for the P&L, over the financial-year window.
	SumPaidBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumExtrasBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Save(s).Error
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.LotID != "" {
		q = q.Where("lot_id = ?", filter.LotID)
	}
	if filter.BuyerName != "" {
		q = q.Where("buyer_name = ?", filter.BuyerName)
	}
	if filter.FarmerName != "" {
		q = q.Where("farmer_name = ?", filter.FarmerName)
	}
	if filter.PaymentStatus != "" && filter.PaymentStatus != "all" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("sold_at DESC").Offset(offset).Limit(filter.Limit).Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) OutstandingByBuyer(tx *gorm.DB, buyer string) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("buyer_name = ? AND due_amount > 0 AND is_reversed = false", buyer).
		Order("sold_at ASC, id ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) OutstandingSelfSales(tx *gorm.DB, farmer string) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("farmer_name = ? AND buyer_name = '' AND due_amount > 0 AND is_reversed = false", farmer).
		Order("sold_at ASC, id ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) DiscountedByBuyer(tx *gorm.DB, buyer string) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("buyer_name = ? AND discount_applied > 0 AND is_reversed = false", buyer).
		Order("sold_at DESC, id DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SumDueByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM(due_amount), 0)",
		"buyer_name = ? AND is_reversed = false", buyer)
}

func (r *saleRepo) SumDueAll(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM(due_amount), 0)", "is_reversed = false")
}

func (r *saleRepo) SumChargedByBuyer(ctx context.Context, buyer string) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM(cold_storage_charge), 0)",
		"buyer_name = ? AND is_reversed = false", buyer)
}

func (r *saleRepo) SumPaidBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM(paid_amount), 0)",
		"sold_at >= ? AND sold_at < ? AND is_reversed = false", from, to)
}

func (r *saleRepo) SumExtrasBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM(extra_hammali_due + extra_grading_due + extra_other_due), 0)",
		"sold_at >= ? AND sold_at < ? AND is_reversed = false", from, to)
}

func (r *saleRepo) sum(ctx context.Context, sel, where string, args ...interface{}) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select(sel).Where(where, args...).Scan(&out).Error
	return out, err
}
