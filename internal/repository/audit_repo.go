package repository

import (
	"context"

	"coldstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository owns the append-only edit-history tables. There are no
// update or delete methods on purpose.
type AuditRepository interface {
	AppendLotEditTx(tx *gorm.DB, h *model.LotEditHistory) error
	AppendSaleEditTx(tx *gorm.DB, h *model.SaleEditHistory) error
	ListLotEdits(ctx context.Context, lotID uuid.UUID) ([]model.LotEditHistory, error)
	ListSaleEdits(ctx context.Context, saleID uuid.UUID) ([]model.SaleEditHistory, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) AppendLotEditTx(tx *gorm.DB, h *model.LotEditHistory) error {
	return tx.Create(h).Error
}

func (r *auditRepo) AppendSaleEditTx(tx *gorm.DB, h *model.SaleEditHistory) error {
	return tx.Create(h).Error
}

func (r *auditRepo) ListLotEdits(ctx context.Context, lotID uuid.UUID) ([]model.LotEditHistory, error) {
	var out []model.LotEditHistory
	err := r.db.WithContext(ctx).Where("lot_id = ?", lotID).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *auditRepo) ListSaleEdits(ctx context.Context, saleID uuid.UUID) ([]model.SaleEditHistory, error) {
	var out []model.SaleEditHistory
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Order("created_at ASC").Find(&out).Error
	return out, err
}
