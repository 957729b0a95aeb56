package repository

import (
	"context"
	"time"

	"coldstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransferRepository interface {
	CreateBuyerTransferTx(tx *gorm.DB, t *model.BuyerTransfer) error
	FindBuyerTransferForUpdate(tx *gorm.DB, id uuid.UUID) (*model.BuyerTransfer, error)
	UpdateBuyerTransferTx(tx *gorm.DB, t *model.BuyerTransfer) error
	// BuyerTransfersAfter returns non-reversed transfers touching the buyer
	// recorded after the given instant, oldest first — the set whose
	// DueBalanceAfter snapshots must be recomputed when earlier history is
	// reversed.
	BuyerTransfersAfter(tx *gorm.DB, buyer string, after time.Time) ([]model.BuyerTransfer, error)

	// CreateLegTx records one source sale's contribution to a transfer. Legs
	// are never updated; reversal reads them back to restore exact amounts.
	CreateLegTx(tx *gorm.DB, l *model.TransferLeg) error
	LegsByGroup(tx *gorm.DB, group uuid.UUID) ([]model.TransferLeg, error)

	CreateFarmerTransferTx(tx *gorm.DB, t *model.FarmerToBuyerTransfer) error
	FindFarmerTransferForUpdate(tx *gorm.DB, id uuid.UUID) (*model.FarmerToBuyerTransfer, error)
	UpdateFarmerTransferTx(tx *gorm.DB, t *model.FarmerToBuyerTransfer) error
	FarmerTransfersAfter(tx *gorm.DB, buyer string, after time.Time) ([]model.FarmerToBuyerTransfer, error)

	ListBuyerTransfers(ctx context.Context, buyer string, limit int) ([]model.BuyerTransfer, error)

	DB() *gorm.DB
}

type transferRepo struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) TransferRepository { return &transferRepo{db: db} }

func (r *transferRepo) DB() *gorm.DB { return r.db }

func (r *transferRepo) CreateBuyerTransferTx(tx *gorm.DB, t *model.BuyerTransfer) error {
	return tx.Create(t).Error
}

func (r *transferRepo) FindBuyerTransferForUpdate(tx *gorm.DB, id uuid.UUID) (*model.BuyerTransfer, error) {
	var t model.BuyerTransfer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *transferRepo) UpdateBuyerTransferTx(tx *gorm.DB, t *model.BuyerTransfer) error {
	return tx.Save(t).Error
}

func (r *transferRepo) BuyerTransfersAfter(tx *gorm.DB, buyer string, after time.Time) ([]model.BuyerTransfer, error) {
	var out []model.BuyerTransfer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("(from_buyer = ? OR to_buyer = ?) AND is_reversed = false AND created_at > ?",
			buyer, buyer, after).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *transferRepo) CreateLegTx(tx *gorm.DB, l *model.TransferLeg) error {
	return tx.Create(l).Error
}

func (r *transferRepo) LegsByGroup(tx *gorm.DB, group uuid.UUID) ([]model.TransferLeg, error) {
	var out []model.TransferLeg
	err := tx.Where("transfer_group_id = ?", group).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *transferRepo) CreateFarmerTransferTx(tx *gorm.DB, t *model.FarmerToBuyerTransfer) error {
	return tx.Create(t).Error
}

func (r *transferRepo) FindFarmerTransferForUpdate(tx *gorm.DB, id uuid.UUID) (*model.FarmerToBuyerTransfer, error) {
	var t model.FarmerToBuyerTransfer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *transferRepo) UpdateFarmerTransferTx(tx *gorm.DB, t *model.FarmerToBuyerTransfer) error {
	return tx.Save(t).Error
}

func (r *transferRepo) FarmerTransfersAfter(tx *gorm.DB, buyer string, after time.Time) ([]model.FarmerToBuyerTransfer, error) {
	var out []model.FarmerToBuyerTransfer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("to_buyer = ? AND is_reversed = false AND created_at > ?", buyer, after).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *transferRepo) ListBuyerTransfers(ctx context.Context, buyer string, limit int) ([]model.BuyerTransfer, error) {
	var out []model.BuyerTransfer
	err := r.db.WithContext(ctx).
		Where("from_buyer = ? OR to_buyer = ?", buyer, buyer).
		Order("created_at DESC").Limit(limit).
		Find(&out).Error
	return out, err
}
