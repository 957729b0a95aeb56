package repository

import (
	"context"

	"coldstore/internal/dto"
	"coldstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LotRepository interface {
	Create(ctx context.Context, l *model.Lot) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lot, error)
	// FindByIDForUpdate takes a row lock so two concurrent sales cannot race
	// past the remaining-size check.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Lot, error)
	UpdateTx(tx *gorm.DB, l *model.Lot) error
	List(ctx context.Context, filter dto.LotFilter) ([]model.Lot, int64, error)
	// CountInStockTx runs inside the season-reset transaction so no lot can
	// slip in between the check and the delete.
	CountInStockTx(tx *gorm.DB) (int64, error)
	DeleteAllTx(tx *gorm.DB) error
	NextLotNumber(ctx context.Context, starting int) (int, error)
	DB() *gorm.DB
}

type lotRepo struct{ db *gorm.DB }

func NewLotRepository(db *gorm.DB) LotRepository { return &lotRepo{db: db} }

func (r *lotRepo) DB() *gorm.DB { return r.db }

func (r *lotRepo) Create(ctx context.Context, l *model.Lot) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lotRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lot, error) {
	var l model.Lot
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *lotRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Lot, error) {
	var l model.Lot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *lotRepo) UpdateTx(tx *gorm.DB, l *model.Lot) error {
	return tx.Save(l).Error
}

func (r *lotRepo) List(ctx context.Context, filter dto.LotFilter) ([]model.Lot, int64, error) {
	var lots []model.Lot
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Lot{})
	if filter.FarmerName != "" {
		q = q.Where("farmer_name ILIKE ?", "%"+filter.FarmerName+"%")
	}
	if filter.Chamber != "" {
		q = q.Where("chamber = ?", filter.Chamber)
	}
	if filter.SaleStatus != "" && filter.SaleStatus != "all" {
		q = q.Where("sale_status = ?", filter.SaleStatus)
	}
	if filter.UpForSale != nil {
		q = q.Where("up_for_sale = ?", *filter.UpForSale)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("lot_number ASC").Offset(offset).Limit(filter.Limit).Find(&lots).Error
	return lots, total, err
}

func (r *lotRepo) CountInStockTx(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Model(&model.Lot{}).Where("remaining_size > 0").Count(&n).Error
	return n, err
}

func (r *lotRepo) DeleteAllTx(tx *gorm.DB) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Lot{}).Error
}

func (r *lotRepo) NextLotNumber(ctx context.Context, starting int) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.Lot{}).Select("MAX(lot_number)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil || *max < starting {
		return starting, nil
	}
	return *max + 1, nil
}
