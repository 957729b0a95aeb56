package repository

import (
	"context"

	"coldstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterRepository holds the fixed-asset and liability registers that feed
// depreciation and interest into the P&L.
type RegisterRepository interface {
	CreateAsset(ctx context.Context, a *model.Asset) error
	UpdateAsset(ctx context.Context, a *model.Asset) error
	DeleteAsset(ctx context.Context, id uuid.UUID) error
	ListAssets(ctx context.Context) ([]model.Asset, error)

	CreateLiability(ctx context.Context, l *model.Liability) error
	UpdateLiability(ctx context.Context, l *model.Liability) error
	DeleteLiability(ctx context.Context, id uuid.UUID) error
	ListLiabilities(ctx context.Context) ([]model.Liability, error)
}

type registerRepo struct{ db *gorm.DB }

func NewRegisterRepository(db *gorm.DB) RegisterRepository { return &registerRepo{db: db} }

func (r *registerRepo) CreateAsset(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *registerRepo) UpdateAsset(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *registerRepo) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Asset{}, "id = ?", id).Error
}

func (r *registerRepo) ListAssets(ctx context.Context) ([]model.Asset, error) {
	var out []model.Asset
	err := r.db.WithContext(ctx).Order("category, name").Find(&out).Error
	return out, err
}

func (r *registerRepo) CreateLiability(ctx context.Context, l *model.Liability) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *registerRepo) UpdateLiability(ctx context.Context, l *model.Liability) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *registerRepo) DeleteLiability(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Liability{}, "id = ?", id).Error
}

func (r *registerRepo) ListLiabilities(ctx context.Context) ([]model.Liability, error) {
	var out []model.Liability
	err := r.db.WithContext(ctx).Order("term, name").Find(&out).Error
	return out, err
}
