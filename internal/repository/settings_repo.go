package repository

import (
	"context"
	"errors"

	"coldstore/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the single settings row, creating defaults on first use.
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, s *model.Settings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.Settings{ID: 1, StoreName: "Cold Storage", ChargeUnit: model.ChargePerBag, StartingLotNumber: 1}
		if cerr := r.db.WithContext(ctx).Create(&s).Error; cerr != nil {
			return nil, cerr
		}
		return &s, nil
	}
	return &s, err
}

func (r *settingsRepo) Update(ctx context.Context, s *model.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
