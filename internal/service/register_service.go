package service

import (
	"context"
	"time"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/model"
	"coldstore/internal/repository"

	"github.com/google/uuid"
)

// RegisterService maintains the asset and liability registers and the store
// settings that feed the calculators and statements.
type RegisterService interface {
	CreateAsset(ctx context.Context, req dto.AssetRequest) (*dto.AssetResponse, error)
	UpdateAsset(ctx context.Context, id uuid.UUID, req dto.AssetRequest) (*dto.AssetResponse, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error
	ListAssets(ctx context.Context) ([]dto.AssetResponse, error)

	CreateLiability(ctx context.Context, req dto.LiabilityRequest) (*dto.LiabilityResponse, error)
	UpdateLiability(ctx context.Context, id uuid.UUID, req dto.LiabilityRequest) (*dto.LiabilityResponse, error)
	DeleteLiability(ctx context.Context, id uuid.UUID) error
	ListLiabilities(ctx context.Context) ([]dto.LiabilityResponse, error)

	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, req dto.SettingsRequest) (*model.Settings, error)
}

type registerService struct {
	register repository.RegisterRepository
	settings repository.SettingsRepository
}

func NewRegisterService(register repository.RegisterRepository, settings repository.SettingsRepository) RegisterService {
	return &registerService{register: register, settings: settings}
}

const dateLayout = "2006-01-02"

func (s *registerService) CreateAsset(ctx context.Context, req dto.AssetRequest) (*dto.AssetResponse, error) {
	acquired, err := time.Parse(dateLayout, req.AcquiredAt)
	if err != nil {
		return nil, domainerr.Validation("acquired_at", "expected YYYY-MM-DD")
	}
	if !req.Cost.IsPositive() {
		return nil, domainerr.Validation("cost", "must be positive")
	}
	a := &model.Asset{
		Name:            req.Name,
		Category:        req.Category,
		Cost:            req.Cost,
		UsefulLifeYears: req.UsefulLifeYears,
		AcquiredAt:      acquired,
	}
	if err := s.register.CreateAsset(ctx, a); err != nil {
		return nil, err
	}
	return assetToResponse(a), nil
}

func (s *registerService) UpdateAsset(ctx context.Context, id uuid.UUID, req dto.AssetRequest) (*dto.AssetResponse, error) {
	acquired, err := time.Parse(dateLayout, req.AcquiredAt)
	if err != nil {
		return nil, domainerr.Validation("acquired_at", "expected YYYY-MM-DD")
	}
	if !req.Cost.IsPositive() {
		return nil, domainerr.Validation("cost", "must be positive")
	}
	a := &model.Asset{
		ID:              id,
		Name:            req.Name,
		Category:        req.Category,
		Cost:            req.Cost,
		UsefulLifeYears: req.UsefulLifeYears,
		AcquiredAt:      acquired,
	}
	if err := s.register.UpdateAsset(ctx, a); err != nil {
		return nil, err
	}
	return assetToResponse(a), nil
}

func (s *registerService) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return s.register.DeleteAsset(ctx, id)
}

func (s *registerService) ListAssets(ctx context.Context) ([]dto.AssetResponse, error) {
	assets, err := s.register.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, *assetToResponse(&assets[i]))
	}
	return out, nil
}

func (s *registerService) CreateLiability(ctx context.Context, req dto.LiabilityRequest) (*dto.LiabilityResponse, error) {
	incurred, err := time.Parse(dateLayout, req.IncurredAt)
	if err != nil {
		return nil, domainerr.Validation("incurred_at", "expected YYYY-MM-DD")
	}
	if !req.Principal.IsPositive() {
		return nil, domainerr.Validation("principal", "must be positive")
	}
	l := &model.Liability{
		Name:            req.Name,
		Term:            req.Term,
		Principal:       req.Principal,
		InterestRatePct: req.InterestRatePct,
		IncurredAt:      incurred,
	}
	if err := s.register.CreateLiability(ctx, l); err != nil {
		return nil, err
	}
	return liabilityToResponse(l), nil
}

func (s *registerService) UpdateLiability(ctx context.Context, id uuid.UUID, req dto.LiabilityRequest) (*dto.LiabilityResponse, error) {
	incurred, err := time.Parse(dateLayout, req.IncurredAt)
	if err != nil {
		return nil, domainerr.Validation("incurred_at", "expected YYYY-MM-DD")
	}
	if !req.Principal.IsPositive() {
		return nil, domainerr.Validation("principal", "must be positive")
	}
	l := &model.Liability{
		ID:              id,
		Name:            req.Name,
		Term:            req.Term,
		Principal:       req.Principal,
		InterestRatePct: req.InterestRatePct,
		IncurredAt:      incurred,
	}
	if err := s.register.UpdateLiability(ctx, l); err != nil {
		return nil, err
	}
	return liabilityToResponse(l), nil
}

func (s *registerService) DeleteLiability(ctx context.Context, id uuid.UUID) error {
	return s.register.DeleteLiability(ctx, id)
}

func (s *registerService) ListLiabilities(ctx context.Context) ([]dto.LiabilityResponse, error) {
	liabilities, err := s.register.ListLiabilities(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LiabilityResponse, 0, len(liabilities))
	for i := range liabilities {
		out = append(out, *liabilityToResponse(&liabilities[i]))
	}
	return out, nil
}

func (s *registerService) GetSettings(ctx context.Context) (*model.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *registerService) UpdateSettings(ctx context.Context, req dto.SettingsRequest) (*model.Settings, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.StoreName = req.StoreName
	cfg.ChargeUnit = req.ChargeUnit
	cfg.ColdChargePerBag = req.ColdChargePerBag
	cfg.HammaliPerBag = req.HammaliPerBag
	cfg.PricePerQuintal = req.PricePerQuintal
	cfg.StartingLotNumber = req.StartingLotNumber
	if err := s.settings.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func assetToResponse(a *model.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:              a.ID.String(),
		Name:            a.Name,
		Category:        a.Category,
		Cost:            a.Cost,
		UsefulLifeYears: a.UsefulLifeYears,
		AcquiredAt:      a.AcquiredAt.Format(dateLayout),
	}
}

func liabilityToResponse(l *model.Liability) *dto.LiabilityResponse {
	return &dto.LiabilityResponse{
		ID:              l.ID.String(),
		Name:            l.Name,
		Term:            l.Term,
		Principal:       l.Principal,
		InterestRatePct: l.InterestRatePct,
		IncurredAt:      l.IncurredAt.Format(dateLayout),
	}
}
