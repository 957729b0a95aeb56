package dto

import "github.com/shopspring/decimal"

type AssetRequest struct {
	Name            string          `json:"name" validate:"required"`
	Category        string          `json:"category" validate:"required"`
	Cost            decimal.Decimal `json:"cost" validate:"required"`
	UsefulLifeYears int             `json:"useful_life_years" validate:"required,min=1"`
	AcquiredAt      string          `json:"acquired_at" validate:"required"` // YYYY-MM-DD
}

type AssetResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Cost            decimal.Decimal `json:"cost"`
	UsefulLifeYears int             `json:"useful_life_years"`
	AcquiredAt      string          `json:"acquired_at"`
}

type LiabilityRequest struct {
	Name            string          `json:"name" validate:"required"`
	Term            string          `json:"term" validate:"required,oneof=long_term current"`
	Principal       decimal.Decimal `json:"principal" validate:"required"`
	InterestRatePct decimal.Decimal `json:"interest_rate_pct" validate:"min=0"`
	IncurredAt      string          `json:"incurred_at" validate:"required"` // YYYY-MM-DD
}

type LiabilityResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Term            string          `json:"term"`
	Principal       decimal.Decimal `json:"principal"`
	InterestRatePct decimal.Decimal `json:"interest_rate_pct"`
	IncurredAt      string          `json:"incurred_at"`
}

type SettingsRequest struct {
	StoreName         string          `json:"store_name" validate:"required"`
	ChargeUnit        string          `json:"charge_unit" validate:"required,oneof=per_bag per_quintal"`
	ColdChargePerBag  decimal.Decimal `json:"cold_charge_per_bag" validate:"min=0"`
	HammaliPerBag     decimal.Decimal `json:"hammali_per_bag" validate:"min=0"`
	PricePerQuintal   decimal.Decimal `json:"price_per_quintal" validate:"min=0"`
	StartingLotNumber int             `json:"starting_lot_number" validate:"min=1"`
}
