package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ───────────────────────────────────────────────────────────

// LotFilter is bound from the query string of GET /v1/lots.
type LotFilter struct {
	FarmerName string `form:"farmer"`
	Chamber    string `form:"chamber"`
	SaleStatus string `form:"status"` // available | sold | all
	UpForSale  *bool  `form:"up_for_sale"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type LotResponse struct {
	ID         string `json:"id"`
	LotNumber  int    `json:"lot_number"`
	FarmerName string `json:"farmer_name"`
	Contact    string `json:"contact"`
	Village    string `json:"village"`
	Tehsil     string `json:"tehsil"`
	District   string `json:"district"`
	State      string `json:"state"`
	Chamber    string `json:"chamber"`
	Floor      string `json:"floor"`
	Position   string `json:"position"`
	BagType    string `json:"bag_type"`
	Quality    string `json:"quality"`
	PotatoSize string `json:"potato_size"`

	OriginalSize  int              `json:"original_size"`
	RemainingSize int              `json:"remaining_size"`
	NetWeightKg   *decimal.Decimal `json:"net_weight_kg,omitempty"`

	TotalPaidCharge decimal.Decimal `json:"total_paid_charge"`
	TotalDueCharge  decimal.Decimal `json:"total_due_charge"`

	SaleStatus string `json:"sale_status"`
	UpForSale  bool   `json:"up_for_sale"`
	Remarks    string `json:"remarks,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type LotListResponse struct {
	Data  []LotResponse `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateLotRequest struct {
	FarmerName string `json:"farmer_name" validate:"required"`
	Contact    string `json:"contact"`
	Village    string `json:"village"`
	Tehsil     string `json:"tehsil"`
	District   string `json:"district"`
	State      string `json:"state"`

	Chamber  string `json:"chamber" validate:"required"`
	Floor    string `json:"floor"`
	Position string `json:"position"`

	BagType    string `json:"bag_type" validate:"required,oneof=wafer seed ration"`
	Quality    string `json:"quality"`
	PotatoSize string `json:"potato_size"`

	OriginalSize int              `json:"original_size" validate:"required,min=1"`
	NetWeightKg  *decimal.Decimal `json:"net_weight_kg"`

	AdvanceDeduction decimal.Decimal `json:"advance_deduction" validate:"min=0"`
	FreightDeduction decimal.Decimal `json:"freight_deduction" validate:"min=0"`
	OtherDeduction   decimal.Decimal `json:"other_deduction"   validate:"min=0"`

	Remarks string `json:"remarks"`
}

// UpdateLotRequest carries only non-financial fields; every accepted update
// appends a LotEditHistory entry.
type UpdateLotRequest struct {
	FarmerName string `json:"farmer_name" validate:"required"`
	Contact    string `json:"contact"`
	Village    string `json:"village"`
	Tehsil     string `json:"tehsil"`
	District   string `json:"district"`
	State      string `json:"state"`
	Chamber    string `json:"chamber" validate:"required"`
	Floor      string `json:"floor"`
	Position   string `json:"position"`
	Remarks    string `json:"remarks"`
}

type ToggleUpForSaleRequest struct {
	UpForSale bool `json:"up_for_sale"`
}
