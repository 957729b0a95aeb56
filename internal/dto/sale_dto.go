package dto

import "github.com/shopspring/decimal"

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	LotID         string `form:"lot_id"`
	BuyerName     string `form:"buyer"`
	FarmerName    string `form:"farmer"`
	PaymentStatus string `form:"payment_status"` // paid | due | partial | all
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// RecordSaleRequest covers both partial sales and finalization: the handler
// for POST /v1/lots/:id/sales passes Quantity, the finalize endpoint sells
// whatever remains.
type RecordSaleRequest struct {
	Quantity int `json:"quantity" validate:"omitempty,min=1"`

	PricePerBag     *decimal.Decimal `json:"price_per_bag"`
	ColdCharge      *decimal.Decimal `json:"cold_charge"`
	Hammali         *decimal.Decimal `json:"hammali"`
	PricePerQuintal *decimal.Decimal `json:"price_per_quintal"`

	PaymentStatus string           `json:"payment_status" validate:"required,oneof=paid due partial"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
	DueAmount     *decimal.Decimal `json:"due_amount"`

	BuyerName string `json:"buyer_name"`

	ExtraHammaliDue decimal.Decimal `json:"extra_hammali_due" validate:"min=0"`
	ExtraGradingDue decimal.Decimal `json:"extra_grading_due" validate:"min=0"`
	ExtraOtherDue   decimal.Decimal `json:"extra_other_due"   validate:"min=0"`
}

// CorrectSaleRequest adjusts payment metadata on an existing sale; the change
// is audited through SaleEditHistory.
type CorrectSaleRequest struct {
	PaymentStatus string           `json:"payment_status" validate:"required,oneof=paid due partial"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
	DueAmount     *decimal.Decimal `json:"due_amount"`
	BuyerName     *string          `json:"buyer_name"`
}

type SaleResponse struct {
	ID         string `json:"id"`
	LotID      string `json:"lot_id,omitempty"`
	LotNumber  int    `json:"lot_number"`
	FarmerName string `json:"farmer_name"`
	BuyerName  string `json:"buyer_name,omitempty"`

	SaleType     string `json:"sale_type"`
	QuantitySold int    `json:"quantity_sold"`

	ColdCharge        decimal.Decimal `json:"cold_charge"`
	Hammali           decimal.Decimal `json:"hammali"`
	ColdStorageCharge decimal.Decimal `json:"cold_storage_charge"`
	EntryDeduction    decimal.Decimal `json:"entry_deduction"`

	PaymentStatus   string          `json:"payment_status"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	DueAmount       decimal.Decimal `json:"due_amount"`
	TransferredOut  decimal.Decimal `json:"transferred_out"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`

	IsAdjustment bool   `json:"is_adjustment,omitempty"`
	BagsExited   int    `json:"bags_exited"`
	SoldAt       string `json:"sold_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Exits ───────────────────────────────────────────────────────────────────

type RecordExitRequest struct {
	BagsExited int `json:"bags_exited" validate:"required,min=1"`
}

type ExitResponse struct {
	ID         string `json:"id"`
	SaleID     string `json:"sale_id"`
	BillNumber string `json:"bill_number"`
	BagsExited int    `json:"bags_exited"`
	IsReversed bool   `json:"is_reversed"`
	CreatedAt  string `json:"created_at"`
	// GatePassPath is the generated PDF, when enabled.
	GatePassPath string `json:"gate_pass_path,omitempty"`
}
