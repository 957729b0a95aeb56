package dto

import "github.com/shopspring/decimal"

type RecordReceiptRequest struct {
	PayerType string          `json:"payer_type" validate:"required,oneof=cold_merchant sales_goods kata others"`
	BuyerName string          `json:"buyer_name"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Mode      string          `json:"mode" validate:"required,oneof=cash account"`
	Narration string          `json:"narration"`
}

type ReceiptAllocationResponse struct {
	SaleID string          `json:"sale_id"`
	Amount decimal.Decimal `json:"amount"`
}

type ReceiptResponse struct {
	ID              string                      `json:"id"`
	TransactionID   string                      `json:"transaction_id"`
	PayerType       string                      `json:"payer_type"`
	BuyerName       string                      `json:"buyer_name,omitempty"`
	Mode            string                      `json:"mode"`
	Amount          decimal.Decimal             `json:"amount"`
	AppliedAmount   decimal.Decimal             `json:"applied_amount"`
	UnappliedAmount decimal.Decimal             `json:"unapplied_amount"`
	Allocations     []ReceiptAllocationResponse `json:"allocations"`
	IsReversed      bool                        `json:"is_reversed"`
	CreatedAt       string                      `json:"created_at"`
}

type RecordExpenseRequest struct {
	ExpenseType string          `json:"expense_type" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Mode        string          `json:"mode" validate:"required,oneof=cash account"`
	Narration   string          `json:"narration"`
}

type RecordCashTransferRequest struct {
	FromAccount string          `json:"from_account" validate:"required,oneof=cash account"`
	ToAccount   string          `json:"to_account"   validate:"required,oneof=cash account,nefield=FromAccount"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Narration   string          `json:"narration"`
}

type TransactionResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	IsReversed    bool            `json:"is_reversed"`
	CreatedAt     string          `json:"created_at"`
}

// ReverseRequest is the uniform reversal entry point.
type ReverseRequest struct {
	EntityType string `json:"entity_type" validate:"required,oneof=exit receipt expense cash_transfer buyer_transfer farmer_transfer discount"`
	EntityID   string `json:"entity_id"   validate:"required,uuid"`
}

// ReverseResponse reports the outcome; Warning carries a no-op notice when an
// already-reversed record is reversed again.
type ReverseResponse struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Reversed   bool   `json:"reversed"`
	Warning    string `json:"warning,omitempty"`
}
