package dto

import "github.com/shopspring/decimal"

type BuyerTransferRequest struct {
	FromBuyer string          `json:"from_buyer" validate:"required,nefield=ToBuyer"`
	ToBuyer   string          `json:"to_buyer"   validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Narration string          `json:"narration"`
}

type FarmerTransferRequest struct {
	FarmerName             string          `json:"farmer_name" validate:"required"`
	ToBuyer                string          `json:"to_buyer"    validate:"required"`
	ReceivablesTransferred decimal.Decimal `json:"receivables_transferred"`
	SelfSalesTransferred   decimal.Decimal `json:"self_sales_transferred"`
	TotalAmount            decimal.Decimal `json:"total_amount" validate:"required"`
	Narration              string          `json:"narration"`
}

type TransferResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	TransferGroupID string          `json:"transfer_group_id,omitempty"`
	Kind            string          `json:"kind"`
	FromParty       string          `json:"from_party"`
	ToParty         string          `json:"to_party"`
	Amount          decimal.Decimal `json:"amount"`
	DueBalanceAfter decimal.Decimal `json:"due_balance_after"`
	IsReversed      bool            `json:"is_reversed"`
	CreatedAt       string          `json:"created_at"`
}

type RecordDiscountRequest struct {
	FarmerName  string                      `json:"farmer_name" validate:"required"`
	Amount      decimal.Decimal             `json:"amount" validate:"required"`
	Allocations []DiscountAllocationRequest `json:"allocations" validate:"required,min=1,dive"`
	Narration   string                      `json:"narration"`
}

type DiscountAllocationRequest struct {
	BuyerName string          `json:"buyer_name" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

type DiscountResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	FarmerName    string          `json:"farmer_name"`
	Amount        decimal.Decimal `json:"amount"`
	IsReversed    bool            `json:"is_reversed"`
	CreatedAt     string          `json:"created_at"`
}

// BuyerBalanceResponse is replayed from the ledger on every request — the
// outstanding figure is never served from a cached snapshot.
type BuyerBalanceResponse struct {
	BuyerName      string          `json:"buyer_name"`
	TotalCharged   decimal.Decimal `json:"total_charged"`
	TotalDue       decimal.Decimal `json:"total_due"`
	UnappliedFunds decimal.Decimal `json:"unapplied_funds"`
}
