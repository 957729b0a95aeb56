package dto

import "github.com/shopspring/decimal"

// CategoryAmount is one line of a statement section.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// BalanceSheetReport covers one financial year (April 1 – March 31).
// OwnersEquity is the plug figure totalAssets − totalLiabilities; the report
// is produced even when the balance check fails — Warning says why.
type BalanceSheetReport struct {
	FinancialYear string `json:"financial_year"`

	AssetsByCategory []CategoryAmount `json:"assets_by_category"`
	TotalAssets      decimal.Decimal  `json:"total_assets"`

	LongTermLiabilities decimal.Decimal `json:"long_term_liabilities"`
	CurrentLiabilities  decimal.Decimal `json:"current_liabilities"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`

	OwnersEquity              decimal.Decimal `json:"owners_equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
	IsBalanced                bool            `json:"is_balanced"`
	Warning                   string          `json:"warning,omitempty"`
}

// PnLReport is the Profit & Loss statement for one financial year.
type PnLReport struct {
	FinancialYear string `json:"financial_year"`

	StorageChargesCollected decimal.Decimal `json:"storage_charges_collected"`
	MerchantExtras          decimal.Decimal `json:"merchant_extras"`
	OtherIncome             decimal.Decimal `json:"other_income"`
	TotalIncome             decimal.Decimal `json:"total_income"`

	ExpensesByType        []CategoryAmount `json:"expenses_by_type"`
	Depreciation          decimal.Decimal  `json:"depreciation"`
	InterestOnLiabilities decimal.Decimal  `json:"interest_on_liabilities"`
	TotalExpenses         decimal.Decimal  `json:"total_expenses"`

	NetProfitOrLoss decimal.Decimal `json:"net_profit_or_loss"`
}
