package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"coldstore/internal/domainerr"
	"coldstore/internal/dto"
	"coldstore/internal/model"
	"coldstore/internal/repository"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type ReportService interface {
	// BalanceSheet is produced for a financial year like "2024-25". Equity is
	// the plug figure assets minus liabilities; when the sheet fails to balance
	// the report still ships, with a warning attached.
	BalanceSheet(ctx context.Context, financialYear string) (*dto.BalanceSheetReport, error)
	ProfitAndLoss(ctx context.Context, financialYear string) (*dto.PnLReport, error)
}

type reportService struct {
	sales    repository.SaleRepository
	receipts repository.ReceiptRepository
	money    repository.MoneyRepository
	register repository.RegisterRepository
}

func NewReportService(
	sales repository.SaleRepository,
	receipts repository.ReceiptRepository,
	money repository.MoneyRepository,
	register repository.RegisterRepository,
) ReportService {
	return &reportService{sales: sales, receipts: receipts, money: money, register: register}
}

// ParseFinancialYear turns "2024-25" into the [Apr 1 2024, Apr 1 2025) window.
func ParseFinancialYear(fy string) (time.Time, time.Time, error) {
	parts := strings.Split(fy, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return time.Time{}, time.Time{}, domainerr.Validation("financial_year", "expected format YYYY-YY, e.g. 2024-25")
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, domainerr.Validation("financial_year", "expected format YYYY-YY, e.g. 2024-25")
	}
	endShort, err := strconv.Atoi(parts[1])
	if err != nil || (start+1)%100 != endShort {
		return time.Time{}, time.Time{}, domainerr.Validationf("financial_year", "%q is not a consecutive year pair", fy)
	}
	from := time.Date(start, time.April, 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(1, 0, 0), nil
}

func (s *reportService) BalanceSheet(ctx context.Context, financialYear string) (*dto.BalanceSheetReport, error) {
	_, fyEnd, err := ParseFinancialYear(financialYear)
	if err != nil {
		return nil, err
	}

	assets, err := s.register.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.register.ListLiabilities(ctx)
	if err != nil {
		return nil, err
	}
	receivables, err := s.sales.SumDueAll(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]decimal.Decimal{}
	totalAssets := decimal.Zero
	for i := range assets {
		book := bookValue(&assets[i], fyEnd)
		byCategory[assets[i].Category] = byCategory[assets[i].Category].Add(book)
		totalAssets = totalAssets.Add(book)
	}
	if receivables.IsPositive() {
		byCategory["receivables"] = byCategory["receivables"].Add(receivables)
		totalAssets = totalAssets.Add(receivables)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	lines := make([]dto.CategoryAmount, 0, len(categories))
	for _, c := range categories {
		lines = append(lines, dto.CategoryAmount{Category: c, Amount: byCategory[c]})
	}

	longTerm, current := decimal.Zero, decimal.Zero
	for i := range liabilities {
		if liabilities[i].Term == model.LiabilityLongTerm {
			longTerm = longTerm.Add(liabilities[i].Principal)
		} else {
			current = current.Add(liabilities[i].Principal)
		}
	}
	totalLiabilities := longTerm.Add(current)

	equity := totalAssets.Sub(totalLiabilities)
	report := &dto.BalanceSheetReport{
		FinancialYear:             financialYear,
		AssetsByCategory:          lines,
		TotalAssets:               totalAssets,
		LongTermLiabilities:       longTerm,
		CurrentLiabilities:        current,
		TotalLiabilities:          totalLiabilities,
		OwnersEquity:              equity,
		TotalLiabilitiesAndEquity: totalLiabilities.Add(equity),
		IsBalanced:                totalLiabilities.Add(equity).Equal(totalAssets),
	}
	if !report.IsBalanced {
		report.Warning = fmt.Sprintf("assets %s do not match liabilities and equity %s",
			totalAssets.String(), report.TotalLiabilitiesAndEquity.String())
	}
	return report, nil
}

func (s *reportService) ProfitAndLoss(ctx context.Context, financialYear string) (*dto.PnLReport, error) {
	from, to, err := ParseFinancialYear(financialYear)
	if err != nil {
		return nil, err
	}

	collected, err := s.sales.SumPaidBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	extras, err := s.sales.SumExtrasBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	otherIncome, err := s.receipts.SumOtherIncomeBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenseSums, err := s.money.SumExpensesByTypeBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	assets, err := s.register.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.register.ListLiabilities(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(expenseSums, func(i, j int) bool {
		return expenseSums[i].ExpenseType < expenseSums[j].ExpenseType
	})
	expenseLines := make([]dto.CategoryAmount, 0, len(expenseSums))
	operating := decimal.Zero
	for _, e := range expenseSums {
		expenseLines = append(expenseLines, dto.CategoryAmount{Category: e.ExpenseType, Amount: e.Total})
		operating = operating.Add(e.Total)
	}

	depreciation := decimal.Zero
	for i := range assets {
		depreciation = depreciation.Add(annualDepreciation(&assets[i], from, to))
	}

	interest := decimal.Zero
	for i := range liabilities {
		yearly := liabilities[i].Principal.Mul(liabilities[i].InterestRatePct).Div(hundred)
		interest = interest.Add(yearly.Round(2))
	}

	totalIncome := collected.Add(extras).Add(otherIncome)
	totalExpenses := operating.Add(depreciation).Add(interest)

	return &dto.PnLReport{
		FinancialYear:           financialYear,
		StorageChargesCollected: collected,
		MerchantExtras:          extras,
		OtherIncome:             otherIncome,
		TotalIncome:             totalIncome,
		ExpensesByType:          expenseLines,
		Depreciation:            depreciation,
		InterestOnLiabilities:   interest,
		TotalExpenses:           totalExpenses,
		NetProfitOrLoss:         totalIncome.Sub(totalExpenses),
	}, nil
}

// bookValue is cost minus straight-line depreciation accumulated up to asOf.
func bookValue(a *model.Asset, asOf time.Time) decimal.Decimal {
	if a.UsefulLifeYears <= 0 || !a.AcquiredAt.Before(asOf) {
		return a.Cost
	}
	yearsHeld := int(asOf.Sub(a.AcquiredAt).Hours() / (24 * 365))
	if yearsHeld >= a.UsefulLifeYears {
		return decimal.Zero
	}
	annual := a.Cost.Div(decimal.NewFromInt(int64(a.UsefulLifeYears)))
	return a.Cost.Sub(annual.Mul(decimal.NewFromInt(int64(yearsHeld)))).Round(2)
}

// annualDepreciation is one straight-line year of depreciation, charged while
// the asset is held within its useful life during the window.
func annualDepreciation(a *model.Asset, from, to time.Time) decimal.Decimal {
	if a.UsefulLifeYears <= 0 || !a.AcquiredAt.Before(to) {
		return decimal.Zero
	}
	fullyDepreciatedAt := a.AcquiredAt.AddDate(a.UsefulLifeYears, 0, 0)
	if !fullyDepreciatedAt.After(from) {
		return decimal.Zero
	}
	return a.Cost.Div(decimal.NewFromInt(int64(a.UsefulLifeYears))).Round(2)
}
