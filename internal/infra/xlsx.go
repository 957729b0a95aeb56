package infra

// xlsx.go — statement workbook export using excelize. The worker writes the
// Balance Sheet and P&L for a financial year into one workbook with a sheet
// per statement.

import (
	"fmt"
	"os"
	"path/filepath"

	"coldstore/internal/dto"

	"github.com/xuri/excelize/v2"
)

// ExportStatements writes both statements to an .xlsx file and returns its path.
func ExportStatements(bs *dto.BalanceSheetReport, pnl *dto.PnLReport, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("xlsx: create storage dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	// ── Balance Sheet ────────────────────────────────────────────────────────
	sheet := "Balance Sheet"
	f.SetSheetName("Sheet1", sheet)
	row := 1
	set := func(sheetName string, r int, values ...interface{}) {
		cell, _ := excelize.CoordinatesToCellName(1, r)
		_ = f.SetSheetRow(sheetName, cell, &values)
	}

	set(sheet, row, "Balance Sheet", bs.FinancialYear)
	row += 2
	set(sheet, row, "Assets")
	row++
	for _, a := range bs.AssetsByCategory {
		set(sheet, row, a.Category, a.Amount.InexactFloat64())
		row++
	}
	set(sheet, row, "Total Assets", bs.TotalAssets.InexactFloat64())
	row += 2
	set(sheet, row, "Long-term Liabilities", bs.LongTermLiabilities.InexactFloat64())
	row++
	set(sheet, row, "Current Liabilities", bs.CurrentLiabilities.InexactFloat64())
	row++
	set(sheet, row, "Owner's Equity", bs.OwnersEquity.InexactFloat64())
	row++
	set(sheet, row, "Total Liabilities & Equity", bs.TotalLiabilitiesAndEquity.InexactFloat64())
	if !bs.IsBalanced {
		row++
		set(sheet, row, "WARNING", bs.Warning)
	}

	// ── Profit & Loss ────────────────────────────────────────────────────────
	pnlSheet := "Profit and Loss"
	if _, err := f.NewSheet(pnlSheet); err != nil {
		return "", fmt.Errorf("xlsx: add sheet: %w", err)
	}
	row = 1
	set(pnlSheet, row, "Profit & Loss", pnl.FinancialYear)
	row += 2
	set(pnlSheet, row, "Storage charges collected", pnl.StorageChargesCollected.InexactFloat64())
	row++
	set(pnlSheet, row, "Merchant extras", pnl.MerchantExtras.InexactFloat64())
	row++
	set(pnlSheet, row, "Other income", pnl.OtherIncome.InexactFloat64())
	row++
	set(pnlSheet, row, "Total income", pnl.TotalIncome.InexactFloat64())
	row += 2
	for _, e := range pnl.ExpensesByType {
		set(pnlSheet, row, e.Category, e.Amount.InexactFloat64())
		row++
	}
	set(pnlSheet, row, "Depreciation", pnl.Depreciation.InexactFloat64())
	row++
	set(pnlSheet, row, "Interest on liabilities", pnl.InterestOnLiabilities.InexactFloat64())
	row++
	set(pnlSheet, row, "Total expenses", pnl.TotalExpenses.InexactFloat64())
	row += 2
	set(pnlSheet, row, "Net profit / loss", pnl.NetProfitOrLoss.InexactFloat64())

	fileName := fmt.Sprintf("statements_%s.xlsx", pnl.FinancialYear)
	filePath := filepath.Join(storagePath, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("xlsx: save workbook: %w", err)
	}
	return filePath, nil
}
