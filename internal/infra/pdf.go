package infra

// pdf.go — gate-pass generation using go-pdf/fpdf. Every physical exit gets an
// A6 gate pass carrying the bill number, lot, farmer/buyer and bag count; the
// gate keeper matches it against the truck at the barrier.

import (
	"fmt"
	"os"
	"path/filepath"

	"coldstore/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateGatePass writes the PDF for an exit and returns its path.
func GenerateGatePass(storeName string, sale *model.Sale, exit *model.ExitHistory, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("gatepass_%s.pdf", exit.BillNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(6, 6, 6)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 12

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Gate Pass", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Bill No: "+exit.BillNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, exit.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(6, pdf.GetY(), pageW-6, pdf.GetY())
	pdf.Ln(2)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW*0.4, 5, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW*0.6, 5, value, "", 1, "L", false, 0, "")
	}

	row("Lot No", fmt.Sprintf("%d", sale.LotNumber))
	row("Farmer", sale.FarmerName)
	if sale.BuyerName != "" {
		row("Buyer", sale.BuyerName)
	}
	row("Chamber", sale.Chamber)
	row("Bags out", fmt.Sprintf("%d", exit.BagsExited))
	row("Bag type", sale.BagType)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Signature: ______________________", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write gate pass: %w", err)
	}
	return filePath, nil
}
