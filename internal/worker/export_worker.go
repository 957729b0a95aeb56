package worker

// export_worker.go
// Builds the Balance Sheet and P&L workbook for a financial year and hands the
// file to the email queue when a recipient is configured.

import (
	"context"
	"encoding/json"
	"fmt"

	"coldstore/internal/infra"
	"coldstore/internal/service"

	"github.com/rs/zerolog/log"
)

// ExportJobPayload requests a statement export for one financial year.
type ExportJobPayload struct {
	FinancialYear string `json:"financial_year"`
	EmailTo       string `json:"email_to,omitempty"`
}

type ExportWorker struct {
	reports     service.ReportService
	dispatcher  *Dispatcher
	storagePath string
}

func NewExportWorker(reports service.ReportService, dispatcher *Dispatcher, storagePath string) *ExportWorker {
	return &ExportWorker{reports: reports, dispatcher: dispatcher, storagePath: storagePath}
}

func (w *ExportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ExportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("export_worker: invalid payload: %w", err)
	}

	bs, err := w.reports.BalanceSheet(ctx, payload.FinancialYear)
	if err != nil {
		return fmt.Errorf("export_worker: balance sheet: %w", err)
	}
	pnl, err := w.reports.ProfitAndLoss(ctx, payload.FinancialYear)
	if err != nil {
		return fmt.Errorf("export_worker: profit and loss: %w", err)
	}

	path, err := infra.ExportStatements(bs, pnl, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Str("fy", payload.FinancialYear).Msg("export_worker: workbook written")

	if payload.EmailTo == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail:        payload.EmailTo,
		Subject:        fmt.Sprintf("Financial statements %s", payload.FinancialYear),
		Body:           fmt.Sprintf("Attached: balance sheet and profit & loss for %s.", payload.FinancialYear),
		AttachmentPath: path,
	})
}
