package handler

import (
	"net/http"

	"coldstore/internal/apierror"
	"coldstore/internal/service"
	"coldstore/internal/worker"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc        service.ReportService
	dispatcher *worker.Dispatcher
	emailTo    string
}

func NewReportHandler(svc service.ReportService, dispatcher *worker.Dispatcher, emailTo string) *ReportHandler {
	return &ReportHandler{svc: svc, dispatcher: dispatcher, emailTo: emailTo}
}

// BalanceSheet godoc
// @Summary Balance sheet for a financial year
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param fy query string true "Financial year, e.g. 2024-25"
// @Success 200 {object} dto.BalanceSheetReport
// @Failure 422 {object} apierror.APIError
// @Router /v1/reports/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	fy := c.Query("fy")
	resp, err := h.svc.BalanceSheet(c.Request.Context(), fy)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProfitAndLoss godoc
// @Summary Profit & loss statement for a financial year
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param fy query string true "Financial year, e.g. 2024-25"
// @Success 200 {object} dto.PnLReport
// @Failure 422 {object} apierror.APIError
// @Router /v1/reports/profit-loss [get]
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	fy := c.Query("fy")
	resp, err := h.svc.ProfitAndLoss(c.Request.Context(), fy)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary Queue an XLSX export of both statements
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param fy query string true "Financial year, e.g. 2024-25"
// @Success 202
// @Router /v1/reports/export [post]
func (h *ReportHandler) Export(c *gin.Context) {
	fy := c.Query("fy")
	if _, _, err := service.ParseFinancialYear(fy); err != nil {
		respondErr(c, err)
		return
	}
	err := h.dispatcher.EnqueueExport(c.Request.Context(), worker.ExportJobPayload{
		FinancialYear: fy,
		EmailTo:       h.emailTo,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not queue export"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true, "financial_year": fy})
}
