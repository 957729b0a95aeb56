package handler

import (
	"net/http"

	"coldstore/internal/apierror"
	"coldstore/internal/dto"
	"coldstore/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc       service.PaymentService
	reversals service.ReversalService
}

func NewPaymentHandler(svc service.PaymentService, reversals service.ReversalService) *PaymentHandler {
	return &PaymentHandler{svc: svc, reversals: reversals}
}

// RecordReceipt godoc
// @Summary Record an inbound payment, allocated FIFO against open dues
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecordReceiptRequest true "Receipt data"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/payments/receipts [post]
func (h *PaymentHandler) RecordReceipt(c *gin.Context) {
	var req dto.RecordReceiptRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordReceipt(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordExpense godoc
// @Summary Record an outbound expense
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecordExpenseRequest true "Expense data"
// @Success 201 {object} dto.TransactionResponse
// @Router /v1/payments/expenses [post]
func (h *PaymentHandler) RecordExpense(c *gin.Context) {
	var req dto.RecordExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordExpense(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordCashTransfer godoc
// @Summary Move money between the cash drawer and the bank account
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecordCashTransferRequest true "Transfer data"
// @Success 201 {object} dto.TransactionResponse
// @Router /v1/payments/cash-transfers [post]
func (h *PaymentHandler) RecordCashTransfer(c *gin.Context) {
	var req dto.RecordCashTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordCashTransfer(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// BuyerBalance godoc
// @Summary Outstanding balance for a buyer, replayed from the ledger
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param name path string true "Buyer name"
// @Success 200 {object} dto.BuyerBalanceResponse
// @Router /v1/buyers/{name}/balance [get]
func (h *PaymentHandler) BuyerBalance(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, apierror.New("buyer name required"))
		return
	}
	resp, err := h.svc.BuyerBalance(c.Request.Context(), name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reverse godoc
// @Summary Reverse a financial event by compensation
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ReverseRequest true "What to reverse"
// @Success 200 {object} dto.ReverseResponse
// @Failure 409 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/reversals [post]
func (h *PaymentHandler) Reverse(c *gin.Context) {
	var req dto.ReverseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reversals.Reverse(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
