package handler

import (
	"net/http"

	"coldstore/internal/dto"
	"coldstore/internal/service"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct{ svc service.TransferService }

func NewTransferHandler(svc service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// BuyerToBuyer godoc
// @Summary Move an outstanding due from one buyer to another
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BuyerTransferRequest true "Transfer data"
// @Success 201 {object} dto.TransferResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/transfers/buyer [post]
func (h *TransferHandler) BuyerToBuyer(c *gin.Context) {
	var req dto.BuyerTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.BuyerToBuyer(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// FarmerToBuyer godoc
// @Summary Move a farmer's receivable and self-sale debt onto a buyer
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FarmerTransferRequest true "Transfer data"
// @Success 201 {object} dto.TransferResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/transfers/farmer [post]
func (h *TransferHandler) FarmerToBuyer(c *gin.Context) {
	var req dto.FarmerTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.FarmerToBuyer(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordDiscount godoc
// @Summary Waive part of a farmer's dues across buyers
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecordDiscountRequest true "Discount data"
// @Success 201 {object} dto.DiscountResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/discounts [post]
func (h *TransferHandler) RecordDiscount(c *gin.Context) {
	var req dto.RecordDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordDiscount(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
