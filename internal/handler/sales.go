package handler

import (
	"net/http"

	"coldstore/internal/apierror"
	"coldstore/internal/dto"
	"coldstore/internal/middleware"
	"coldstore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct {
	svc       service.SaleService
	exits     service.ExitService
	reversals service.ReversalService
}

func NewSaleHandler(svc service.SaleService, exits service.ExitService, reversals service.ReversalService) *SaleHandler {
	return &SaleHandler{svc: svc, exits: exits, reversals: reversals}
}

// Get godoc
// @Summary Get one sale
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List sales with filters
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param buyer query string false "Buyer name"
// @Param farmer query string false "Farmer name"
// @Param payment_status query string false "paid | due | partial | all"
// @Success 200 {object} dto.SaleListResponse
// @Router /v1/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Correct godoc
// @Summary Correct payment metadata on a sale (audited)
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Param body body dto.CorrectSaleRequest true "Corrected payment fields"
// @Success 200 {object} dto.SaleResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/sales/{id} [put]
func (h *SaleHandler) Correct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.CorrectSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CorrectSale(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordExit godoc
// @Summary Record bags physically leaving against a sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Param body body dto.RecordExitRequest true "Bags exiting"
// @Success 201 {object} dto.ExitResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/sales/{id}/exits [post]
func (h *SaleHandler) RecordExit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.RecordExitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.exits.RecordExit(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ReverseLatestExit godoc
// @Summary Reverse the most recent active exit on a sale
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} dto.ReverseResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/sales/{id}/exits/reverse-latest [post]
func (h *SaleHandler) ReverseLatestExit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.reversals.ReverseLatestExit(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListExits godoc
// @Summary Exit history for a sale
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Router /v1/sales/{id}/exits [get]
func (h *SaleHandler) ListExits(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	exits, err := h.exits.ListExits(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": exits})
}

// EditHistory godoc
// @Summary Audit trail of payment corrections on a sale
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Router /v1/sales/{id}/history [get]
func (h *SaleHandler) EditHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	edits, err := h.svc.ListSaleEdits(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": edits})
}
