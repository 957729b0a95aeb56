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

type LotHandler struct{ svc service.LotService }

func NewLotHandler(svc service.LotService) *LotHandler { return &LotHandler{svc: svc} }

// Create godoc
// @Summary Register a new lot entering the store
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateLotRequest true "Lot entry data"
// @Success 201 {object} dto.LotResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/lots [post]
func (h *LotHandler) Create(c *gin.Context) {
	var req dto.CreateLotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateLot(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Get one lot
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {object} dto.LotResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/lots/{id} [get]
func (h *LotHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetLot(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List lots with filters
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param farmer query string false "Farmer name (partial match)"
// @Param chamber query string false "Chamber"
// @Param status query string false "available | sold | all"
// @Success 200 {object} dto.LotListResponse
// @Router /v1/lots [get]
func (h *LotHandler) List(c *gin.Context) {
	var filter dto.LotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	resp, err := h.svc.ListLots(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Edit lot metadata (audited)
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param body body dto.UpdateLotRequest true "New metadata"
// @Success 200 {object} dto.LotResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/lots/{id} [put]
func (h *LotHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateLotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.UpdateLot(c.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleUpForSale godoc
// @Summary Mark or unmark a lot as up for sale
// @Tags lots
// @Accept json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param body body dto.ToggleUpForSaleRequest true "Flag"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/lots/{id}/up-for-sale [put]
func (h *LotHandler) ToggleUpForSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.ToggleUpForSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	if err := h.svc.ToggleUpForSale(c.Request.Context(), id, req.UpForSale); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordSale godoc
// @Summary Sell part of a lot
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param body body dto.RecordSaleRequest true "Sale data"
// @Success 201 {object} dto.SaleResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/lots/{id}/sales [post]
func (h *LotHandler) RecordSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Quantity < 1 {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("quantity must be at least 1"))
		return
	}
	resp, err := h.svc.RecordPartialSale(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Finalize godoc
// @Summary Sell the whole remaining quantity and close the lot
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param body body dto.RecordSaleRequest true "Sale data (quantity ignored)"
// @Success 201 {object} dto.SaleResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/lots/{id}/finalize [post]
func (h *LotHandler) Finalize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.FinalizeSale(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SeasonReset godoc
// @Summary Clear the lot register between seasons
// @Tags lots
// @Security BearerAuth
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/lots/season-reset [post]
func (h *LotHandler) SeasonReset(c *gin.Context) {
	if err := h.svc.SeasonReset(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EditHistory godoc
// @Summary Audit trail of lot metadata edits
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Router /v1/lots/{id}/history [get]
func (h *LotHandler) EditHistory(sales service.SaleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
			return
		}
		edits, err := sales.ListLotEdits(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": edits})
	}
}
