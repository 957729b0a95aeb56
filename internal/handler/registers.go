package handler

import (
	"net/http"

	"coldstore/internal/apierror"
	"coldstore/internal/dto"
	"coldstore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterHandler serves the asset and liability registers and store settings.
type RegisterHandler struct{ svc service.RegisterService }

func NewRegisterHandler(svc service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// ── Assets ────────────────────────────────────────────────────────────────────

func (h *RegisterHandler) CreateAsset(c *gin.Context) {
	var req dto.AssetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateAsset(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RegisterHandler) UpdateAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AssetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateAsset(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RegisterHandler) DeleteAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.DeleteAsset(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RegisterHandler) ListAssets(c *gin.Context) {
	resp, err := h.svc.ListAssets(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Liabilities ───────────────────────────────────────────────────────────────

func (h *RegisterHandler) CreateLiability(c *gin.Context) {
	var req dto.LiabilityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateLiability(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RegisterHandler) UpdateLiability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.LiabilityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateLiability(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RegisterHandler) DeleteLiability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.DeleteLiability(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RegisterHandler) ListLiabilities(c *gin.Context) {
	resp, err := h.svc.ListLiabilities(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Settings ──────────────────────────────────────────────────────────────────

func (h *RegisterHandler) GetSettings(c *gin.Context) {
	resp, err := h.svc.GetSettings(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RegisterHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
