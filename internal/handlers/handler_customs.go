package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/utils/customs"
)

// customsHandler exposes the duty calculator. The calculator is pure and
// persists nothing, so the handler needs no service behind it.
type customsHandler struct{}

// RegisterCustomsRoutes registers the duty estimation route.
func RegisterCustomsRoutes(rg *gin.RouterGroup) {
	h := &customsHandler{}

	rg.POST("/customs/estimate", h.estimateDuties)
}

// estimateDuties godoc
// @Summary Estimate customs duties
// @Description Computes the itemized duty breakdown (DD, RTL, PC, CA, TVA, BFU) for a CIF value without recording anything.
// @Tags customs
// @Accept json
// @Produce json
// @Param estimate body dto.EstimateDutiesRequest true "CIF value and currency"
// @Success 200 {object} dto.Response{data=dto.BreakdownResponse}
// @Failure 400 {object} map[string]any "Validation failure or unknown currency"
// @Security BearerAuth
// @Router /customs/estimate [post]
func (h *customsHandler) estimateDuties(c *gin.Context) {
	if _, ok := identityFrom(c); !ok {
		return
	}

	var req dto.EstimateDutiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	breakdown, err := customs.Compute(req.CIFValue, domain.Currency(req.Currency))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToBreakdownResponse(breakdown))
}
