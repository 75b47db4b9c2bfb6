package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itimpact/spendx/internal/models"
	"github.com/itimpact/spendx/internal/services"
)

type InvestmentHandler struct {
	recorder services.InvestmentRecorderer
}

func NewInvestmentHandler(recorder services.InvestmentRecorderer) *InvestmentHandler {
	return &InvestmentHandler{recorder: recorder}
}

// CreateInvestment handles POST /investment
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req models.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.recorder.Submit(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
