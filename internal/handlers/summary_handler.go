package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itimpact/spendx/internal/services"
)

type SummaryHandler struct {
	investments services.InvestmentSummaryServicer
	users       services.UserSummaryServicer
}

func NewSummaryHandler(investments services.InvestmentSummaryServicer, users services.UserSummaryServicer) *SummaryHandler {
	return &SummaryHandler{investments: investments, users: users}
}

// GetInvestmentSummary handles GET /investment?userId=
func (h *SummaryHandler) GetInvestmentSummary(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.investments.GetInvestmentSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetUserSummary handles GET /summary?userId=
func (h *SummaryHandler) GetUserSummary(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.users.GetUserSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
