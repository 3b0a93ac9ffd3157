package handlers

import (
	"net/http"
	"time"

	"github.com/financeflow/backend/internal/core/domain"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/financeflow/backend/internal/utils/accounting"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ratesHandler exposes the exchange-rate lookup to the UI.
type ratesHandler struct {
	rateService portssvc.RateLookupSvc
}

// registerRateRoutes registers the rate lookup route.
func registerRateRoutes(rg *gin.RouterGroup, rs portssvc.RateLookupSvc) {
	h := &ratesHandler{rateService: rs}

	rates := rg.Group("/rates")
	{
		rates.GET("/:date", h.getRate)
	}
}

// getRate godoc
// @Summary ARS per USD rate for a date
// @Description Resolves the rate from the public currency CDN; a zero rate means no snapshot was reachable. An optional amount (in USD) is converted to ARS at that rate.
// @Tags rates
// @Produce  json
// @Param   date path string true "ISO date (YYYY-MM-DD)"
// @Param   amount query string false "USD amount to convert"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid date or amount"
// @Router /rates/{date} [get]
func (h *ratesHandler) getRate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(dto.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	rate := h.rateService.GetRate(c.Request.Context(), date)
	payload := gin.H{"date": date, "rate": rate}

	if raw := c.Query("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a decimal number"})
			return
		}
		if converted, ok := accounting.ToSecondary(amount, domain.ReferenceCurrency, rate); ok {
			payload["converted"] = converted
		}
	}
	c.JSON(http.StatusOK, payload)
}
