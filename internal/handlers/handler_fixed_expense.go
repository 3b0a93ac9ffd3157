package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/financeflow/backend/internal/apperrors"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/core/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/financeflow/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fixedExpenseHandler handles HTTP requests for recurring monthly expenses
// and their month-to-month replication.
type fixedExpenseHandler struct {
	transactionService portssvc.TransactionSvcFacade
	replicatorService  portssvc.ReplicatorSvcFacade
}

// newFixedExpenseHandler creates a new fixedExpenseHandler.
func newFixedExpenseHandler(ts portssvc.TransactionSvcFacade, rs portssvc.ReplicatorSvcFacade) *fixedExpenseHandler {
	return &fixedExpenseHandler{
		transactionService: ts,
		replicatorService:  rs,
	}
}

// registerFixedExpenseRoutes registers routes related to fixed expenses.
func registerFixedExpenseRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, rs portssvc.ReplicatorSvcFacade) {
	h := newFixedExpenseHandler(ts, rs)

	fixed := rg.Group("/fixed-expenses")
	{
		fixed.GET("/month/:year/:month", h.listByMonth)
		fixed.PATCH("/:id", h.update)
		fixed.POST("/replicate", h.replicate)
	}
}

// listByMonth godoc
// @Summary List fixed expenses of one month
// @Tags fixed-expenses
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list fixed expenses"
// @Router /fixed-expenses/month/{year}/{month} [get]
func (h *fixedExpenseHandler) listByMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}

	txns, err := h.transactionService.ListFixedExpenses(c.Request.Context(), year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list fixed expenses", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fixed expenses"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// update godoc
// @Summary Edit a fixed expense
// @Description Applies a partial edit; only FIXED_EXPENSE rows can be edited
// @Tags fixed-expenses
// @Accept  json
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Param   patch body dto.UpdateFixedExpenseRequest true "Fields to change"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Fixed expense not found"
// @Failure 500 {object} map[string]string "Failed to update fixed expense"
// @Router /fixed-expenses/{id} [patch]
func (h *fixedExpenseHandler) update(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var req dto.UpdateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFixedExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.transactionService.UpdateFixedExpense(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Fixed expense not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update fixed expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fixed expense"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// replicate godoc
// @Summary Replicate the previous month's fixed expenses
// @Description Copies fixed expenses missing from the target month, dated its 1st; already existing descriptions are skipped
// @Tags fixed-expenses
// @Accept  json
// @Produce  json
// @Param   request body dto.ReplicateRequest true "Target month and fallback rate"
// @Success 200 {object} dto.ReplicationResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Nothing to replicate"
// @Failure 500 {object} map[string]string "Failed to replicate"
// @Router /fixed-expenses/replicate [post]
func (h *fixedExpenseHandler) replicate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Replicate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.replicatorService.Replicate(c.Request.Context(), req.Year, req.Month, req.ExchangeRate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSourceData):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to replicate fixed expenses", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replicate fixed expenses"})
		}
		return
	}

	logger.Info("Fixed expenses replicated",
		slog.Int("created", result.Created), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}
