package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/financeflow/backend/internal/apperrors"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/financeflow/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to the ledger and its
// summaries.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	reportingService   portssvc.ReportingSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, rs portssvc.ReportingSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		reportingService:   rs,
	}
}

// registerTransactionRoutes registers routes related to ledger entries.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newTransactionHandler(ts, rs)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.DELETE("/:id", h.deleteTransaction)
		transactions.GET("/summary", h.summaryByType)
		transactions.GET("/summary-usd", h.summaryByTypeUSD)
		transactions.GET("/expenses-by-category", h.expensesByCategory)
		transactions.GET("/expenses-by-category-usd", h.expensesByCategoryUSD)
	}
}

// yearMonthQuery reads the year/month query pair; year defaults to the
// current year, month defaults to "all".
func yearMonthQuery(c *gin.Context) (int, string, error) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, "", errors.New("year must be an integer")
		}
		year = parsed
	}
	month := c.DefaultQuery("month", "all")
	return year, month, nil
}

// createTransaction godoc
// @Summary Create a ledger entry
// @Description Records an income or expense in the ledger
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(created))
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Retrieves ledger entries for a year, optionally narrowed to a month and category
// @Tags transactions
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Param   month query string false "Two-digit month or 'all'"
// @Param   category query string false "Category filter"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, err := yearMonthQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := c.Query("category")

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), year, month, category)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// deleteTransaction godoc
// @Summary Delete a ledger entry
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to delete transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// summaryByType godoc
// @Summary Summary of raw amounts per transaction type
// @Description Sums raw mixed-currency amounts per type and adds the INSTALLMENTS projection of active plans
// @Tags transactions
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Param   month query string false "Two-digit month or 'all'"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Router /transactions/summary [get]
func (h *transactionHandler) summaryByType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, err := yearMonthQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.reportingService.SummaryByType(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to compute type summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// summaryByTypeUSD godoc
// @Summary Summary per transaction type normalized to USD
// @Tags transactions
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Param   month query string false "Two-digit month or 'all'"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Router /transactions/summary-usd [get]
func (h *transactionHandler) summaryByTypeUSD(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, err := yearMonthQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.reportingService.SummaryByTypeReference(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to compute normalized type summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// expensesByCategory godoc
// @Summary Raw expense totals per category
// @Tags transactions
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Param   month query string false "Two-digit month or 'all'"
// @Success 200 {array} domain.CategoryTotal
// @Failure 500 {object} map[string]string "Failed to compute category totals"
// @Router /transactions/expenses-by-category [get]
func (h *transactionHandler) expensesByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, err := yearMonthQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totals, err := h.reportingService.ExpensesByCategory(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to compute category totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute category totals"})
		return
	}
	c.JSON(http.StatusOK, totals)
}

// expensesByCategoryUSD godoc
// @Summary Expense totals per category normalized to USD
// @Tags transactions
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Param   month query string false "Two-digit month or 'all'"
// @Success 200 {array} domain.CategoryTotal
// @Failure 500 {object} map[string]string "Failed to compute category totals"
// @Router /transactions/expenses-by-category-usd [get]
func (h *transactionHandler) expensesByCategoryUSD(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month, err := yearMonthQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totals, err := h.reportingService.ExpensesByCategoryReference(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to compute normalized category totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute category totals"})
		return
	}
	c.JSON(http.StatusOK, totals)
}
