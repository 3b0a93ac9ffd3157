package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/financeflow/backend/internal/apperrors"
	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/dto"
	"github.com/financeflow/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// savingsHandler handles HTTP requests for savings accounts, movements and
// the derived portfolio figures.
type savingsHandler struct {
	savingsService portssvc.SavingsSvcFacade
}

// newSavingsHandler creates a new savingsHandler.
func newSavingsHandler(ss portssvc.SavingsSvcFacade) *savingsHandler {
	return &savingsHandler{savingsService: ss}
}

// registerSavingsRoutes registers routes related to savings.
func registerSavingsRoutes(rg *gin.RouterGroup, ss portssvc.SavingsSvcFacade) {
	h := newSavingsHandler(ss)

	savings := rg.Group("/savings")
	{
		savings.POST("/accounts", h.createAccount)
		savings.GET("/accounts", h.listAccounts)
		savings.PATCH("/accounts/:id", h.updateAccount)
		savings.DELETE("/accounts/:id", h.deleteAccount)
		savings.POST("/movements", h.addMovement)
		savings.GET("/movements", h.listMovements)
		savings.DELETE("/movements/:id", h.deleteMovement)
		savings.GET("/portfolio", h.portfolio)
		savings.GET("/available", h.available)
	}
}

// createAccount godoc
// @Summary Create a savings account
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /savings/accounts [post]
func (h *savingsHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.savingsService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create savings account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List active savings accounts
// @Tags savings
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /savings/accounts [get]
func (h *savingsHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.savingsService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list savings accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// updateAccount godoc
// @Summary Edit a savings account
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   patch body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Router /savings/accounts/{id} [patch]
func (h *savingsHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.savingsService.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update savings account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Deactivate a savings account
// @Description Soft delete; the movement history stays queryable
// @Tags savings
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Router /savings/accounts/{id} [delete]
func (h *savingsHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	if err := h.savingsService.DeleteAccount(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to delete savings account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// addMovement godoc
// @Summary Record a savings movement
// @Description Writes the movement and its paired ledger transaction atomically
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementCreated
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record movement"
// @Router /savings/movements [post]
func (h *savingsHandler) addMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.savingsService.AddMovement(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record savings movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record movement"})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// listMovements godoc
// @Summary List savings movements
// @Tags savings
// @Produce  json
// @Param   account_id query int false "Filter by account"
// @Param   limit query int false "Cap the result size"
// @Success 200 {array} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Router /savings/movements [get]
func (h *savingsHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var accountID *int64
	if raw := c.Query("account_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "account_id must be an integer"})
			return
		}
		accountID = &parsed
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	movements, err := h.savingsService.ListMovements(c.Request.Context(), accountID, limit)
	if err != nil {
		logger.Error("Failed to list savings movements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponses(movements))
}

// deleteMovement godoc
// @Summary Delete a savings movement
// @Description Removes the movement; the paired ledger transaction stays
// @Tags savings
// @Produce  json
// @Param   id path int true "Movement ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 500 {object} map[string]string "Failed to delete movement"
// @Router /savings/movements/{id} [delete]
func (h *savingsHandler) deleteMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	if err := h.savingsService.DeleteMovement(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else {
			logger.Error("Failed to delete savings movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete movement"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// portfolio godoc
// @Summary Portfolio of account balances
// @Description Active accounts with per-account balances; the total covers USD accounts only
// @Tags savings
// @Produce  json
// @Success 200 {object} domain.Portfolio
// @Failure 500 {object} map[string]string "Failed to compute portfolio"
// @Router /savings/portfolio [get]
func (h *savingsHandler) portfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolio, err := h.savingsService.Portfolio(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute portfolio", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute portfolio"})
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// available godoc
// @Summary Available to save
// @Description Ledger-wide income minus expenses minus the net amount already moved into savings, normalized to USD
// @Tags savings
// @Produce  json
// @Success 200 {object} domain.AvailableReport
// @Failure 500 {object} map[string]string "Failed to compute available balance"
// @Router /savings/available [get]
func (h *savingsHandler) available(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.savingsService.Available(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute available balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute available balance"})
		return
	}
	c.JSON(http.StatusOK, report)
}
