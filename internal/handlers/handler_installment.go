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

// installmentHandler handles HTTP requests for installment plans and their
// payment journal.
type installmentHandler struct {
	installmentService portssvc.InstallmentSvcFacade
}

// newInstallmentHandler creates a new installmentHandler.
func newInstallmentHandler(is portssvc.InstallmentSvcFacade) *installmentHandler {
	return &installmentHandler{installmentService: is}
}

// registerInstallmentRoutes registers routes related to installment plans.
func registerInstallmentRoutes(rg *gin.RouterGroup, is portssvc.InstallmentSvcFacade) {
	h := newInstallmentHandler(is)

	installments := rg.Group("/installments")
	{
		installments.POST("", h.create)
		installments.GET("", h.list)
		installments.DELETE("/:id", h.delete)
		installments.POST("/:id/pay", h.markPaid)
		installments.PATCH("/:id/paid", h.updatePaidCount)
		installments.PATCH("/:id/toggle", h.toggleActive)
		installments.GET("/:id/payments", h.listPayments)
		installments.GET("/:id/next-number", h.nextUnpaidNumber)
	}
}

// planID reads and validates the :id path parameter.
func planID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

// create godoc
// @Summary Create an installment plan
// @Tags installments
// @Accept  json
// @Produce  json
// @Param   plan body dto.CreateInstallmentRequest true "Plan details"
// @Success 201 {object} dto.InstallmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create installment"
// @Router /installments [post]
func (h *installmentHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInstallment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.installmentService.CreateInstallment(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create installment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create installment"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToInstallmentResponse(plan))
}

// list godoc
// @Summary List installment plans
// @Tags installments
// @Produce  json
// @Param   active query bool false "Only active plans"
// @Success 200 {array} dto.InstallmentResponse
// @Failure 500 {object} map[string]string "Failed to list installments"
// @Router /installments [get]
func (h *installmentHandler) list(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly := c.Query("active") == "true"

	plans, err := h.installmentService.ListInstallments(c.Request.Context(), activeOnly)
	if err != nil {
		logger.Error("Failed to list installments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list installments"})
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponses(plans))
}

// delete godoc
// @Summary Delete an installment plan
// @Description Removes the plan and its payment journal; ledger transactions of past payments stay
// @Tags installments
// @Produce  json
// @Param   id path int true "Plan ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 500 {object} map[string]string "Failed to delete installment"
// @Router /installments/{id} [delete]
func (h *installmentHandler) delete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := planID(c)
	if !ok {
		return
	}

	if err := h.installmentService.DeleteInstallment(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		} else {
			logger.Error("Failed to delete installment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete installment"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// markPaid godoc
// @Summary Pay one installment
// @Description Records an at-most-once payment: the ledger entry, the journal row and the recomputed plan counters are written atomically
// @Tags installments
// @Accept  json
// @Produce  json
// @Param   id path int true "Plan ID"
// @Param   payment body dto.MarkPaidRequest true "Payment details"
// @Success 200 {object} dto.MarkPaidResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 409 {object} map[string]string "Installment number already paid"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Router /installments/{id}/pay [post]
func (h *installmentHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := planID(c)
	if !ok {
		return
	}

	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkPaid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.installmentService.MarkPaid(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		case errors.Is(err, services.ErrDuplicatePayment):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidInstallmentNumber), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record installment payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Installment payment recorded",
		slog.Int64("installment_id", id),
		slog.Int("payment_number", result.PaymentNumber),
		slog.Bool("is_complete", result.IsComplete),
	)
	c.JSON(http.StatusOK, result)
}

// updatePaidCount godoc
// @Summary Override the paid count
// @Description Manual correction that bypasses the payment journal
// @Tags installments
// @Accept  json
// @Produce  json
// @Param   id path int true "Plan ID"
// @Param   request body dto.UpdatePaidCountRequest true "New paid count"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 500 {object} map[string]string "Failed to update paid count"
// @Router /installments/{id}/paid [patch]
func (h *installmentHandler) updatePaidCount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := planID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaidCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePaidCount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.installmentService.UpdatePaidCount(c.Request.Context(), id, *req.InstallmentsPaid)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update paid count", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update paid count"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(plan))
}

// toggleActive godoc
// @Summary Toggle a plan's active flag
// @Tags installments
// @Produce  json
// @Param   id path int true "Plan ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 500 {object} map[string]string "Failed to toggle installment"
// @Router /installments/{id}/toggle [patch]
func (h *installmentHandler) toggleActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := planID(c)
	if !ok {
		return
	}

	plan, err := h.installmentService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		} else {
			logger.Error("Failed to toggle installment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle installment"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(plan))
}

// listPayments godoc
// @Summary List the payment journal of a plan
// @Tags installments
// @Produce  json
// @Param   id path int true "Plan ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Router /installments/{id}/payments [get]
func (h *installmentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := planID(c)
	if !ok {
		return
	}

	payments, err := h.installmentService.ListPayments(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		} else {
			logger.Error("Failed to list payments", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// nextUnpaidNumber godoc
// @Summary Next unpaid installment number
// @Description Scans the journal for the first unpaid number; 0 means the plan is fully paid
// @Tags installments
// @Produce  json
// @Param   id path int true "Plan ID"
// @Success 200 {object} map[string]int
// @Failure 404 {object} map[string]string "Installment not found"
// @Failure 500 {object} map[string]string "Failed to derive next number"
// @Router /installments/{id}/next-number [get]
func (h *installmentHandler) nextUnpaidNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := planID(c)
	if !ok {
		return
	}

	next, err := h.installmentService.NextUnpaidNumber(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Installment not found"})
		} else {
			logger.Error("Failed to derive next unpaid number", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive next number"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_number": next})
}
