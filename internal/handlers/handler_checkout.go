package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
	"github.com/stayops/folio_ledger_app/internal/core/services"
	"github.com/stayops/folio_ledger_app/internal/dto"
	"github.com/stayops/folio_ledger_app/internal/middleware"
)

// checkoutHandler handles checkout gate requests for reservations.
type checkoutHandler struct {
	checkoutService portssvc.CheckoutGateSvc
}

// newCheckoutHandler creates a new checkoutHandler.
func newCheckoutHandler(cs portssvc.CheckoutGateSvc) *checkoutHandler {
	return &checkoutHandler{checkoutService: cs}
}

// registerCheckoutRoutes registers routes related to reservation checkout.
func registerCheckoutRoutes(rg *gin.RouterGroup, checkoutService portssvc.CheckoutGateSvc) {
	h := newCheckoutHandler(checkoutService)

	reservations := rg.Group("/reservations")
	{
		reservations.GET("/:id/checkout", h.evaluateCheckout)
		reservations.POST("/:id/checkout", h.confirmCheckout)
	}
}

// evaluateCheckout godoc
// @Summary Evaluate checkout for a reservation
// @Description Classifies the departure date and reports whether the folio balance blocks checkout; read-only
// @Tags checkout
// @Produce json
// @Param id path string true "Reservation ID"
// @Param asOf query string false "Evaluation date (YYYY-MM-DD or RFC3339), defaults to now"
// @Success 200 {object} dto.CheckoutEvaluationResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Security BearerAuth
// @Router /reservations/{id}/checkout [get]
func (h *checkoutHandler) evaluateCheckout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date: " + err.Error()})
		return
	}

	evaluation, err := h.checkoutService.EvaluateCheckout(c.Request.Context(), reservationID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		} else {
			logger.Error("Failed to evaluate checkout", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate checkout"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckoutEvaluationResponse(evaluation))
}

// confirmCheckout godoc
// @Summary Confirm checkout for a reservation
// @Description Re-validates the folio balance and closes the folio; fails with 409 while money is owed
// @Tags checkout
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.CheckoutEvaluationResponse
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 409 {object} dto.CheckoutEvaluationResponse "Blocking balance"
// @Security BearerAuth
// @Router /reservations/{id}/checkout [post]
func (h *checkoutHandler) confirmCheckout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	evaluation, err := h.checkoutService.ConfirmCheckout(c.Request.Context(), reservationID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBlockingBalance):
			// Return the evaluation so the client can show what is owed.
			c.JSON(http.StatusConflict, dto.ToCheckoutEvaluationResponse(evaluation))
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		default:
			logger.Error("Failed to confirm checkout", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm checkout"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckoutEvaluationResponse(evaluation))
}
