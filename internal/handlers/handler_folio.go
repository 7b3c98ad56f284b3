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

// folioHandler handles HTTP requests related to folios and their ledger.
type folioHandler struct {
	folioService   portssvc.FolioSvcFacade
	postingService portssvc.LedgerPostingSvc
}

// newFolioHandler creates a new folioHandler.
func newFolioHandler(fs portssvc.FolioSvcFacade, ps portssvc.LedgerPostingSvc) *folioHandler {
	return &folioHandler{
		folioService:   fs,
		postingService: ps,
	}
}

// registerFolioRoutes registers routes related to folios.
func registerFolioRoutes(rg *gin.RouterGroup, folioService portssvc.FolioSvcFacade, postingService portssvc.LedgerPostingSvc) {
	h := newFolioHandler(folioService, postingService)

	rg.POST("/reservations/:id/folio", h.getOrCreateFolio)

	folios := rg.Group("/folios")
	{
		folios.GET("/:id", h.getFolioByID)
		folios.GET("/:id/summary", h.getFolioSummary)
		folios.POST("/:id/close", h.closeFolio)
		folios.POST("/:id/reopen", h.reopenFolio)
		folios.POST("/:id/recompute", h.recomputeBalance)
		folios.GET("/:id/items", h.listFolioItems)
		folios.POST("/:id/items", h.addItem)
		folios.DELETE("/:id/items/:itemID", h.deleteItem)
		folios.POST("/:id/items/:itemID/move", h.moveItem)
		folios.POST("/:id/discounts", h.applyDiscount)
		folios.GET("/:id/payments", h.listFolioPayments)
		folios.POST("/:id/payments", h.addPayment)
	}
}

// getOrCreateFolio godoc
// @Summary Get or create the open folio for a reservation
// @Description Returns the reservation's open folio, creating a zero-balance one when none exists
// @Tags folios
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.FolioResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get or create folio"
// @Security BearerAuth
// @Router /reservations/{id}/folio [post]
func (h *folioHandler) getOrCreateFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	folio, err := h.folioService.GetOrCreateOpenFolio(c.Request.Context(), reservationID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get or create folio", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get or create folio"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFolioResponse(folio))
}

// getFolioByID godoc
// @Summary Get a folio by ID
// @Description Retrieves a folio including its stored derived balance
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Success 200 {object} dto.FolioResponse
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 500 {object} map[string]string "Failed to retrieve folio"
// @Security BearerAuth
// @Router /folios/{id} [get]
func (h *folioHandler) getFolioByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	folio, err := h.folioService.GetFolioByID(c.Request.Context(), folioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio not found"})
		} else {
			logger.Error("Failed to get folio", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve folio"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFolioResponse(folio))
}

// getFolioSummary godoc
// @Summary Get a folio's computed totals
// @Description Retrieves subtotal, completed payments total, derived balance and counts
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Success 200 {object} dto.FolioSummaryResponse
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 500 {object} map[string]string "Failed to retrieve summary"
// @Security BearerAuth
// @Router /folios/{id}/summary [get]
func (h *folioHandler) getFolioSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	summary, err := h.folioService.GetFolioSummary(c.Request.Context(), folioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio not found"})
		} else {
			logger.Error("Failed to get folio summary", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFolioSummaryResponse(summary))
}

// closeFolio godoc
// @Summary Close a folio
// @Description Transitions an open folio to CLOSED; an outstanding balance does not prevent closing
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Success 204 "Closed"
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 409 {object} map[string]string "Folio already closed"
// @Security BearerAuth
// @Router /folios/{id}/close [post]
func (h *folioHandler) closeFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.folioService.CloseFolio(c.Request.Context(), folioID, actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close folio", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close folio"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// reopenFolio godoc
// @Summary Reopen a closed folio
// @Description Transitions a closed folio back to OPEN unless the reservation already has an open folio
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Success 204 "Reopened"
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 409 {object} map[string]string "Folio already open or another open folio exists"
// @Security BearerAuth
// @Router /folios/{id}/reopen [post]
func (h *folioHandler) reopenFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.folioService.ReopenFolio(c.Request.Context(), folioID, actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reopen folio", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen folio"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// recomputeBalance godoc
// @Summary Force a balance recomputation
// @Description Re-derives the folio balance from current items and completed payments
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Success 200 {object} map[string]string "New balance"
// @Failure 404 {object} map[string]string "Folio not found"
// @Security BearerAuth
// @Router /folios/{id}/recompute [post]
func (h *folioHandler) recomputeBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	balance, err := h.postingService.RecomputeBalance(c.Request.Context(), folioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio not found"})
		} else {
			logger.Error("Failed to recompute balance", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"folioID": folioID, "balance": balance})
}

// listFolioItems godoc
// @Summary List a folio's items
// @Description Retrieves a cursor-paginated list of items, newest first
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListFolioItemsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 404 {object} map[string]string "Folio not found"
// @Security BearerAuth
// @Router /folios/{id}/items [get]
func (h *folioHandler) listFolioItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	var params dto.ListFolioItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	page, err := h.folioService.ListFolioItems(c.Request.Context(), folioID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list folio items", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// addItem godoc
// @Summary Post a charge line to a folio
// @Description Adds a signed charge line to an open folio and recomputes its balance
// @Tags folios
// @Accept json
// @Produce json
// @Param id path string true "Folio ID"
// @Param item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.FolioItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 409 {object} map[string]string "Folio is closed"
// @Security BearerAuth
// @Router /folios/{id}/items [post]
func (h *folioHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.postingService.AddItem(c.Request.Context(), folioID, req, actorID)
	if err != nil {
		h.respondPostingError(c, logger, err, "Failed to add item")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFolioItemResponse(item))
}

// deleteItem godoc
// @Summary Delete a charge line from a folio
// @Description Removes an item from an open folio and recomputes its balance
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Param itemID path string true "Item ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Folio or item not found"
// @Failure 409 {object} map[string]string "Folio is closed or item was moved"
// @Security BearerAuth
// @Router /folios/{id}/items/{itemID} [delete]
func (h *folioHandler) deleteItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")
	itemID := c.Param("itemID")

	if err := h.postingService.DeleteItem(c.Request.Context(), folioID, itemID); err != nil {
		h.respondPostingError(c, logger, err, "Failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

// moveItem godoc
// @Summary Move an item to another folio
// @Description Reassigns an item between two open folios atomically, recomputing both balances
// @Tags folios
// @Accept json
// @Produce json
// @Param id path string true "Source folio ID"
// @Param itemID path string true "Item ID"
// @Param move body dto.MoveItemRequest true "Destination folio"
// @Success 204 "Moved"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Folio or item not found"
// @Failure 409 {object} map[string]string "Folio is closed or concurrent modification"
// @Security BearerAuth
// @Router /folios/{id}/items/{itemID}/move [post]
func (h *folioHandler) moveItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromFolioID := c.Param("id")
	itemID := c.Param("itemID")

	var req dto.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for moveItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.postingService.MoveItem(c.Request.Context(), itemID, fromFolioID, req.ToFolioID, actorID); err != nil {
		h.respondPostingError(c, logger, err, "Failed to move item")
		return
	}

	c.Status(http.StatusNoContent)
}

// applyDiscount godoc
// @Summary Apply a discount to a folio
// @Description Posts a negative line with the discount description prefix
// @Tags folios
// @Accept json
// @Produce json
// @Param id path string true "Folio ID"
// @Param discount body dto.ApplyDiscountRequest true "Discount details"
// @Success 201 {object} dto.FolioItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 409 {object} map[string]string "Folio is closed"
// @Security BearerAuth
// @Router /folios/{id}/discounts [post]
func (h *folioHandler) applyDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyDiscount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.postingService.ApplyDiscount(c.Request.Context(), folioID, req, actorID)
	if err != nil {
		h.respondPostingError(c, logger, err, "Failed to apply discount")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFolioItemResponse(item))
}

// listFolioPayments godoc
// @Summary List payments recorded against a folio
// @Tags folios
// @Produce json
// @Param id path string true "Folio ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Folio not found"
// @Security BearerAuth
// @Router /folios/{id}/payments [get]
func (h *folioHandler) listFolioPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	payments, err := h.folioService.ListFolioPayments(c.Request.Context(), folioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folio not found"})
		} else {
			logger.Error("Failed to list folio payments", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// addPayment godoc
// @Summary Record a payment against a folio
// @Description Inserts a payment scoped to the folio and recomputes the balance; only COMPLETED payments reduce it
// @Tags folios
// @Accept json
// @Produce json
// @Param id path string true "Folio ID"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 409 {object} map[string]string "Folio is closed"
// @Security BearerAuth
// @Router /folios/{id}/payments [post]
func (h *folioHandler) addPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("id")

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.postingService.AddPayment(c.Request.Context(), folioID, req, actorID)
	if err != nil {
		h.respondPostingError(c, logger, err, "Failed to add payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// respondPostingError maps posting service errors to HTTP statuses.
func (h *folioHandler) respondPostingError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFolioClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
