package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
	"github.com/stayops/folio_ledger_app/internal/core/services"
	"github.com/stayops/folio_ledger_app/internal/dto"
	"github.com/stayops/folio_ledger_app/internal/middleware"
)

// spaceHandler handles HTTP requests scoped to a space: occupancy resolution
// and consumption posting.
type spaceHandler struct {
	occupancyService   portssvc.OccupancyResolverSvc
	consumptionService portssvc.ConsumptionPostingSvc
}

// newSpaceHandler creates a new spaceHandler.
func newSpaceHandler(os portssvc.OccupancyResolverSvc, cs portssvc.ConsumptionPostingSvc) *spaceHandler {
	return &spaceHandler{
		occupancyService:   os,
		consumptionService: cs,
	}
}

// registerSpaceRoutes registers routes related to spaces.
func registerSpaceRoutes(rg *gin.RouterGroup, occupancyService portssvc.OccupancyResolverSvc, consumptionService portssvc.ConsumptionPostingSvc) {
	h := newSpaceHandler(occupancyService, consumptionService)

	spaces := rg.Group("/spaces")
	{
		spaces.GET("/:spaceID/occupancy", h.getOccupancy)
		spaces.POST("/:spaceID/consumptions", h.addConsumptions)
	}
}

// parseAsOf reads the optional asOf query parameter, defaulting to now.
func parseAsOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// getOccupancy godoc
// @Summary Resolve the active occupancy for a space
// @Description Finds the reservation occupying the space as of a date, plus its open folio if any
// @Tags spaces
// @Produce json
// @Param spaceID path string true "Space ID"
// @Param asOf query string false "Date (YYYY-MM-DD or RFC3339), defaults to now"
// @Success 200 {object} dto.OccupancyResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "No active occupancy"
// @Security BearerAuth
// @Router /spaces/{spaceID}/occupancy [get]
func (h *spaceHandler) getOccupancy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("spaceID")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date: " + err.Error()})
		return
	}

	occupancy, err := h.occupancyService.ResolveActiveOccupancy(c.Request.Context(), spaceID, asOf)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveOccupancy) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active occupancy for this space"})
		} else {
			logger.Error("Failed to resolve occupancy", slog.String("space_id", spaceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve occupancy"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOccupancyResponse(occupancy))
}

// addConsumptions godoc
// @Summary Post a batch of consumptions to a space's folio
// @Description Resolves the active occupancy, creates the folio on demand and posts all lines atomically
// @Tags spaces
// @Accept json
// @Produce json
// @Param spaceID path string true "Space ID"
// @Param consumptions body dto.AddConsumptionsRequest true "Consumption lines"
// @Success 201 {array} dto.FolioItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No active occupancy"
// @Security BearerAuth
// @Router /spaces/{spaceID}/consumptions [post]
func (h *spaceHandler) addConsumptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	spaceID := c.Param("spaceID")

	var req dto.AddConsumptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addConsumptions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.consumptionService.AddConsumptions(c.Request.Context(), spaceID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveOccupancy):
			c.JSON(http.StatusNotFound, gin.H{"error": "No active occupancy for this space"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post consumptions", slog.String("space_id", spaceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post consumptions"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFolioItemResponses(items))
}
