package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
	"github.com/stayops/folio_ledger_app/internal/dto"
	"github.com/stayops/folio_ledger_app/internal/middleware"
)

// consumptionService posts point-of-sale consumption batches to the folio of
// a space's active occupancy.
type consumptionService struct {
	occupancySvc portssvc.OccupancyResolverSvc
	folioSvc     portssvc.FolioLifecycleSvc
	folioRepo    portsrepo.FolioItemWriter
}

// NewConsumptionService creates a new consumption posting service.
func NewConsumptionService(occupancySvc portssvc.OccupancyResolverSvc, folioSvc portssvc.FolioLifecycleSvc, folioRepo portsrepo.FolioItemWriter) portssvc.ConsumptionPostingSvc {
	return &consumptionService{
		occupancySvc: occupancySvc,
		folioSvc:     folioSvc,
		folioRepo:    folioRepo,
	}
}

// Ensure consumptionService implements the portssvc.ConsumptionPostingSvc interface
var _ portssvc.ConsumptionPostingSvc = (*consumptionService)(nil)

// consumptionDescription renders the folio line description for one
// consumption: "{quantity} x {product}", plus the notes when present.
func consumptionDescription(line domain.ConsumptionLine) string {
	desc := fmt.Sprintf("%s x %s", line.Quantity.String(), line.ProductName)
	if line.Notes != "" {
		desc += " - " + line.Notes
	}
	return desc
}

// AddConsumptions validates the batch, resolves the space's active occupancy,
// creates the folio on demand and posts all lines in one all-or-nothing batch.
func (s *consumptionService) AddConsumptions(ctx context.Context, spaceID string, req dto.AddConsumptionsRequest, actorID string) ([]domain.FolioItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// An empty batch never reaches occupancy resolution: folios are created
	// lazily on the first charge, and zero lines is not a charge.
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: consumption batch must contain at least one line", apperrors.ErrValidation)
	}

	// Validate every line before touching storage so a bad line fails the
	// whole batch up front.
	lines := make([]domain.ConsumptionLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if strings.TrimSpace(lineReq.ProductName) == "" {
			return nil, fmt.Errorf("%w: product name is required on line %d", apperrors.ErrValidation, i+1)
		}
		if lineReq.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive on line %d", apperrors.ErrValidation, i+1)
		}
		if lineReq.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: unit price must be positive on line %d", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.ConsumptionLine{
			ProductID:   lineReq.ProductID,
			ProductName: lineReq.ProductName,
			Quantity:    lineReq.Quantity,
			UnitPrice:   lineReq.UnitPrice,
			Notes:       lineReq.Notes,
		}
	}

	occupancy, err := s.occupancySvc.ResolveActiveOccupancy(ctx, spaceID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to post consumptions for space %s: %w", spaceID, err)
	}

	folio, err := s.folioSvc.GetOrCreateOpenFolio(ctx, occupancy.ReservationID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to post consumptions for space %s: %w", spaceID, err)
	}

	now := time.Now().UTC()
	items := make([]domain.FolioItem, len(lines))
	for i, line := range lines {
		items[i] = domain.FolioItem{
			ItemID:      uuid.NewString(),
			FolioID:     folio.FolioID,
			Source:      domain.SourceRoomService,
			Description: consumptionDescription(line),
			Amount:      line.Amount(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	if err := s.folioRepo.SaveItemsBatch(ctx, folio.FolioID, items); err != nil {
		return nil, fmt.Errorf("failed to post consumptions to folio %s: %w", folio.FolioID, err)
	}

	logger.Info("Posted consumption batch",
		slog.String("space_id", spaceID),
		slog.String("folio_id", folio.FolioID),
		slog.Int("line_count", len(items)),
	)
	return items, nil
}
