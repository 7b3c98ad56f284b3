package services

import (
	"context"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
	"github.com/stayops/folio_ledger_app/internal/dto"
)

// ConsumptionPostingSvc turns point-of-sale consumption events for an occupied
// space into folio items.
type ConsumptionPostingSvc interface {
	// AddConsumptions posts a batch of consumption lines to the folio of the
	// space's active occupancy, creating the folio on demand. The batch is
	// all-or-nothing: if any line fails, nothing is posted.
	AddConsumptions(ctx context.Context, spaceID string, req dto.AddConsumptionsRequest, actorID string) ([]domain.FolioItem, error)
}
