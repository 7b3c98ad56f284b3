package services

import (
	"context"
	"time"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// OccupancyResolverSvc resolves which occupancy applies to a space at a point
// in time.
type OccupancyResolverSvc interface {
	// ResolveActiveOccupancy finds the single reservation occupying the space
	// as of the given date, together with its open folio if one exists. When
	// no reservation occupies the space it fails with ErrNoActiveOccupancy.
	ResolveActiveOccupancy(ctx context.Context, spaceID string, asOf time.Time) (*domain.Occupancy, error)
}
