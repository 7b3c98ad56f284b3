package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
	"github.com/stayops/folio_ledger_app/internal/middleware"
)

// ErrNoActiveOccupancy is returned when no reservation occupies a space on the
// requested date.
var ErrNoActiveOccupancy = fmt.Errorf("%w: no active occupancy for space", apperrors.ErrNotFound)

// occupancyService resolves which reservation occupies a space at a point in
// time, and which open folio (if any) belongs to it.
type occupancyService struct {
	reservationRepo portsrepo.ReservationReader
	folioRepo       portsrepo.FolioReader
}

// NewOccupancyService creates a new occupancy resolver.
func NewOccupancyService(reservationRepo portsrepo.ReservationReader, folioRepo portsrepo.FolioReader) portssvc.OccupancyResolverSvc {
	return &occupancyService{
		reservationRepo: reservationRepo,
		folioRepo:       folioRepo,
	}
}

// Ensure occupancyService implements the portssvc.OccupancyResolverSvc interface
var _ portssvc.OccupancyResolverSvc = (*occupancyService)(nil)

// ResolveActiveOccupancy finds the single reservation occupying the space as
// of the given date. Candidates are reservations linked to the space whose
// status is occupying (confirmed or checked-in) and whose stay range covers
// the date; when several match, the one with the latest checkin wins.
func (s *occupancyService) ResolveActiveOccupancy(ctx context.Context, spaceID string, asOf time.Time) (*domain.Occupancy, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservationIDs, err := s.reservationRepo.FindReservationIDsBySpaceID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for space %s: %w", spaceID, err)
	}
	if len(reservationIDs) == 0 {
		return nil, ErrNoActiveOccupancy
	}

	reservations, err := s.reservationRepo.FindReservationsByIDs(ctx, reservationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for space %s: %w", spaceID, err)
	}

	var active *domain.Reservation
	for _, id := range reservationIDs {
		reservation, ok := reservations[id]
		if !ok {
			continue
		}
		if !reservation.IsOccupying() || !reservation.CoversDate(asOf) {
			continue
		}
		// Overlapping stays should not exist, but if data drifts the most
		// recent checkin is the one physically in the space.
		if active == nil || reservation.CheckinDate.After(active.CheckinDate) {
			r := reservation
			active = &r
		}
	}
	if active == nil {
		return nil, ErrNoActiveOccupancy
	}

	occupancy := &domain.Occupancy{ReservationID: active.ReservationID}

	folio, err := s.folioRepo.FindOpenFolioByReservationID(ctx, active.ReservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No open folio yet; callers create one on demand.
			return occupancy, nil
		}
		return nil, fmt.Errorf("failed to find open folio for reservation %s: %w", active.ReservationID, err)
	}
	occupancy.OpenFolioID = &folio.FolioID

	logger.Debug("Resolved active occupancy",
		slog.String("space_id", spaceID),
		slog.String("reservation_id", active.ReservationID),
	)
	return occupancy, nil
}
