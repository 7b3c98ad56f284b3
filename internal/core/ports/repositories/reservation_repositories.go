package repositories

import (
	"context"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// ReservationReader defines read-only access to reservation data. Reservations
// and spaces are owned by an external subsystem; this ledger never writes them.
type ReservationReader interface {
	// FindReservationByID retrieves a reservation by its identifier.
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// FindReservationIDsBySpaceID retrieves the identifiers of all reservations
	// linked to a space, past and present.
	FindReservationIDsBySpaceID(ctx context.Context, spaceID string) ([]string, error)

	// FindReservationsByIDs retrieves multiple reservations keyed by ID. IDs
	// that do not resolve are simply absent from the map.
	FindReservationsByIDs(ctx context.Context, reservationIDs []string) (map[string]domain.Reservation, error)
}
