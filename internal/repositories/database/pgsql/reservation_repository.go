package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	"github.com/stayops/folio_ledger_app/internal/models"
	"github.com/stayops/folio_ledger_app/internal/utils/mapping"
)

type PgxReservationRepository struct {
	BaseRepository
}

// newPgxReservationRepository creates a read-only repository over reservation
// data owned by the booking subsystem.
func newPgxReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationReader {
	return &PgxReservationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReservationRepository implements portsrepo.ReservationReader
var _ portsrepo.ReservationReader = (*PgxReservationRepository)(nil)

const reservationColumns = `reservation_id, status, checkin_date, checkout_date, created_at, created_by, last_updated_at, last_updated_by`

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var m models.Reservation
	err := row.Scan(
		&m.ReservationID,
		&m.Status,
		&m.CheckinDate,
		&m.CheckoutDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindReservationByID retrieves a reservation by its identifier.
func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = $1;`
	m, err := scanReservation(r.Pool.QueryRow(ctx, query, reservationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation by ID %s: %w", reservationID, err)
	}
	reservation := mapping.ToDomainReservation(*m)
	return &reservation, nil
}

// FindReservationIDsBySpaceID retrieves the identifiers of all reservations
// linked to a space through the reservation_spaces join table. A space with no
// reservations yields an empty slice, not an error.
func (r *PgxReservationRepository) FindReservationIDsBySpaceID(ctx context.Context, spaceID string) ([]string, error) {
	query := `SELECT reservation_id FROM reservation_spaces WHERE space_id = $1;`
	rows, err := r.Pool.Query(ctx, query, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations for space %s: %w", spaceID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan reservation ID for space %s: %w", spaceID, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservation IDs for space %s: %w", spaceID, err)
	}
	return ids, nil
}

// FindReservationsByIDs retrieves multiple reservations keyed by ID. IDs that
// do not resolve are absent from the map.
func (r *PgxReservationRepository) FindReservationsByIDs(ctx context.Context, reservationIDs []string) (map[string]domain.Reservation, error) {
	result := make(map[string]domain.Reservation, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, reservationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		result[m.ReservationID] = mapping.ToDomainReservation(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservation rows: %w", err)
	}
	return result, nil
}
