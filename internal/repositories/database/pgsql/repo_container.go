package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FolioRepo:       newPgxFolioRepository(pool),
		PaymentRepo:     newPgxPaymentRepository(pool),
		ReservationRepo: newPgxReservationRepository(pool),
	}
}
