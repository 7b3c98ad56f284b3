package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	"github.com/stayops/folio_ledger_app/internal/models"
	"github.com/stayops/folio_ledger_app/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, source, source_id, method, amount, currency, reference, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.Source,
		&m.SourceID,
		&m.Method,
		&m.Amount,
		&m.Currency,
		&m.Reference,
		&m.Status,
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

// SavePayment inserts a payment record. Payments scoped to a folio recompute
// the folio balance under the folio row lock, in the same transaction as the
// insert, so the stored balance and the payment row land together.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if payment.Source == domain.PaymentSourceFolio {
		if _, err := lockOpenFolioTx(ctx, tx, payment.SourceID); err != nil {
			return err
		}
	}

	modelPayment := mapping.ToModelPayment(payment)
	insertQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelPayment.PaymentID,
		modelPayment.Source,
		modelPayment.SourceID,
		modelPayment.Method,
		modelPayment.Amount,
		modelPayment.Currency,
		modelPayment.Reference,
		modelPayment.Status,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, modelPayment.PaymentID)
		}
		return fmt.Errorf("failed to insert payment %s: %w", modelPayment.PaymentID, err)
	}

	if payment.Source == domain.PaymentSourceFolio {
		if _, err := recomputeFolioBalanceTx(ctx, tx, payment.SourceID, payment.LastUpdatedAt); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// FindPaymentsBySource retrieves all payments scoped to (source, sourceID),
// newest first.
func (r *PgxPaymentRepository) FindPaymentsBySource(ctx context.Context, source string, sourceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE source = $1 AND source_id = $2 ORDER BY created_at DESC, payment_id DESC;`
	rows, err := r.Pool.Query(ctx, query, source, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for %s %s: %w", source, sourceID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row for %s %s: %w", source, sourceID, err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows for %s %s: %w", source, sourceID, err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}
