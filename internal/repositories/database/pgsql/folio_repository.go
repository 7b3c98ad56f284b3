package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	"github.com/stayops/folio_ledger_app/internal/models"
	"github.com/stayops/folio_ledger_app/internal/utils/mapping"
	"github.com/stayops/folio_ledger_app/internal/utils/pagination"
)

type PgxFolioRepository struct {
	BaseRepository
}

// newPgxFolioRepository creates a new repository for folio and folio item data.
func newPgxFolioRepository(pool *pgxpool.Pool) portsrepo.FolioRepositoryFacade {
	return &PgxFolioRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFolioRepository implements portsrepo.FolioRepositoryFacade
var _ portsrepo.FolioRepositoryFacade = (*PgxFolioRepository)(nil)

const folioColumns = `folio_id, reservation_id, balance, status, created_at, created_by, last_updated_at, last_updated_by`

const itemColumns = `item_id, folio_id, source, description, amount, tax_code, created_at, created_by, last_updated_at, last_updated_by`

func scanFolio(row pgx.Row) (*models.Folio, error) {
	var m models.Folio
	var reservationID sql.NullString
	err := row.Scan(
		&m.FolioID,
		&reservationID,
		&m.Balance,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reservationID.Valid {
		m.ReservationID = &reservationID.String
	}
	return &m, nil
}

func scanItem(row pgx.Row) (*models.FolioItem, error) {
	var m models.FolioItem
	var taxCode sql.NullString
	err := row.Scan(
		&m.ItemID,
		&m.FolioID,
		&m.Source,
		&m.Description,
		&m.Amount,
		&taxCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if taxCode.Valid {
		m.TaxCode = &taxCode.String
	}
	return &m, nil
}

// lockFolioTx fetches the folio row FOR UPDATE, serializing concurrent
// postings against the same folio. Must be called within a transaction.
func lockFolioTx(ctx context.Context, tx pgx.Tx, folioID string) (*models.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE folio_id = $1 FOR UPDATE;`
	m, err := scanFolio(tx.QueryRow(ctx, query, folioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: folio %s", apperrors.ErrNotFound, folioID)
		}
		return nil, fmt.Errorf("failed to lock folio %s: %w", folioID, err)
	}
	return m, nil
}

// ensureFolioOpen rejects mutations against a folio that is not open.
func ensureFolioOpen(m *models.Folio) error {
	if m.Status != models.FolioOpen {
		return fmt.Errorf("%w: folio %s is %s", apperrors.ErrConflict, m.FolioID, m.Status)
	}
	return nil
}

// lockOpenFolioTx locks the folio row and verifies it is still open. Because
// the check runs on the locked row, a concurrent close cannot slip in between
// a service-level status check and the write that follows.
func lockOpenFolioTx(ctx context.Context, tx pgx.Tx, folioID string) (*models.Folio, error) {
	m, err := lockFolioTx(ctx, tx, folioID)
	if err != nil {
		return nil, err
	}
	if err := ensureFolioOpen(m); err != nil {
		return nil, err
	}
	return m, nil
}

// recomputeFolioBalanceTx re-derives the folio balance from the full current
// set of items and completed payments and writes it, returning the new value.
// The caller must hold the folio row lock in tx.
func recomputeFolioBalanceTx(ctx context.Context, tx pgx.Tx, folioID string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE folios
		SET balance = (SELECT COALESCE(SUM(amount), 0) FROM folio_items WHERE folio_id = $1)
		            - (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE source = 'folio' AND source_id = $1 AND status = 'COMPLETED'),
		    last_updated_at = $2
		WHERE folio_id = $1
		RETURNING balance;
	`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, query, folioID, now).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: folio %s", apperrors.ErrNotFound, folioID)
		}
		return decimal.Zero, fmt.Errorf("failed to recompute balance for folio %s: %w", folioID, err)
	}
	return balance, nil
}

// FindFolioByID retrieves a folio by its ID.
func (r *PgxFolioRepository) FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE folio_id = $1;`
	m, err := scanFolio(r.Pool.QueryRow(ctx, query, folioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find folio by ID %s: %w", folioID, err)
	}
	folio := mapping.ToDomainFolio(*m)
	return &folio, nil
}

// FindOpenFolioByReservationID retrieves the open folio for a reservation.
// The partial unique index on folios guarantees at most one row matches.
func (r *PgxFolioRepository) FindOpenFolioByReservationID(ctx context.Context, reservationID string) (*domain.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE reservation_id = $1 AND status = 'OPEN';`
	m, err := scanFolio(r.Pool.QueryRow(ctx, query, reservationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open folio for reservation %s: %w", reservationID, err)
	}
	folio := mapping.ToDomainFolio(*m)
	return &folio, nil
}

// GetOrCreateOpenFolio inserts a new open folio for the reservation unless one
// already exists. The insert relies on the partial unique index
// folios_one_open_per_reservation: a concurrent creator's row wins the
// conflict and is returned instead, so both callers converge on a single
// folio.
func (r *PgxFolioRepository) GetOrCreateOpenFolio(ctx context.Context, folio domain.Folio) (*domain.Folio, error) {
	if folio.ReservationID == nil {
		return nil, fmt.Errorf("%w: reservation ID is required to get-or-create a folio", apperrors.ErrValidation)
	}

	modelFolio := mapping.ToModelFolio(folio)
	insertQuery := `
		INSERT INTO folios (` + folioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (reservation_id) WHERE status = 'OPEN' DO NOTHING;
	`
	cmdTag, err := r.Pool.Exec(ctx, insertQuery,
		modelFolio.FolioID,
		modelFolio.ReservationID,
		modelFolio.Balance,
		modelFolio.Status,
		modelFolio.CreatedAt,
		modelFolio.CreatedBy,
		modelFolio.LastUpdatedAt,
		modelFolio.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Raced with another creator between conflict check and insert;
			// fall through to the select below.
		} else {
			return nil, fmt.Errorf("failed to insert folio for reservation %s: %w", *folio.ReservationID, err)
		}
	}
	if err == nil && cmdTag.RowsAffected() == 1 {
		return &folio, nil
	}

	existing, err := r.FindOpenFolioByReservationID(ctx, *folio.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open folio after upsert for reservation %s: %w", *folio.ReservationID, err)
	}
	return existing, nil
}

// UpdateFolioStatus transitions a folio between open and closed. It is a pure
// status + audit update; the balance is left untouched.
func (r *PgxFolioRepository) UpdateFolioStatus(ctx context.Context, folioID string, status domain.FolioStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE folios
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE folio_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, folioID, status, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status for folio %s: %w", folioID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: folio %s", apperrors.ErrNotFound, folioID)
	}
	return nil
}

// RecomputeBalance re-derives a folio balance under a row lock and returns it.
func (r *PgxFolioRepository) RecomputeBalance(ctx context.Context, folioID string) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockFolioTx(ctx, tx, folioID); err != nil {
		return decimal.Zero, err
	}
	balance, err := recomputeFolioBalanceTx(ctx, tx, folioID, time.Now().UTC())
	if err != nil {
		return decimal.Zero, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// GetFolioSummary computes the folio's totals from the current items and
// payments in a single query.
func (r *PgxFolioRepository) GetFolioSummary(ctx context.Context, folioID string) (*domain.FolioSummary, error) {
	query := `
		SELECT f.folio_id,
		       (SELECT COALESCE(SUM(amount), 0) FROM folio_items WHERE folio_id = f.folio_id),
		       (SELECT COUNT(*) FROM folio_items WHERE folio_id = f.folio_id),
		       (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE source = 'folio' AND source_id = f.folio_id AND status = 'COMPLETED'),
		       (SELECT COUNT(*) FROM payments WHERE source = 'folio' AND source_id = f.folio_id)
		FROM folios f
		WHERE f.folio_id = $1;
	`
	var s domain.FolioSummary
	err := r.Pool.QueryRow(ctx, query, folioID).Scan(
		&s.FolioID,
		&s.Subtotal,
		&s.ItemCount,
		&s.PaymentsTotal,
		&s.PaymentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to compute summary for folio %s: %w", folioID, err)
	}
	s.Balance = s.Subtotal.Sub(s.PaymentsTotal)
	return &s, nil
}

// SaveItem inserts one charge line and recomputes the folio balance within a
// single transaction, holding the folio row lock throughout.
func (r *PgxFolioRepository) SaveItem(ctx context.Context, item domain.FolioItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockOpenFolioTx(ctx, tx, item.FolioID); err != nil {
		return err
	}

	modelItem := mapping.ToModelFolioItem(item)
	insertQuery := `
		INSERT INTO folio_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelItem.ItemID,
		modelItem.FolioID,
		modelItem.Source,
		modelItem.Description,
		modelItem.Amount,
		modelItem.TaxCode,
		modelItem.CreatedAt,
		modelItem.CreatedBy,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, modelItem.ItemID)
		}
		return fmt.Errorf("failed to insert item %s on folio %s: %w", modelItem.ItemID, modelItem.FolioID, err)
	}

	if _, err := recomputeFolioBalanceTx(ctx, tx, item.FolioID, item.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveItemsBatch inserts all items against one folio and recomputes its
// balance once, in a single transaction. If any insert fails the whole batch
// rolls back; partial posting is never visible.
func (r *PgxFolioRepository) SaveItemsBatch(ctx context.Context, folioID string, items []domain.FolioItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockOpenFolioTx(ctx, tx, folioID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO folio_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	var now time.Time
	for _, item := range items {
		if item.FolioID != folioID {
			return fmt.Errorf("%w: item %s targets folio %s, batch is for folio %s", apperrors.ErrValidation, item.ItemID, item.FolioID, folioID)
		}
		modelItem := mapping.ToModelFolioItem(item)
		batch.Queue(insertQuery,
			modelItem.ItemID,
			modelItem.FolioID,
			modelItem.Source,
			modelItem.Description,
			modelItem.Amount,
			modelItem.TaxCode,
			modelItem.CreatedAt,
			modelItem.CreatedBy,
			modelItem.LastUpdatedAt,
			modelItem.LastUpdatedBy,
		)
		now = modelItem.LastUpdatedAt
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute item batch for folio %s: %w", folioID, err)
	}

	if _, err := recomputeFolioBalanceTx(ctx, tx, folioID, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteItem removes a charge line and recomputes the folio balance. The
// folioID guard means an item concurrently moved to another folio is not
// deleted here.
func (r *PgxFolioRepository) DeleteItem(ctx context.Context, itemID string, folioID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockOpenFolioTx(ctx, tx, folioID); err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM folio_items WHERE item_id = $1 AND folio_id = $2;`, itemID, folioID)
	if err != nil {
		return fmt.Errorf("failed to delete item %s from folio %s: %w", itemID, folioID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM folio_items WHERE item_id = $1);`, itemID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check item %s after delete attempt: %w", itemID, err)
		}
		if exists {
			// The item lives on another folio now; it moved under us.
			return fmt.Errorf("%w: item %s no longer belongs to folio %s", apperrors.ErrConcurrentModification, itemID, folioID)
		}
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
	}

	if _, err := recomputeFolioBalanceTx(ctx, tx, folioID, time.Now().UTC()); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MoveItem reassigns an item's owning folio and recomputes both balances in
// one transaction. Both folio rows are locked in ascending folio_id order, so
// two opposite concurrent moves over the same pair cannot deadlock.
func (r *PgxFolioRepository) MoveItem(ctx context.Context, itemID string, fromFolioID string, toFolioID string, movedBy string, movedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT folio_id, status FROM folios WHERE folio_id = ANY($1) ORDER BY folio_id FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, []string{fromFolioID, toFolioID})
	if err != nil {
		return fmt.Errorf("failed to lock folios %s and %s: %w", fromFolioID, toFolioID, err)
	}
	locked := map[string]models.FolioStatus{}
	for rows.Next() {
		var id string
		var status models.FolioStatus
		if err := rows.Scan(&id, &status); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked folio row: %w", err)
		}
		locked[id] = status
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked folio rows: %w", err)
	}
	for _, id := range []string{fromFolioID, toFolioID} {
		status, ok := locked[id]
		if !ok {
			return fmt.Errorf("%w: folio %s", apperrors.ErrNotFound, id)
		}
		if err := ensureFolioOpen(&models.Folio{FolioID: id, Status: status}); err != nil {
			return err
		}
	}

	updateQuery := `
		UPDATE folio_items
		SET folio_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE item_id = $1 AND folio_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery, itemID, fromFolioID, toFolioID, movedAt, movedBy)
	if err != nil {
		return fmt.Errorf("failed to move item %s from folio %s to folio %s: %w", itemID, fromFolioID, toFolioID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM folio_items WHERE item_id = $1);`, itemID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check item %s after move attempt: %w", itemID, err)
		}
		if exists {
			return fmt.Errorf("%w: item %s no longer belongs to folio %s", apperrors.ErrConcurrentModification, itemID, fromFolioID)
		}
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, itemID)
	}

	// Recompute both sides before committing so a reader never sees the item
	// moved with only one balance updated.
	if _, err := recomputeFolioBalanceTx(ctx, tx, fromFolioID, movedAt); err != nil {
		return err
	}
	if _, err := recomputeFolioBalanceTx(ctx, tx, toFolioID, movedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindItemByID retrieves a single folio item.
func (r *PgxFolioRepository) FindItemByID(ctx context.Context, itemID string) (*domain.FolioItem, error) {
	query := `SELECT ` + itemColumns + ` FROM folio_items WHERE item_id = $1;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}
	item := mapping.ToDomainFolioItem(*m)
	return &item, nil
}

// FindItemsByFolioID retrieves all items currently attached to a folio.
func (r *PgxFolioRepository) FindItemsByFolioID(ctx context.Context, folioID string) ([]domain.FolioItem, error) {
	query := `SELECT ` + itemColumns + ` FROM folio_items WHERE folio_id = $1 ORDER BY created_at, item_id;`
	rows, err := r.Pool.Query(ctx, query, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for folio %s: %w", folioID, err)
	}
	defer rows.Close()

	items := []models.FolioItem{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row for folio %s: %w", folioID, err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows for folio %s: %w", folioID, err)
	}

	return mapping.ToDomainFolioItemSlice(items), nil
}

// ListItemsByFolioID retrieves a cursor-paginated page of items for a folio,
// newest first. It returns the items, a token for the next page, and an error.
func (r *PgxFolioRepository) ListItemsByFolioID(ctx context.Context, folioID string, limit int, nextToken *string) ([]domain.FolioItem, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + itemColumns + ` FROM folio_items WHERE folio_id = $1`
	// Ordering must be stable; item_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, item_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{folioID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastItemID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, decodeErr)
		}
		cursorClause := `AND (created_at, item_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastItemID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query item page for folio %s: %w", folioID, err)
	}
	defer rows.Close()

	modelItems := make([]models.FolioItem, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan item row for folio %s: %w", folioID, scanErr)
		}
		modelItems = append(modelItems, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating item rows for folio %s: %w", folioID, err)
	}

	var nextTokenVal *string
	results := modelItems
	if len(modelItems) > limit {
		last := modelItems[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ItemID)
		nextTokenVal = &token
		results = modelItems[:limit]
	}

	return mapping.ToDomainFolioItemSlice(results), nextTokenVal, nil
}
