package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// FolioReader defines read operations for folio data
type FolioReader interface {
	// FindFolioByID retrieves a specific folio by its unique identifier.
	FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error)

	// FindOpenFolioByReservationID retrieves the single open folio for a
	// reservation. Absence is reported as apperrors.ErrNotFound; at most one
	// open folio can exist per reservation.
	FindOpenFolioByReservationID(ctx context.Context, reservationID string) (*domain.Folio, error)

	// GetFolioSummary computes the folio's totals (subtotal, payments total,
	// balance, counts) from the current items and payments.
	GetFolioSummary(ctx context.Context, folioID string) (*domain.FolioSummary, error)
}

// FolioWriter defines write operations for folio data
type FolioWriter interface {
	// GetOrCreateOpenFolio atomically returns the open folio for a reservation,
	// inserting a fresh zero-balance one when none exists. Concurrent callers
	// converge on the same row.
	GetOrCreateOpenFolio(ctx context.Context, folio domain.Folio) (*domain.Folio, error)

	// UpdateFolioStatus transitions the folio between open and closed. It does
	// not touch the balance.
	UpdateFolioStatus(ctx context.Context, folioID string, status domain.FolioStatus, updatedBy string, updatedAt time.Time) error

	// RecomputeBalance re-derives the folio balance from the full current set
	// of items and completed payments, under a row lock on the folio, and
	// returns the new balance.
	RecomputeBalance(ctx context.Context, folioID string) (decimal.Decimal, error)
}

// FolioItemReader defines read operations for folio item data
type FolioItemReader interface {
	// FindItemByID retrieves a single folio item.
	FindItemByID(ctx context.Context, itemID string) (*domain.FolioItem, error)

	// FindItemsByFolioID retrieves all items currently attached to a folio.
	FindItemsByFolioID(ctx context.Context, folioID string) ([]domain.FolioItem, error)

	// ListItemsByFolioID retrieves a cursor-paginated page of items for a
	// folio. It returns the items, a token for the next page, and an error.
	ListItemsByFolioID(ctx context.Context, folioID string, limit int, nextToken *string) ([]domain.FolioItem, *string, error)
}

// FolioItemWriter defines write operations for folio item data. Every method
// recomputes the owning folio's balance inside the same database transaction
// as the mutation.
type FolioItemWriter interface {
	// SaveItem inserts one item and recomputes the folio balance.
	SaveItem(ctx context.Context, item domain.FolioItem) error

	// SaveItemsBatch inserts all items against a single folio and recomputes
	// its balance once, in one transaction. The batch is all-or-nothing.
	SaveItemsBatch(ctx context.Context, folioID string, items []domain.FolioItem) error

	// DeleteItem removes an item from a folio and recomputes the balance. The
	// folioID guards against deleting an item that has moved elsewhere.
	DeleteItem(ctx context.Context, itemID string, folioID string) error

	// MoveItem reassigns the item's owning folio and recomputes both balances
	// atomically. A reader never observes the item moved with only one side's
	// balance updated.
	MoveItem(ctx context.Context, itemID string, fromFolioID string, toFolioID string, movedBy string, movedAt time.Time) error
}

// FolioRepositoryFacade combines all folio-related repository interfaces
type FolioRepositoryFacade interface {
	FolioReader
	FolioWriter
	FolioItemReader
	FolioItemWriter
}
