package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
	"github.com/stayops/folio_ledger_app/internal/dto"
)

// LedgerPostingSvc defines all mutations against a folio's ledger. Every
// operation leaves the folio balance equal to the recomputed projection over
// its current items and completed payments.
type LedgerPostingSvc interface {
	// AddItem posts one charge line to an open folio.
	AddItem(ctx context.Context, folioID string, req dto.CreateItemRequest, actorID string) (*domain.FolioItem, error)

	// DeleteItem removes a charge line from an open folio.
	DeleteItem(ctx context.Context, folioID string, itemID string) error

	// ApplyDiscount posts a negative charge line with a discount description.
	ApplyDiscount(ctx context.Context, folioID string, req dto.ApplyDiscountRequest, actorID string) (*domain.FolioItem, error)

	// AddPayment records a payment against the folio.
	AddPayment(ctx context.Context, folioID string, req dto.CreatePaymentRequest, actorID string) (*domain.Payment, error)

	// MoveItem reassigns an item between two folios atomically.
	MoveItem(ctx context.Context, itemID string, fromFolioID string, toFolioID string, actorID string) error

	// RecomputeBalance forces a re-derivation of the folio balance and returns
	// the result.
	RecomputeBalance(ctx context.Context, folioID string) (decimal.Decimal, error)
}
