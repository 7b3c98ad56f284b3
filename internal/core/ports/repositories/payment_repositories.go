package repositories

import (
	"context"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// PaymentReader defines read operations for payment records
type PaymentReader interface {
	// FindPaymentsBySource retrieves all payments scoped to (source, sourceID),
	// newest first.
	FindPaymentsBySource(ctx context.Context, source string, sourceID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment records
type PaymentWriter interface {
	// SavePayment inserts a payment and, when it targets a folio, recomputes
	// that folio's balance in the same transaction.
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
