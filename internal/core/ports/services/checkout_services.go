package services

import (
	"context"
	"time"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// CheckoutGateSvc evaluates whether a reservation may check out.
type CheckoutGateSvc interface {
	// EvaluateCheckout classifies the departure date against the scheduled
	// checkout and reports whether the folio balance blocks checkout. It is
	// read-only.
	EvaluateCheckout(ctx context.Context, reservationID string, asOf time.Time) (*domain.CheckoutEvaluation, error)

	// ConfirmCheckout re-runs the balance check at commit time (the balance
	// may have changed since evaluation), fails with ErrBlockingBalance while
	// money is owed, and closes the folio on success.
	ConfirmCheckout(ctx context.Context, reservationID string, actorID string) (*domain.CheckoutEvaluation, error)
}
