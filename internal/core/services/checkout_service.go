package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
	"github.com/stayops/folio_ledger_app/internal/middleware"
	"github.com/stayops/folio_ledger_app/internal/utils/ledger"
)

// ErrBlockingBalance is returned when checkout is attempted while the folio
// still carries a positive balance.
var ErrBlockingBalance = fmt.Errorf("%w: folio balance must be settled before checkout", apperrors.ErrConflict)

// checkoutService gates reservation checkout on the folio balance.
type checkoutService struct {
	reservationRepo portsrepo.ReservationReader
	folioRepo       portsrepo.FolioRepositoryFacade
	paymentRepo     portsrepo.PaymentReader
	folioSvc        portssvc.FolioLifecycleSvc
}

// NewCheckoutService creates a new checkout gate.
func NewCheckoutService(reservationRepo portsrepo.ReservationReader, folioRepo portsrepo.FolioRepositoryFacade, paymentRepo portsrepo.PaymentReader, folioSvc portssvc.FolioLifecycleSvc) portssvc.CheckoutGateSvc {
	return &checkoutService{
		reservationRepo: reservationRepo,
		folioRepo:       folioRepo,
		paymentRepo:     paymentRepo,
		folioSvc:        folioSvc,
	}
}

// Ensure checkoutService implements the portssvc.CheckoutGateSvc interface
var _ portssvc.CheckoutGateSvc = (*checkoutService)(nil)

// evaluate builds the checkout verdict for a reservation as of a point in
// time. A reservation without an open folio has a zero balance and is never
// blocked.
func (s *checkoutService) evaluate(ctx context.Context, reservationID string, asOf time.Time) (*domain.CheckoutEvaluation, error) {
	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate checkout for reservation %s: %w", reservationID, err)
	}

	classification, days := domain.ClassifyCheckoutDate(reservation.CheckoutDate, asOf)
	evaluation := &domain.CheckoutEvaluation{
		ReservationID:     reservationID,
		Classification:    classification,
		DaysDifference:    days,
		Balance:           decimal.Zero,
		ScheduledCheckout: reservation.CheckoutDate,
		EvaluatedAt:       asOf,
	}

	folio, err := s.folioRepo.FindOpenFolioByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return evaluation, nil
		}
		return nil, fmt.Errorf("failed to evaluate checkout for reservation %s: %w", reservationID, err)
	}

	// Recompute the projection from current items and completed payments
	// rather than trusting the stored column, so the verdict reflects postings
	// made since the last write.
	items, err := s.folioRepo.FindItemsByFolioID(ctx, folio.FolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate checkout for reservation %s: %w", reservationID, err)
	}
	payments, err := s.paymentRepo.FindPaymentsBySource(ctx, domain.PaymentSourceFolio, folio.FolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate checkout for reservation %s: %w", reservationID, err)
	}
	balance := ledger.ComputeBalance(items, payments)

	evaluation.FolioID = &folio.FolioID
	evaluation.Balance = balance
	// A negative balance (overpayment) never blocks departure.
	evaluation.Blocking = balance.GreaterThan(decimal.Zero)
	return evaluation, nil
}

// EvaluateCheckout classifies the departure date and reports whether the
// balance blocks checkout. Read-only.
func (s *checkoutService) EvaluateCheckout(ctx context.Context, reservationID string, asOf time.Time) (*domain.CheckoutEvaluation, error) {
	return s.evaluate(ctx, reservationID, asOf)
}

// ConfirmCheckout re-runs the evaluation at commit time and, when nothing
// blocks, closes the open folio. The re-check matters: items or payments may
// have landed between evaluation and confirmation.
func (s *checkoutService) ConfirmCheckout(ctx context.Context, reservationID string, actorID string) (*domain.CheckoutEvaluation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	evaluation, err := s.evaluate(ctx, reservationID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if evaluation.Blocking {
		return evaluation, fmt.Errorf("%w: reservation %s owes %s", ErrBlockingBalance, reservationID, evaluation.Balance.String())
	}

	if evaluation.FolioID != nil {
		if err := s.folioSvc.CloseFolio(ctx, *evaluation.FolioID, actorID); err != nil {
			return nil, fmt.Errorf("failed to confirm checkout for reservation %s: %w", reservationID, err)
		}
	}

	logger.Info("Checkout confirmed",
		slog.String("reservation_id", reservationID),
		slog.String("classification", string(evaluation.Classification)),
	)
	return evaluation, nil
}
