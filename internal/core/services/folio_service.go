package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portsrepo "github.com/stayops/folio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
	"github.com/stayops/folio_ledger_app/internal/dto"
	"github.com/stayops/folio_ledger_app/internal/middleware"
)

// ErrFolioClosed is returned when a mutation targets a folio that is not open.
var ErrFolioClosed = fmt.Errorf("%w: folio is closed", apperrors.ErrConflict)

const defaultItemPageSize = 20

// folioService provides folio read and lifecycle operations.
type folioService struct {
	folioRepo   portsrepo.FolioRepositoryFacade
	paymentRepo portsrepo.PaymentReader
}

// NewFolioService creates a new folio service.
func NewFolioService(folioRepo portsrepo.FolioRepositoryFacade, paymentRepo portsrepo.PaymentReader) portssvc.FolioSvcFacade {
	return &folioService{
		folioRepo:   folioRepo,
		paymentRepo: paymentRepo,
	}
}

// Ensure folioService implements the portssvc.FolioSvcFacade interface
var _ portssvc.FolioSvcFacade = (*folioService)(nil)

// GetFolioByID retrieves a specific folio by its ID.
func (s *folioService) GetFolioByID(ctx context.Context, folioID string) (*domain.Folio, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folio %s: %w", folioID, err)
	}
	return folio, nil
}

// GetFolioSummary retrieves the folio's computed totals.
func (s *folioService) GetFolioSummary(ctx context.Context, folioID string) (*domain.FolioSummary, error) {
	summary, err := s.folioRepo.GetFolioSummary(ctx, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary for folio %s: %w", folioID, err)
	}
	return summary, nil
}

// ListFolioItems retrieves a cursor-paginated list of the folio's items.
func (s *folioService) ListFolioItems(ctx context.Context, folioID string, params dto.ListFolioItemsParams) (*dto.ListFolioItemsResponse, error) {
	// Confirm the folio exists so an unknown ID is a 404, not an empty page.
	if _, err := s.folioRepo.FindFolioByID(ctx, folioID); err != nil {
		return nil, fmt.Errorf("failed to list items for folio %s: %w", folioID, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultItemPageSize
	}

	items, nextToken, err := s.folioRepo.ListItemsByFolioID(ctx, folioID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for folio %s: %w", folioID, err)
	}

	return &dto.ListFolioItemsResponse{
		Items:     dto.ToFolioItemResponses(items),
		NextToken: nextToken,
	}, nil
}

// ListFolioPayments retrieves the payments recorded against the folio.
func (s *folioService) ListFolioPayments(ctx context.Context, folioID string) ([]domain.Payment, error) {
	if _, err := s.folioRepo.FindFolioByID(ctx, folioID); err != nil {
		return nil, fmt.Errorf("failed to list payments for folio %s: %w", folioID, err)
	}

	payments, err := s.paymentRepo.FindPaymentsBySource(ctx, domain.PaymentSourceFolio, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for folio %s: %w", folioID, err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// GetOrCreateOpenFolio returns the reservation's open folio, creating a
// zero-balance one when none exists. Creation is idempotent under concurrency:
// the storage layer guarantees at most one open folio per reservation, so
// concurrent callers converge on the same folio.
func (s *folioService) GetOrCreateOpenFolio(ctx context.Context, reservationID string, actorID string) (*domain.Folio, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reservationID == "" {
		return nil, fmt.Errorf("%w: reservation ID is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	candidate := domain.Folio{
		FolioID:       uuid.NewString(),
		ReservationID: &reservationID,
		Balance:       decimal.Zero,
		Status:        domain.FolioOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	folio, err := s.folioRepo.GetOrCreateOpenFolio(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create open folio for reservation %s: %w", reservationID, err)
	}
	if folio.FolioID == candidate.FolioID {
		logger.Info("Created new folio",
			slog.String("folio_id", folio.FolioID),
			slog.String("reservation_id", reservationID),
		)
	}
	return folio, nil
}

// CloseFolio transitions an open folio to closed. Closing with an outstanding
// balance is allowed here; the checkout gate enforces settlement separately.
func (s *folioService) CloseFolio(ctx context.Context, folioID string, actorID string) error {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return fmt.Errorf("failed to close folio %s: %w", folioID, err)
	}
	if !folio.IsOpen() {
		return fmt.Errorf("%w: folio %s", ErrFolioClosed, folioID)
	}

	if err := s.folioRepo.UpdateFolioStatus(ctx, folioID, domain.FolioClosed, actorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to close folio %s: %w", folioID, err)
	}
	return nil
}

// ReopenFolio transitions a closed folio back to open. It fails if the
// reservation already has another open folio, which would violate the
// one-open-folio rule.
func (s *folioService) ReopenFolio(ctx context.Context, folioID string, actorID string) error {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return fmt.Errorf("failed to reopen folio %s: %w", folioID, err)
	}
	if folio.IsOpen() {
		return fmt.Errorf("%w: folio %s is already open", apperrors.ErrConflict, folioID)
	}

	if folio.ReservationID != nil {
		existing, err := s.folioRepo.FindOpenFolioByReservationID(ctx, *folio.ReservationID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: reservation %s already has open folio %s", apperrors.ErrConflict, *folio.ReservationID, existing.FolioID)
		case !errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("failed to reopen folio %s: %w", folioID, err)
		}
	}

	if err := s.folioRepo.UpdateFolioStatus(ctx, folioID, domain.FolioOpen, actorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to reopen folio %s: %w", folioID, err)
	}
	return nil
}
