package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
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

// discountDescriptionPrefix marks discount lines so they are recognizable on
// printed folios.
const discountDescriptionPrefix = "Descuento: "

// postingService applies all ledger mutations to folios. Every mutation goes
// through the repository's recompute-in-transaction path, so the stored
// balance always equals the projection over current items and completed
// payments.
type postingService struct {
	folioRepo   portsrepo.FolioRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewPostingService creates a new ledger posting service.
func NewPostingService(folioRepo portsrepo.FolioRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.LedgerPostingSvc {
	return &postingService{
		folioRepo:   folioRepo,
		paymentRepo: paymentRepo,
	}
}

// Ensure postingService implements the portssvc.LedgerPostingSvc interface
var _ portssvc.LedgerPostingSvc = (*postingService)(nil)

// requireOpenFolio loads the folio and rejects the mutation if it is closed.
func (s *postingService) requireOpenFolio(ctx context.Context, folioID string) (*domain.Folio, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	if !folio.IsOpen() {
		return nil, fmt.Errorf("%w: folio %s", ErrFolioClosed, folioID)
	}
	return folio, nil
}

// AddItem posts one charge line to an open folio.
func (s *postingService) AddItem(ctx context.Context, folioID string, req dto.CreateItemRequest, actorID string) (*domain.FolioItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: item description is required", apperrors.ErrValidation)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: item amount must be non-zero", apperrors.ErrValidation)
	}

	if _, err := s.requireOpenFolio(ctx, folioID); err != nil {
		return nil, fmt.Errorf("failed to add item to folio %s: %w", folioID, err)
	}

	source := domain.ItemSource(req.Source)
	if source == "" {
		source = domain.SourceManual
	}

	now := time.Now().UTC()
	item := domain.FolioItem{
		ItemID:      uuid.NewString(),
		FolioID:     folioID,
		Source:      source,
		Description: req.Description,
		Amount:      req.Amount,
		TaxCode:     req.TaxCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.folioRepo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item to folio %s: %w", folioID, err)
	}

	logger.Info("Posted folio item",
		slog.String("folio_id", folioID),
		slog.String("item_id", item.ItemID),
		slog.String("amount", item.Amount.String()),
	)
	return &item, nil
}

// DeleteItem removes a charge line from an open folio.
func (s *postingService) DeleteItem(ctx context.Context, folioID string, itemID string) error {
	if _, err := s.requireOpenFolio(ctx, folioID); err != nil {
		return fmt.Errorf("failed to delete item %s from folio %s: %w", itemID, folioID, err)
	}

	if err := s.folioRepo.DeleteItem(ctx, itemID, folioID); err != nil {
		return fmt.Errorf("failed to delete item %s from folio %s: %w", itemID, folioID, err)
	}
	return nil
}

// ApplyDiscount posts a negative line with the discount description prefix.
// The requested amount is taken as an absolute value.
func (s *postingService) ApplyDiscount(ctx context.Context, folioID string, req dto.ApplyDiscountRequest, actorID string) (*domain.FolioItem, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: discount description is required", apperrors.ErrValidation)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: discount amount must be non-zero", apperrors.ErrValidation)
	}

	itemReq := dto.CreateItemRequest{
		Source:      string(domain.SourceManual),
		Description: discountDescriptionPrefix + req.Description,
		Amount:      req.Amount.Abs().Neg(),
	}
	return s.AddItem(ctx, folioID, itemReq, actorID)
}

// AddPayment records a payment against the folio. Status defaults to
// completed; only completed payments reduce the balance.
func (s *postingService) AddPayment(ctx context.Context, folioID string, req dto.CreatePaymentRequest, actorID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.requireOpenFolio(ctx, folioID); err != nil {
		return nil, fmt.Errorf("failed to add payment to folio %s: %w", folioID, err)
	}

	status := domain.PaymentStatus(req.Status)
	if status == "" {
		status = domain.PaymentCompleted
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		Source:    domain.PaymentSourceFolio,
		SourceID:  folioID,
		Method:    req.Method,
		Amount:    req.Amount,
		Currency:  strings.ToUpper(req.Currency),
		Reference: req.Reference,
		Status:    status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to add payment to folio %s: %w", folioID, err)
	}

	logger.Info("Recorded folio payment",
		slog.String("folio_id", folioID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("status", string(payment.Status)),
	)
	return &payment, nil
}

// MoveItem reassigns an item between two folios. Both folios must be open and
// distinct, and the item must currently sit on the source folio; the
// repository performs the reassignment and both balance recomputations in one
// transaction.
func (s *postingService) MoveItem(ctx context.Context, itemID string, fromFolioID string, toFolioID string, actorID string) error {
	if fromFolioID == toFolioID {
		return fmt.Errorf("%w: source and destination folios are the same", apperrors.ErrValidation)
	}

	item, err := s.folioRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to move item %s: %w", itemID, err)
	}
	if item.FolioID != fromFolioID {
		return fmt.Errorf("%w: item %s does not belong to folio %s", apperrors.ErrValidation, itemID, fromFolioID)
	}

	if _, err := s.requireOpenFolio(ctx, fromFolioID); err != nil {
		return fmt.Errorf("failed to move item %s: %w", itemID, err)
	}
	if _, err := s.requireOpenFolio(ctx, toFolioID); err != nil {
		return fmt.Errorf("failed to move item %s: %w", itemID, err)
	}

	if err := s.folioRepo.MoveItem(ctx, itemID, fromFolioID, toFolioID, actorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to move item %s from folio %s to folio %s: %w", itemID, fromFolioID, toFolioID, err)
	}
	return nil
}

// RecomputeBalance forces a re-derivation of the folio balance.
func (s *postingService) RecomputeBalance(ctx context.Context, folioID string) (decimal.Decimal, error) {
	balance, err := s.folioRepo.RecomputeBalance(ctx, folioID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to recompute balance for folio %s: %w", folioID, err)
	}
	return balance, nil
}
