package services

import (
	"context"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
	"github.com/stayops/folio_ledger_app/internal/dto"
)

// FolioReaderSvc defines read operations for folio data
type FolioReaderSvc interface {
	// GetFolioByID retrieves a specific folio by its ID.
	GetFolioByID(ctx context.Context, folioID string) (*domain.Folio, error)

	// GetFolioSummary retrieves the folio's computed totals.
	GetFolioSummary(ctx context.Context, folioID string) (*domain.FolioSummary, error)

	// ListFolioItems retrieves a cursor-paginated list of the folio's items.
	ListFolioItems(ctx context.Context, folioID string, params dto.ListFolioItemsParams) (*dto.ListFolioItemsResponse, error)

	// ListFolioPayments retrieves the payments recorded against the folio.
	ListFolioPayments(ctx context.Context, folioID string) ([]domain.Payment, error)
}

// FolioLifecycleSvc defines lifecycle operations for folios
type FolioLifecycleSvc interface {
	// GetOrCreateOpenFolio returns the open folio for a reservation, creating
	// a zero-balance one when none exists.
	GetOrCreateOpenFolio(ctx context.Context, reservationID string, actorID string) (*domain.Folio, error)

	// CloseFolio transitions an open folio to closed.
	CloseFolio(ctx context.Context, folioID string, actorID string) error

	// ReopenFolio transitions a closed folio back to open.
	ReopenFolio(ctx context.Context, folioID string, actorID string) error
}

// FolioSvcFacade combines all folio-related service interfaces
type FolioSvcFacade interface {
	FolioReaderSvc
	FolioLifecycleSvc
}
