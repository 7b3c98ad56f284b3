package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// --- Mock FolioRepository ---
type MockFolioRepository struct {
	mock.Mock
}

func (m *MockFolioRepository) FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) FindOpenFolioByReservationID(ctx context.Context, reservationID string) (*domain.Folio, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) GetFolioSummary(ctx context.Context, folioID string) (*domain.FolioSummary, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioSummary), args.Error(1)
}

func (m *MockFolioRepository) GetOrCreateOpenFolio(ctx context.Context, folio domain.Folio) (*domain.Folio, error) {
	args := m.Called(ctx, folio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) UpdateFolioStatus(ctx context.Context, folioID string, status domain.FolioStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, folioID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockFolioRepository) RecomputeBalance(ctx context.Context, folioID string) (decimal.Decimal, error) {
	args := m.Called(ctx, folioID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFolioRepository) FindItemByID(ctx context.Context, itemID string) (*domain.FolioItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioItem), args.Error(1)
}

func (m *MockFolioRepository) FindItemsByFolioID(ctx context.Context, folioID string) ([]domain.FolioItem, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FolioItem), args.Error(1)
}

func (m *MockFolioRepository) ListItemsByFolioID(ctx context.Context, folioID string, limit int, nextToken *string) ([]domain.FolioItem, *string, error) {
	args := m.Called(ctx, folioID, limit, nextToken)
	var items []domain.FolioItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.FolioItem)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return items, token, args.Error(2)
}

func (m *MockFolioRepository) SaveItem(ctx context.Context, item domain.FolioItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockFolioRepository) SaveItemsBatch(ctx context.Context, folioID string, items []domain.FolioItem) error {
	args := m.Called(ctx, folioID, items)
	return args.Error(0)
}

func (m *MockFolioRepository) DeleteItem(ctx context.Context, itemID string, folioID string) error {
	args := m.Called(ctx, itemID, folioID)
	return args.Error(0)
}

func (m *MockFolioRepository) MoveItem(ctx context.Context, itemID string, fromFolioID string, toFolioID string, movedBy string, movedAt time.Time) error {
	args := m.Called(ctx, itemID, fromFolioID, toFolioID, movedBy, movedAt)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentsBySource(ctx context.Context, source string, sourceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, source, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// --- Mock ReservationReader ---
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindReservationIDsBySpaceID(ctx context.Context, spaceID string) ([]string, error) {
	args := m.Called(ctx, spaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReservationRepository) FindReservationsByIDs(ctx context.Context, reservationIDs []string) (map[string]domain.Reservation, error) {
	args := m.Called(ctx, reservationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Reservation), args.Error(1)
}

// --- Mock OccupancyResolverSvc ---
type MockOccupancyResolver struct {
	mock.Mock
}

func (m *MockOccupancyResolver) ResolveActiveOccupancy(ctx context.Context, spaceID string, asOf time.Time) (*domain.Occupancy, error) {
	args := m.Called(ctx, spaceID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Occupancy), args.Error(1)
}

// --- Mock FolioLifecycleSvc ---
type MockFolioLifecycle struct {
	mock.Mock
}

func (m *MockFolioLifecycle) GetOrCreateOpenFolio(ctx context.Context, reservationID string, actorID string) (*domain.Folio, error) {
	args := m.Called(ctx, reservationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioLifecycle) CloseFolio(ctx context.Context, folioID string, actorID string) error {
	args := m.Called(ctx, folioID, actorID)
	return args.Error(0)
}

func (m *MockFolioLifecycle) ReopenFolio(ctx context.Context, folioID string, actorID string) error {
	args := m.Called(ctx, folioID, actorID)
	return args.Error(0)
}
