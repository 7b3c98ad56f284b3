package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stayops/folio_ledger_app/internal/apperrors"
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	portssvc "github.com/stayops/folio_ledger_app/internal/core/ports/services"
	"github.com/stayops/folio_ledger_app/internal/core/services"
	"github.com/stayops/folio_ledger_app/internal/dto"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockFolioRepo   *MockFolioRepository
	mockPaymentRepo *MockPaymentRepository
	service         portssvc.LedgerPostingSvc
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockFolioRepo = new(MockFolioRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewPostingService(suite.mockFolioRepo, suite.mockPaymentRepo)
}

func openFolio(folioID string) *domain.Folio {
	return &domain.Folio{FolioID: folioID, Status: domain.FolioOpen}
}

func closedFolio(folioID string) *domain.Folio {
	return &domain.Folio{FolioID: folioID, Status: domain.FolioClosed}
}

func (suite *PostingServiceTestSuite) TestAddItem_Success() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Description: "Laundry service",
		Amount:      decimal.NewFromInt(3500),
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(openFolio("folio-1"), nil).Once()
	suite.mockFolioRepo.On("SaveItem", ctx, mock.MatchedBy(func(item domain.FolioItem) bool {
		return item.FolioID == "folio-1" &&
			item.Source == domain.SourceManual &&
			item.Description == req.Description &&
			item.Amount.Equal(req.Amount) &&
			item.CreatedBy == "actor-1"
	})).Return(nil).Once()

	item, err := suite.service.AddItem(ctx, "folio-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.NotEmpty(item.ItemID)
	suite.mockFolioRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestAddItem_NegativeAmountAllowed() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Description: "Goodwill credit",
		Amount:      decimal.NewFromInt(-2000),
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(openFolio("folio-1"), nil).Once()
	suite.mockFolioRepo.On("SaveItem", ctx, mock.AnythingOfType("domain.FolioItem")).Return(nil).Once()

	item, err := suite.service.AddItem(ctx, "folio-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.True(item.Amount.IsNegative())
}

func (suite *PostingServiceTestSuite) TestAddItem_EmptyDescription() {
	ctx := context.Background()
	req := dto.CreateItemRequest{Description: "   ", Amount: decimal.NewFromInt(100)}

	item, err := suite.service.AddItem(ctx, "folio-1", req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestAddItem_ZeroAmount() {
	ctx := context.Background()
	req := dto.CreateItemRequest{Description: "Nothing", Amount: decimal.Zero}

	item, err := suite.service.AddItem(ctx, "folio-1", req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestAddItem_ClosedFolio() {
	ctx := context.Background()
	req := dto.CreateItemRequest{Description: "Late charge", Amount: decimal.NewFromInt(100)}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(closedFolio("folio-1"), nil).Once()

	item, err := suite.service.AddItem(ctx, "folio-1", req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, services.ErrFolioClosed)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestApplyDiscount_NegatesAndPrefixes() {
	ctx := context.Background()
	req := dto.ApplyDiscountRequest{
		Amount:      decimal.NewFromInt(5000),
		Description: "Cliente frecuente",
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(openFolio("folio-1"), nil).Once()
	suite.mockFolioRepo.On("SaveItem", ctx, mock.MatchedBy(func(item domain.FolioItem) bool {
		return strings.HasPrefix(item.Description, "Descuento: ") &&
			item.Amount.Equal(decimal.NewFromInt(-5000)) &&
			item.Source == domain.SourceManual
	})).Return(nil).Once()

	item, err := suite.service.ApplyDiscount(ctx, "folio-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal("Descuento: Cliente frecuente", item.Description)
	suite.True(item.Amount.IsNegative())
}

func (suite *PostingServiceTestSuite) TestApplyDiscount_NegativeInputStillNegated() {
	ctx := context.Background()
	req := dto.ApplyDiscountRequest{
		Amount:      decimal.NewFromInt(-5000),
		Description: "Cortesía",
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(openFolio("folio-1"), nil).Once()
	suite.mockFolioRepo.On("SaveItem", ctx, mock.MatchedBy(func(item domain.FolioItem) bool {
		return item.Amount.Equal(decimal.NewFromInt(-5000))
	})).Return(nil).Once()

	item, err := suite.service.ApplyDiscount(ctx, "folio-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.True(item.Amount.IsNegative())
}

func (suite *PostingServiceTestSuite) TestAddPayment_DefaultsToCompleted() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Method:   "card",
		Amount:   decimal.NewFromInt(10000),
		Currency: "cop",
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(openFolio("folio-1"), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Source == domain.PaymentSourceFolio &&
			p.SourceID == "folio-1" &&
			p.Status == domain.PaymentCompleted &&
			p.Currency == "COP"
	})).Return(nil).Once()

	payment, err := suite.service.AddPayment(ctx, "folio-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCompleted, payment.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestAddPayment_PendingStatusKept() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Method:   "transfer",
		Amount:   decimal.NewFromInt(10000),
		Currency: "COP",
		Status:   "PENDING",
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(openFolio("folio-1"), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentPending
	})).Return(nil).Once()

	payment, err := suite.service.AddPayment(ctx, "folio-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, payment.Status)
}

func (suite *PostingServiceTestSuite) TestAddPayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{Method: "cash", Amount: decimal.Zero, Currency: "COP"}

	payment, err := suite.service.AddPayment(ctx, "folio-1", req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestAddPayment_ClosedFolio() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{Method: "cash", Amount: decimal.NewFromInt(100), Currency: "COP"}

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(closedFolio("folio-1"), nil).Once()

	payment, err := suite.service.AddPayment(ctx, "folio-1", req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, services.ErrFolioClosed)
}

func (suite *PostingServiceTestSuite) TestDeleteItem_Success() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(openFolio("folio-1"), nil).Once()
	suite.mockFolioRepo.On("DeleteItem", ctx, "item-1", "folio-1").Return(nil).Once()

	err := suite.service.DeleteItem(ctx, "folio-1", "item-1")

	suite.Require().NoError(err)
	suite.mockFolioRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestDeleteItem_ClosedFolio() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-1").Return(closedFolio("folio-1"), nil).Once()

	err := suite.service.DeleteItem(ctx, "folio-1", "item-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFolioClosed)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "DeleteItem", mock.Anything, mock.Anything, mock.Anything)
}

func itemOnFolio(itemID, folioID string) *domain.FolioItem {
	return &domain.FolioItem{ItemID: itemID, FolioID: folioID, Amount: decimal.NewFromInt(1000)}
}

func (suite *PostingServiceTestSuite) TestMoveItem_Success() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindItemByID", ctx, "item-1").Return(itemOnFolio("item-1", "folio-a"), nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-a").Return(openFolio("folio-a"), nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-b").Return(openFolio("folio-b"), nil).Once()
	suite.mockFolioRepo.On("MoveItem", ctx, "item-1", "folio-a", "folio-b", "actor-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.MoveItem(ctx, "item-1", "folio-a", "folio-b", "actor-1")

	suite.Require().NoError(err)
	suite.mockFolioRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestMoveItem_SameFolio() {
	ctx := context.Background()

	err := suite.service.MoveItem(ctx, "item-1", "folio-a", "folio-a", "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "MoveItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestMoveItem_ItemNotFound() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindItemByID", ctx, "item-x").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.MoveItem(ctx, "item-x", "folio-a", "folio-b", "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "MoveItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestMoveItem_ItemOnDifferentFolio() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindItemByID", ctx, "item-1").Return(itemOnFolio("item-1", "folio-c"), nil).Once()

	err := suite.service.MoveItem(ctx, "item-1", "folio-a", "folio-b", "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "MoveItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestMoveItem_ClosedDestination() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindItemByID", ctx, "item-1").Return(itemOnFolio("item-1", "folio-a"), nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-a").Return(openFolio("folio-a"), nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-b").Return(closedFolio("folio-b"), nil).Once()

	err := suite.service.MoveItem(ctx, "item-1", "folio-a", "folio-b", "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFolioClosed)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "MoveItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestMoveItem_ConcurrentModification() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindItemByID", ctx, "item-1").Return(itemOnFolio("item-1", "folio-a"), nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-a").Return(openFolio("folio-a"), nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, "folio-b").Return(openFolio("folio-b"), nil).Once()
	suite.mockFolioRepo.On("MoveItem", ctx, "item-1", "folio-a", "folio-b", "actor-1", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConcurrentModification).Once()

	err := suite.service.MoveItem(ctx, "item-1", "folio-a", "folio-b", "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
}

func (suite *PostingServiceTestSuite) TestRecomputeBalance_Success() {
	ctx := context.Background()
	expected := decimal.NewFromInt(42000)

	suite.mockFolioRepo.On("RecomputeBalance", ctx, "folio-1").Return(expected, nil).Once()

	balance, err := suite.service.RecomputeBalance(ctx, "folio-1")

	suite.Require().NoError(err)
	suite.True(balance.Equal(expected))
}

func (suite *PostingServiceTestSuite) TestRecomputeBalance_Error() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockFolioRepo.On("RecomputeBalance", ctx, "folio-1").Return(decimal.Zero, expectedErr).Once()

	_, err := suite.service.RecomputeBalance(ctx, "folio-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
