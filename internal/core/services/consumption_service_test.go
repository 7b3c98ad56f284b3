package services_test

import (
	"context"
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

type ConsumptionServiceTestSuite struct {
	suite.Suite
	mockOccupancy *MockOccupancyResolver
	mockLifecycle *MockFolioLifecycle
	mockFolioRepo *MockFolioRepository
	service       portssvc.ConsumptionPostingSvc
}

func (suite *ConsumptionServiceTestSuite) SetupTest() {
	suite.mockOccupancy = new(MockOccupancyResolver)
	suite.mockLifecycle = new(MockFolioLifecycle)
	suite.mockFolioRepo = new(MockFolioRepository)
	suite.service = services.NewConsumptionService(suite.mockOccupancy, suite.mockLifecycle, suite.mockFolioRepo)
}

func minibarRequest() dto.AddConsumptionsRequest {
	return dto.AddConsumptionsRequest{
		Lines: []dto.ConsumptionLineRequest{
			{
				ProductID:   "prod-1",
				ProductName: "Agua mineral",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(3500),
			},
			{
				ProductID:   "prod-2",
				ProductName: "Cerveza",
				Quantity:    decimal.NewFromInt(3),
				UnitPrice:   decimal.NewFromInt(8000),
				Notes:       "sin vaso",
			},
		},
	}
}

func (suite *ConsumptionServiceTestSuite) TestAddConsumptions_Success() {
	ctx := context.Background()

	suite.mockOccupancy.On("ResolveActiveOccupancy", ctx, "space-1", mock.AnythingOfType("time.Time")).
		Return(&domain.Occupancy{ReservationID: "res-1"}, nil).Once()
	suite.mockLifecycle.On("GetOrCreateOpenFolio", ctx, "res-1", "actor-1").
		Return(&domain.Folio{FolioID: "folio-1", Status: domain.FolioOpen}, nil).Once()
	suite.mockFolioRepo.On("SaveItemsBatch", ctx, "folio-1", mock.MatchedBy(func(items []domain.FolioItem) bool {
		if len(items) != 2 {
			return false
		}
		first, second := items[0], items[1]
		return first.Source == domain.SourceRoomService &&
			first.Description == "2 x Agua mineral" &&
			first.Amount.Equal(decimal.NewFromInt(7000)) &&
			second.Description == "3 x Cerveza - sin vaso" &&
			second.Amount.Equal(decimal.NewFromInt(24000))
	})).Return(nil).Once()

	items, err := suite.service.AddConsumptions(ctx, "space-1", minibarRequest(), "actor-1")

	suite.Require().NoError(err)
	suite.Len(items, 2)
	suite.Equal("folio-1", items[0].FolioID)
	suite.mockOccupancy.AssertExpectations(suite.T())
	suite.mockLifecycle.AssertExpectations(suite.T())
	suite.mockFolioRepo.AssertExpectations(suite.T())
}

func (suite *ConsumptionServiceTestSuite) TestAddConsumptions_EmptyBatch() {
	ctx := context.Background()

	items, err := suite.service.AddConsumptions(ctx, "space-1", dto.AddConsumptionsRequest{}, "actor-1")

	suite.Require().Error(err)
	suite.Nil(items)
	suite.ErrorIs(err, apperrors.ErrValidation)
	// No folio may come into existence as a side effect of an empty batch.
	suite.mockOccupancy.AssertNotCalled(suite.T(), "ResolveActiveOccupancy", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLifecycle.AssertNotCalled(suite.T(), "GetOrCreateOpenFolio", mock.Anything, mock.Anything, mock.Anything)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "SaveItemsBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConsumptionServiceTestSuite) TestAddConsumptions_InvalidQuantity_NothingPosted() {
	ctx := context.Background()
	req := minibarRequest()
	req.Lines[1].Quantity = decimal.Zero

	items, err := suite.service.AddConsumptions(ctx, "space-1", req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(items)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOccupancy.AssertNotCalled(suite.T(), "ResolveActiveOccupancy", mock.Anything, mock.Anything, mock.Anything)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "SaveItemsBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConsumptionServiceTestSuite) TestAddConsumptions_InvalidUnitPrice() {
	ctx := context.Background()
	req := minibarRequest()
	req.Lines[0].UnitPrice = decimal.NewFromInt(-100)

	items, err := suite.service.AddConsumptions(ctx, "space-1", req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(items)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConsumptionServiceTestSuite) TestAddConsumptions_NoActiveOccupancy() {
	ctx := context.Background()

	suite.mockOccupancy.On("ResolveActiveOccupancy", ctx, "space-1", mock.AnythingOfType("time.Time")).
		Return(nil, services.ErrNoActiveOccupancy).Once()

	items, err := suite.service.AddConsumptions(ctx, "space-1", minibarRequest(), "actor-1")

	suite.Require().Error(err)
	suite.Nil(items)
	suite.ErrorIs(err, services.ErrNoActiveOccupancy)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "SaveItemsBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConsumptionServiceTestSuite) TestAddConsumptions_BatchFailure_PropagatesError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockOccupancy.On("ResolveActiveOccupancy", ctx, "space-1", mock.AnythingOfType("time.Time")).
		Return(&domain.Occupancy{ReservationID: "res-1"}, nil).Once()
	suite.mockLifecycle.On("GetOrCreateOpenFolio", ctx, "res-1", "actor-1").
		Return(&domain.Folio{FolioID: "folio-1", Status: domain.FolioOpen}, nil).Once()
	suite.mockFolioRepo.On("SaveItemsBatch", ctx, "folio-1", mock.Anything).Return(expectedErr).Once()

	items, err := suite.service.AddConsumptions(ctx, "space-1", minibarRequest(), "actor-1")

	suite.Require().Error(err)
	suite.Nil(items)
	suite.ErrorIs(err, expectedErr)
}

func (suite *ConsumptionServiceTestSuite) TestAddConsumptions_FractionalQuantity() {
	ctx := context.Background()
	req := dto.AddConsumptionsRequest{
		Lines: []dto.ConsumptionLineRequest{
			{
				ProductID:   "prod-3",
				ProductName: "Queso por libra",
				Quantity:    decimal.NewFromFloat(0.5),
				UnitPrice:   decimal.NewFromInt(12000),
			},
		},
	}

	suite.mockOccupancy.On("ResolveActiveOccupancy", ctx, "space-1", mock.AnythingOfType("time.Time")).
		Return(&domain.Occupancy{ReservationID: "res-1"}, nil).Once()
	suite.mockLifecycle.On("GetOrCreateOpenFolio", ctx, "res-1", "actor-1").
		Return(&domain.Folio{FolioID: "folio-1", Status: domain.FolioOpen}, nil).Once()
	suite.mockFolioRepo.On("SaveItemsBatch", ctx, "folio-1", mock.MatchedBy(func(items []domain.FolioItem) bool {
		return len(items) == 1 &&
			items[0].Description == "0.5 x Queso por libra" &&
			items[0].Amount.Equal(decimal.NewFromInt(6000))
	})).Return(nil).Once()

	items, err := suite.service.AddConsumptions(ctx, "space-1", req, "actor-1")

	suite.Require().NoError(err)
	suite.Len(items, 1)
}

func TestConsumptionService(t *testing.T) {
	suite.Run(t, new(ConsumptionServiceTestSuite))
}
