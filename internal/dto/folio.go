package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// CreateItemRequest is the payload for posting a charge line to a folio.
type CreateItemRequest struct {
	Source      string          `json:"source"` // Defaults to "manual"
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	TaxCode     *string         `json:"taxCode,omitempty"`
}

// ApplyDiscountRequest is the payload for applying a discount to a folio. The
// amount is taken as an absolute value and posted negated.
type ApplyDiscountRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// MoveItemRequest names the destination folio for an item move.
type MoveItemRequest struct {
	ToFolioID string `json:"toFolioID" binding:"required"`
}

// ListFolioItemsParams holds pagination parameters for listing folio items.
type ListFolioItemsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// FolioResponse is the API representation of a folio.
type FolioResponse struct {
	FolioID       string          `json:"folioID"`
	ReservationID *string         `json:"reservationID,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToFolioResponse converts a domain folio to its API representation.
func ToFolioResponse(f *domain.Folio) FolioResponse {
	return FolioResponse{
		FolioID:       f.FolioID,
		ReservationID: f.ReservationID,
		Balance:       f.Balance,
		Status:        string(f.Status),
		CreatedAt:     f.CreatedAt,
		LastUpdatedAt: f.LastUpdatedAt,
	}
}

// FolioItemResponse is the API representation of a folio item.
type FolioItemResponse struct {
	ItemID      string          `json:"itemID"`
	FolioID     string          `json:"folioID"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	TaxCode     *string         `json:"taxCode,omitempty"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToFolioItemResponse converts a domain item to its API representation.
func ToFolioItemResponse(item *domain.FolioItem) FolioItemResponse {
	return FolioItemResponse{
		ItemID:      item.ItemID,
		FolioID:     item.FolioID,
		Source:      string(item.Source),
		Description: item.Description,
		Amount:      item.Amount,
		TaxCode:     item.TaxCode,
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt,
	}
}

// ToFolioItemResponses converts a slice of domain items.
func ToFolioItemResponses(items []domain.FolioItem) []FolioItemResponse {
	resp := make([]FolioItemResponse, len(items))
	for i := range items {
		resp[i] = ToFolioItemResponse(&items[i])
	}
	return resp
}

// ListFolioItemsResponse is a page of folio items plus the next-page token.
type ListFolioItemsResponse struct {
	Items     []FolioItemResponse `json:"items"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// FolioSummaryResponse is the API representation of a folio's totals.
type FolioSummaryResponse struct {
	FolioID       string          `json:"folioID"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PaymentsTotal decimal.Decimal `json:"paymentsTotal"`
	Balance       decimal.Decimal `json:"balance"`
	ItemCount     int             `json:"itemCount"`
	PaymentCount  int             `json:"paymentCount"`
}

// ToFolioSummaryResponse converts a domain summary to its API representation.
func ToFolioSummaryResponse(s *domain.FolioSummary) FolioSummaryResponse {
	return FolioSummaryResponse{
		FolioID:       s.FolioID,
		Subtotal:      s.Subtotal,
		PaymentsTotal: s.PaymentsTotal,
		Balance:       s.Balance,
		ItemCount:     s.ItemCount,
		PaymentCount:  s.PaymentCount,
	}
}
