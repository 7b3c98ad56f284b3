package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// CheckoutEvaluationResponse is the checkout gate's verdict for a reservation.
type CheckoutEvaluationResponse struct {
	ReservationID     string          `json:"reservationID"`
	FolioID           *string         `json:"folioID,omitempty"`
	Classification    string          `json:"classification"`
	DaysDifference    int             `json:"daysDifference"`
	Balance           decimal.Decimal `json:"balance"`
	Blocking          bool            `json:"blocking"`
	ScheduledCheckout time.Time       `json:"scheduledCheckout"`
	EvaluatedAt       time.Time       `json:"evaluatedAt"`
}

// ToCheckoutEvaluationResponse converts a domain evaluation to its API form.
func ToCheckoutEvaluationResponse(e *domain.CheckoutEvaluation) CheckoutEvaluationResponse {
	return CheckoutEvaluationResponse{
		ReservationID:     e.ReservationID,
		FolioID:           e.FolioID,
		Classification:    string(e.Classification),
		DaysDifference:    e.DaysDifference,
		Balance:           e.Balance,
		Blocking:          e.Blocking,
		ScheduledCheckout: e.ScheduledCheckout,
		EvaluatedAt:       e.EvaluatedAt,
	}
}

// OccupancyResponse reports the active occupancy resolved for a space.
type OccupancyResponse struct {
	ReservationID string  `json:"reservationID"`
	OpenFolioID   *string `json:"openFolioID,omitempty"`
}

// ToOccupancyResponse converts a domain occupancy to its API representation.
func ToOccupancyResponse(o *domain.Occupancy) OccupancyResponse {
	return OccupancyResponse{
		ReservationID: o.ReservationID,
		OpenFolioID:   o.OpenFolioID,
	}
}
