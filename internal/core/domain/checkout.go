package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateClassification describes how the actual departure date compares with the
// scheduled checkout date. It is informational and never blocks checkout by
// itself.
type DateClassification string

const (
	EarlyCheckout DateClassification = "EARLY_CHECKOUT"
	LateCheckout  DateClassification = "LATE_CHECKOUT"
	OnSchedule    DateClassification = "ON_SCHEDULE"
)

// ClassifyCheckoutDate compares the evaluation day with the scheduled checkout
// day and returns the classification plus the absolute day difference.
func ClassifyCheckoutDate(scheduledCheckout, asOf time.Time) (DateClassification, int) {
	scheduled := toDay(scheduledCheckout)
	day := toDay(asOf)
	days := int(day.Sub(scheduled).Hours() / 24)
	switch {
	case days < 0:
		return EarlyCheckout, -days
	case days > 0:
		return LateCheckout, days
	default:
		return OnSchedule, 0
	}
}

// CheckoutEvaluation is the checkout gate's verdict for a reservation.
type CheckoutEvaluation struct {
	ReservationID     string             `json:"reservationID"`
	FolioID           *string            `json:"folioID,omitempty"`
	Classification    DateClassification `json:"classification"`
	DaysDifference    int                `json:"daysDifference"`
	Balance           decimal.Decimal    `json:"balance"`
	Blocking          bool               `json:"blocking"`
	ScheduledCheckout time.Time          `json:"scheduledCheckout"`
	EvaluatedAt       time.Time          `json:"evaluatedAt"`
}
