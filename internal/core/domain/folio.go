package domain

import "github.com/shopspring/decimal"

// FolioStatus indicates the lifecycle state of a folio.
type FolioStatus string

const (
	FolioOpen   FolioStatus = "OPEN"
	FolioClosed FolioStatus = "CLOSED"
)

// Folio is the per-occupancy billing ledger aggregate. Balance is a derived
// value: it is always recomputed from the current items and completed payments,
// never adjusted incrementally.
type Folio struct {
	FolioID       string          `json:"folioID"`                 // Primary Key (UUID)
	ReservationID *string         `json:"reservationID,omitempty"` // Owning occupancy; nil for walk-in folios
	Balance       decimal.Decimal `json:"balance"`                 // Derived: Σ items − Σ completed payments
	Status        FolioStatus     `json:"status"`
	AuditFields
}

// IsOpen reports whether the folio accepts postings.
func (f Folio) IsOpen() bool {
	return f.Status == FolioOpen
}

// FolioSummary is a read-model of a folio's totals.
type FolioSummary struct {
	FolioID       string          `json:"folioID"`
	Subtotal      decimal.Decimal `json:"subtotal"`      // Σ item amounts
	PaymentsTotal decimal.Decimal `json:"paymentsTotal"` // Σ completed payment amounts
	Balance       decimal.Decimal `json:"balance"`
	ItemCount     int             `json:"itemCount"`
	PaymentCount  int             `json:"paymentCount"`
}
