package models

import "github.com/shopspring/decimal"

// FolioStatus mirrors domain.FolioStatus for DB storage.
type FolioStatus string

const (
	FolioOpen   FolioStatus = "OPEN"
	FolioClosed FolioStatus = "CLOSED"
)

// Folio maps to the folios table. Balance is a derived column, maintained by
// the repository's recompute step.
type Folio struct {
	FolioID       string
	ReservationID *string // Nullable
	Balance       decimal.Decimal
	Status        FolioStatus
	AuditFields
}
