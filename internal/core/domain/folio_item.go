package domain

import "github.com/shopspring/decimal"

// ItemSource tags the origin of a folio item.
type ItemSource string

const (
	SourceManual      ItemSource = "manual"
	SourceRoomService ItemSource = "room_service"
)

// FolioItem is a single signed charge line on a folio. A negative amount is a
// discount or credit. An item belongs to exactly one folio at a time, but its
// owning folio can be reassigned (moved).
type FolioItem struct {
	ItemID      string          `json:"itemID"`  // Primary Key (UUID)
	FolioID     string          `json:"folioID"` // FK -> Folio.folioID (Not Null)
	Source      ItemSource      `json:"source"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Signed; negative = discount/credit
	TaxCode     *string         `json:"taxCode,omitempty"`
	AuditFields
}
