package models

import "github.com/shopspring/decimal"

// FolioItem maps to the folio_items table.
type FolioItem struct {
	ItemID      string
	FolioID     string
	Source      string
	Description string
	Amount      decimal.Decimal
	TaxCode     *string // Nullable
	AuditFields
}
