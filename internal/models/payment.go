package models

import "github.com/shopspring/decimal"

// Payment maps to the payments table. Rows are scoped by (source, source_id);
// folio payments use source='folio'.
type Payment struct {
	PaymentID string
	Source    string
	SourceID  string
	Method    string
	Amount    decimal.Decimal
	Currency  string
	Reference string
	Status    string
	AuditFields
}
