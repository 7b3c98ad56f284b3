package domain

import "github.com/shopspring/decimal"

// PaymentStatus indicates the settlement state of a payment record. Only
// completed payments count toward a folio's balance.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PaymentSourceFolio scopes a payment to a folio via (source, sourceID).
const PaymentSourceFolio = "folio"

// Payment is a recorded payment application. Settlement with an external
// processor is out of scope; this is the persisted record only.
type Payment struct {
	PaymentID string          `json:"paymentID"` // Primary Key (UUID)
	Source    string          `json:"source"`    // e.g. "folio"
	SourceID  string          `json:"sourceID"`  // e.g. folio ID
	Method    string          `json:"method"`    // cash, card, transfer, ...
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
	Status    PaymentStatus   `json:"status"`
	AuditFields
}
