package domain

import "github.com/shopspring/decimal"

// ConsumptionLine is one point-of-sale style consumption entry for an occupied
// space, e.g. a minibar product. It is translated into a folio item.
type ConsumptionLine struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Notes       string          `json:"notes,omitempty"`
}

// Amount is the charge the line produces: quantity × unit price.
func (l ConsumptionLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}
