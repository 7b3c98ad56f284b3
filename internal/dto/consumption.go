package dto

import "github.com/shopspring/decimal"

// ConsumptionLineRequest is one consumption entry for an occupied space.
type ConsumptionLineRequest struct {
	ProductID   string          `json:"productID" binding:"required"`
	ProductName string          `json:"productName" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Notes       string          `json:"notes"`
}

// AddConsumptionsRequest is the payload for posting a batch of consumptions.
type AddConsumptionsRequest struct {
	Lines []ConsumptionLineRequest `json:"lines" binding:"required,min=1,dive"`
}
