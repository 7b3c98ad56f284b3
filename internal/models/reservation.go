package models

import "time"

// Reservation maps to the reservations table. This subsystem only reads it.
type Reservation struct {
	ReservationID string
	Status        string
	CheckinDate   time.Time
	CheckoutDate  time.Time
	AuditFields
}
