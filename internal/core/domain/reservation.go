package domain

import "time"

// ReservationStatus indicates the state of a reservation.
type ReservationStatus string

const (
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
)

// Reservation is an external aggregate, read-only in this subsystem. Only the
// fields the ledger needs are modelled.
type Reservation struct {
	ReservationID string            `json:"reservationID"`
	Status        ReservationStatus `json:"status"`
	CheckinDate   time.Time         `json:"checkinDate"`
	CheckoutDate  time.Time         `json:"checkoutDate"`
	AuditFields
}

// IsOccupying reports whether the reservation's status counts it as currently
// holding its spaces (confirmed or checked-in).
func (r Reservation) IsOccupying() bool {
	return r.Status == ReservationConfirmed || r.Status == ReservationCheckedIn
}

// CoversDate reports whether asOf falls inside the reservation's stay range.
// Both the checkin and checkout days are inclusive; comparison is at day
// precision in UTC.
func (r Reservation) CoversDate(asOf time.Time) bool {
	day := toDay(asOf)
	return !day.Before(toDay(r.CheckinDate)) && !day.After(toDay(r.CheckoutDate))
}

func toDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Occupancy pairs the active reservation for a space with its open folio, if
// one exists. A nil OpenFolioID signals "create on demand" to the caller.
type Occupancy struct {
	ReservationID string  `json:"reservationID"`
	OpenFolioID   *string `json:"openFolioID,omitempty"`
}
