package mapping

import (
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	"github.com/stayops/folio_ledger_app/internal/models"
)

func ToDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ReservationID: m.ReservationID,
		Status:        domain.ReservationStatus(m.Status),
		CheckinDate:   m.CheckinDate,
		CheckoutDate:  m.CheckoutDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainReservationSlice(ms []models.Reservation) []domain.Reservation {
	ds := make([]domain.Reservation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReservation(m)
	}
	return ds
}
