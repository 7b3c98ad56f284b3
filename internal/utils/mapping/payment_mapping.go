package mapping

import (
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	"github.com/stayops/folio_ledger_app/internal/models"
)

func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		Source:      d.Source,
		SourceID:    d.SourceID,
		Method:      d.Method,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Reference:   d.Reference,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		Source:      m.Source,
		SourceID:    m.SourceID,
		Method:      m.Method,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Reference:   m.Reference,
		Status:      domain.PaymentStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
