package mapping

import (
	"github.com/stayops/folio_ledger_app/internal/core/domain"
	"github.com/stayops/folio_ledger_app/internal/models"
)

func ToModelFolio(d domain.Folio) models.Folio {
	return models.Folio{
		FolioID:       d.FolioID,
		ReservationID: d.ReservationID,
		Balance:       d.Balance,
		Status:        models.FolioStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFolio(m models.Folio) domain.Folio {
	return domain.Folio{
		FolioID:       m.FolioID,
		ReservationID: m.ReservationID,
		Balance:       m.Balance,
		Status:        domain.FolioStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelFolioItem(d domain.FolioItem) models.FolioItem {
	return models.FolioItem{
		ItemID:      d.ItemID,
		FolioID:     d.FolioID,
		Source:      string(d.Source),
		Description: d.Description,
		Amount:      d.Amount,
		TaxCode:     d.TaxCode,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFolioItem(m models.FolioItem) domain.FolioItem {
	return domain.FolioItem{
		ItemID:      m.ItemID,
		FolioID:     m.FolioID,
		Source:      domain.ItemSource(m.Source),
		Description: m.Description,
		Amount:      m.Amount,
		TaxCode:     m.TaxCode,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainFolioItemSlice(ms []models.FolioItem) []domain.FolioItem {
	ds := make([]domain.FolioItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFolioItem(m)
	}
	return ds
}
