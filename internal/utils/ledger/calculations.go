package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// ItemsTotal sums the signed amounts of all items.
func ItemsTotal(items []domain.FolioItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// CompletedPaymentsTotal sums the amounts of payments in completed status.
// Pending and failed payments never affect the balance.
func CompletedPaymentsTotal(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == domain.PaymentCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ComputeBalance derives a folio balance from its current items and payments:
// Σ item amounts − Σ completed payment amounts. The balance column is only
// ever the output of this projection, never an independently maintained
// counter, so a recompute after any mutation restores the invariant even if a
// previous write was partial or out of order.
func ComputeBalance(items []domain.FolioItem, payments []domain.Payment) decimal.Decimal {
	return ItemsTotal(items).Sub(CompletedPaymentsTotal(payments))
}
