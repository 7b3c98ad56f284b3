package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
	"github.com/stayops/folio_ledger_app/internal/utils/ledger"
)

func item(id string, amount float64) domain.FolioItem {
	return domain.FolioItem{ItemID: id, Amount: decimal.NewFromFloat(amount)}
}

func payment(amount float64, status domain.PaymentStatus) domain.Payment {
	return domain.Payment{Amount: decimal.NewFromFloat(amount), Status: status}
}

func TestComputeBalance_ItemsMinusCompletedPayments(t *testing.T) {
	items := []domain.FolioItem{
		item("a", 120.50),
		item("b", 79.50),
		item("c", -20.00), // discount line
	}
	payments := []domain.Payment{
		payment(100.00, domain.PaymentCompleted),
		payment(9999.00, domain.PaymentPending), // must be ignored
		payment(50.00, domain.PaymentFailed),    // must be ignored
	}

	got := ledger.ComputeBalance(items, payments)
	assert.True(t, got.Equal(decimal.NewFromFloat(80.00)), "got %s", got)
}

func TestComputeBalance_EmptyFolioIsZero(t *testing.T) {
	got := ledger.ComputeBalance(nil, nil)
	assert.True(t, got.IsZero())
}

func TestComputeBalance_Idempotent(t *testing.T) {
	items := []domain.FolioItem{item("a", 42.42), item("b", 0.58)}
	payments := []domain.Payment{payment(10, domain.PaymentCompleted)}

	first := ledger.ComputeBalance(items, payments)
	second := ledger.ComputeBalance(items, payments)
	assert.True(t, first.Equal(second))
}

func TestComputeBalance_AddThenDeleteRoundTrip(t *testing.T) {
	items := []domain.FolioItem{item("a", 300)}
	payments := []domain.Payment{payment(100, domain.PaymentCompleted)}
	before := ledger.ComputeBalance(items, payments)

	withExtra := append(append([]domain.FolioItem{}, items...), item("x", 55.55))
	assert.False(t, ledger.ComputeBalance(withExtra, payments).Equal(before))

	// Removing the same item restores the original balance exactly.
	after := ledger.ComputeBalance(withExtra[:len(withExtra)-1], payments)
	assert.True(t, after.Equal(before))
}

func TestComputeBalance_MovePreservesCombinedTotal(t *testing.T) {
	moved := item("m", 75.25)
	from := []domain.FolioItem{item("a", 100), moved}
	to := []domain.FolioItem{item("b", 200)}

	combinedBefore := ledger.ComputeBalance(from, nil).Add(ledger.ComputeBalance(to, nil))

	fromAfter := from[:1]
	toAfter := append(append([]domain.FolioItem{}, to...), moved)

	combinedAfter := ledger.ComputeBalance(fromAfter, nil).Add(ledger.ComputeBalance(toAfter, nil))
	assert.True(t, combinedBefore.Equal(combinedAfter))

	// Each side changed by exactly the moved amount.
	assert.True(t, ledger.ComputeBalance(from, nil).Sub(ledger.ComputeBalance(fromAfter, nil)).Equal(moved.Amount))
	assert.True(t, ledger.ComputeBalance(toAfter, nil).Sub(ledger.ComputeBalance(to, nil)).Equal(moved.Amount))
}
