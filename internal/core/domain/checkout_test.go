package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

func TestClassifyCheckoutDate(t *testing.T) {
	scheduled := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		asOf           time.Time
		classification domain.DateClassification
		days           int
	}{
		{
			name:           "same day is on schedule",
			asOf:           time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC),
			classification: domain.OnSchedule,
			days:           0,
		},
		{
			name:           "two days before is early",
			asOf:           time.Date(2024, 6, 8, 23, 59, 0, 0, time.UTC),
			classification: domain.EarlyCheckout,
			days:           2,
		},
		{
			name:           "one day after is late",
			asOf:           time.Date(2024, 6, 11, 0, 1, 0, 0, time.UTC),
			classification: domain.LateCheckout,
			days:           1,
		},
		{
			name:           "time of day does not matter",
			asOf:           time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC),
			classification: domain.OnSchedule,
			days:           0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classification, days := domain.ClassifyCheckoutDate(scheduled, tc.asOf)
			assert.Equal(t, tc.classification, classification)
			assert.Equal(t, tc.days, days)
		})
	}
}

func TestReservationCoversDate(t *testing.T) {
	r := domain.Reservation{
		CheckinDate:  time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC),
		CheckoutDate: time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.CoversDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), "checkin day inclusive")
	assert.True(t, r.CoversDate(time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)), "checkout day inclusive")
	assert.True(t, r.CoversDate(time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)))
	assert.False(t, r.CoversDate(time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.CoversDate(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)))
}
