package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayops/folio_ledger_app/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 6, 10, 15, 4, 5, 123456789, time.UTC)
	id := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_NotBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-a-token!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeToken("MjAyNC0wNi0xMFQwMDowMDowMFo=") // no "|id" part
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	_, _, err := pagination.DecodeToken("bm90LWEtdGltZXxzb21lLWlk") // "not-a-time|some-id"
	assert.Error(t, err)
}
