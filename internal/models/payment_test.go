package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentSnapshotUnknownFieldsLandInExtra(t *testing.T) {
	raw := `{"id":"p1","status":"pending","payer_email":"a@b.com","metadata":{"origin":"checkout"}}`

	var s PaymentSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	require.NotNil(t, s.ID)
	assert.Equal(t, "p1", *s.ID)
	assert.Equal(t, "a@b.com", s.Extra["payer_email"])
	assert.NotContains(t, s.Extra, "id")
	assert.NotContains(t, s.Extra, "status")

	out, err := json.Marshal(&s)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestNumberCoercion(t *testing.T) {
	var s PaymentSnapshot
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"45.90","transaction_amount":40}`), &s))

	amount, ok := s.Amount.Float64()
	require.True(t, ok)
	assert.Equal(t, 45.90, amount)

	txAmount, ok := s.TransactionAmount.Float64()
	require.True(t, ok)
	assert.Equal(t, 40.0, txAmount)
}

func TestNumberInvalidTokens(t *testing.T) {
	for _, raw := range []string{`"NaN"`, `"abc"`, `""`, `"Inf"`} {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(raw), &n))
		_, ok := n.Float64()
		assert.False(t, ok, "token %s should not coerce", raw)
	}

	var nilNumber *Number
	_, ok := nilNumber.Float64()
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	var s PaymentSnapshot
	require.NoError(t, json.Unmarshal([]byte(`{"status":"pending","point_of_interaction":{"transaction_data":{"qr_code":"A"}},"custom":"x"}`), &s))

	clone := s.Clone()
	mutated := "approved"
	clone.Status = &mutated
	clone.Extra["custom"] = "y"
	*clone.PointOfInteraction.TransactionData.QRCode = "B"

	assert.Equal(t, "pending", *s.Status)
	assert.Equal(t, "x", s.Extra["custom"])
	assert.Equal(t, "A", *s.PointOfInteraction.TransactionData.QRCode)
}

func TestSelectionCloneDoesNotAliasSeats(t *testing.T) {
	sel := Selection{Seats: []string{"A1", "A2"}, TotalPrice: 45}

	clone := sel.Clone()
	clone.Seats[0] = "Z9"

	assert.Equal(t, "A1", sel.Seats[0])
}
