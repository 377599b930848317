package pix

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinepix/internal/models"
)

func snap(t *testing.T, raw string) *models.PaymentSnapshot {
	t.Helper()
	var s models.PaymentSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return &s
}

func asJSON(t *testing.T, s *models.PaymentSnapshot) string {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}

func TestReconcileIdempotent(t *testing.T) {
	current := snap(t, `{"id":"p1","status":"pending","transaction_details":{"total_paid_amount":100}}`)

	out := Reconcile(current, current)

	assert.JSONEq(t, asJSON(t, current), asJSON(t, out))
}

func TestReconcilePreservesOmittedFields(t *testing.T) {
	current := snap(t, `{"status":"pending","transaction_details":{"total_paid_amount":100}}`)
	incoming := snap(t, `{"status":"approved"}`)

	out := Reconcile(current, incoming)

	require.NotNil(t, out.Status)
	assert.Equal(t, "approved", *out.Status)
	require.NotNil(t, out.TransactionDetails)
	paid, ok := out.TransactionDetails.TotalPaidAmount.Float64()
	require.True(t, ok)
	assert.Equal(t, 100.0, paid)
}

func TestReconcileExplicitNullPreservesCurrent(t *testing.T) {
	current := snap(t, `{"status":"pending","qr_code":"A"}`)
	incoming := snap(t, `{"status":null,"qr_code":null,"status_detail":"accredited"}`)

	out := Reconcile(current, incoming)

	require.NotNil(t, out.Status)
	assert.Equal(t, "pending", *out.Status)
	require.NotNil(t, out.QRCode)
	assert.Equal(t, "A", *out.QRCode)
	require.NotNil(t, out.StatusDetail)
	assert.Equal(t, "accredited", *out.StatusDetail)
}

func TestReconcileNestedTransactionData(t *testing.T) {
	current := snap(t, `{"point_of_interaction":{"transaction_data":{"qr_code":"A"}}}`)
	incoming := snap(t, `{"point_of_interaction":{"transaction_data":{"qr_code_base64":"B"}}}`)

	out := Reconcile(current, incoming)

	require.NotNil(t, out.PointOfInteraction)
	data := out.PointOfInteraction.TransactionData
	require.NotNil(t, data)
	require.NotNil(t, data.QRCode)
	assert.Equal(t, "A", *data.QRCode)
	require.NotNil(t, data.QRCodeBase64)
	assert.Equal(t, "B", *data.QRCodeBase64)
}

func TestReconcileOmittedPointOfInteractionKept(t *testing.T) {
	current := snap(t, `{"point_of_interaction":{"transaction_data":{"ticket_url":"https://pay.example/t1"}},"transaction_details":{"net_received_amount":"44.10"}}`)
	incoming := snap(t, `{"status":"approved"}`)

	out := Reconcile(current, incoming)

	require.NotNil(t, out.PointOfInteraction)
	require.NotNil(t, out.PointOfInteraction.TransactionData)
	assert.Equal(t, "https://pay.example/t1", *out.PointOfInteraction.TransactionData.TicketURL)
	require.NotNil(t, out.TransactionDetails)
	net, ok := out.TransactionDetails.NetReceivedAmount.Float64()
	require.True(t, ok)
	assert.Equal(t, 44.10, net)
}

func TestReconcileBankInfoReplacedWhenPresent(t *testing.T) {
	current := snap(t, `{"point_of_interaction":{"transaction_data":{"bank_info":{"collector":{"account_holder_name":"Old Holder"}}}}}`)
	incoming := snap(t, `{"point_of_interaction":{"transaction_data":{"bank_info":{"collector":{"account_holder_name":"New Holder"}}}}}`)

	out := Reconcile(current, incoming)

	bank := out.PointOfInteraction.TransactionData.BankInfo
	require.NotNil(t, bank)
	require.NotNil(t, bank.Collector)
	assert.Equal(t, "New Holder", *bank.Collector.AccountHolderName)
}

func TestReconcileKeepsProviderExtraFields(t *testing.T) {
	current := snap(t, `{"status":"pending","payer_email":"a@b.com"}`)
	incoming := snap(t, `{"status":"approved","payment_method_id":"pix"}`)

	out := Reconcile(current, incoming)

	assert.Equal(t, "a@b.com", out.Extra["payer_email"])
	assert.Equal(t, "pix", out.Extra["payment_method_id"])
}

func TestReconcileNilCurrentTakesIncomingVerbatim(t *testing.T) {
	incoming := snap(t, `{"id":"p1","amount":"45.90","unmapped_field":{"deep":true}}`)

	out := Reconcile(nil, incoming)

	assert.JSONEq(t, asJSON(t, incoming), asJSON(t, out))
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	current := snap(t, `{"status":"pending","qr_code":"A"}`)
	incoming := snap(t, `{"status":"approved"}`)
	currentBefore := asJSON(t, current)
	incomingBefore := asJSON(t, incoming)

	out := Reconcile(current, incoming)
	approved := "paid"
	out.Status = &approved

	assert.JSONEq(t, currentBefore, asJSON(t, current))
	assert.JSONEq(t, incomingBefore, asJSON(t, incoming))
}

func TestReconcileOrderInsensitiveForConsistentSnapshots(t *testing.T) {
	a := snap(t, `{"status":"approved","transaction_details":{"total_paid_amount":50}}`)
	b := snap(t, `{"qr_code":"A","currency_id":"BRL"}`)
	base := snap(t, `{"id":"p1"}`)

	ab := Reconcile(Reconcile(base, a), b)
	ba := Reconcile(Reconcile(base, b), a)

	assert.JSONEq(t, asJSON(t, ab), asJSON(t, ba))
}
