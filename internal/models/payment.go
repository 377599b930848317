package models

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Number is a monetary value as the PIX provider sends it: sometimes a JSON
// number, sometimes a numeric string ("45.90"). The raw token is kept
// verbatim so a value we only pass through is never re-formatted.
type Number []byte

// NewNumber builds a Number from a plain float.
func NewNumber(v float64) *Number {
	n := Number(strconv.FormatFloat(v, 'f', -1, 64))
	return &n
}

// NewNumberString builds a Number carrying a string token, valid or not.
func NewNumberString(s string) *Number {
	b, _ := json.Marshal(s)
	n := Number(b)
	return &n
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = append((*n)[:0], data...)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if len(n) == 0 {
		return []byte("null"), nil
	}
	return n, nil
}

// Float64 reports the numeric value and whether it coerces to a finite
// number. Tokens like "NaN" or "abc" report false.
func (n *Number) Float64() (float64, bool) {
	if n == nil {
		return 0, false
	}
	s := strings.Trim(strings.TrimSpace(string(*n)), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (n *Number) String() string {
	if n == nil {
		return ""
	}
	return strings.Trim(string(*n), `"`)
}

// PixCollectorInfo identifies the receiving account holder.
type PixCollectorInfo struct {
	AccountHolderName *string `json:"account_holder_name,omitempty"`
}

type PixBankInfo struct {
	Collector *PixCollectorInfo `json:"collector,omitempty"`
}

// PixTransactionData carries the payable artifacts of a PIX charge.
type PixTransactionData struct {
	TicketURL    *string      `json:"ticket_url,omitempty"`
	QRCode       *string      `json:"qr_code,omitempty"`
	QRCodeBase64 *string      `json:"qr_code_base64,omitempty"`
	BankInfo     *PixBankInfo `json:"bank_info,omitempty"`
}

type PixPointOfInteraction struct {
	TransactionData *PixTransactionData `json:"transaction_data,omitempty"`
}

// PixTransactionDetails carries the settled amounts, which the provider only
// includes once the payment progresses.
type PixTransactionDetails struct {
	TotalPaidAmount   *Number `json:"total_paid_amount,omitempty"`
	NetReceivedAmount *Number `json:"net_received_amount,omitempty"`
	InstallmentAmount *Number `json:"installment_amount,omitempty"`
}

// PaymentSnapshot is a sparse, point-in-time view of the provider's payment
// resource. Every field is optional: any poll may include any subset, and an
// absent or null field never means "cleared". Provider fields that are not
// modeled here are carried in Extra so a later merge cannot drop them.
type PaymentSnapshot struct {
	ID                *string `json:"id,omitempty"`
	Amount            *Number `json:"amount,omitempty"`
	Description       *string `json:"description,omitempty"`
	Status            *string `json:"status,omitempty"`
	StatusDetail      *string `json:"status_detail,omitempty"`
	ExternalReference *string `json:"external_reference,omitempty"`
	TransactionAmount *Number `json:"transaction_amount,omitempty"`
	CurrencyID        *string `json:"currency_id,omitempty"`
	QRCode            *string `json:"qr_code,omitempty"`
	QRCodeBase64      *string `json:"qr_code_base64,omitempty"`
	QRCodeText        *string `json:"qr_code_text,omitempty"`
	CopyAndPaste      *string `json:"copy_and_paste,omitempty"`
	ExpiresAt         *string `json:"expires_at,omitempty"`
	DateOfExpiration  *string `json:"date_of_expiration,omitempty"`

	PointOfInteraction *PixPointOfInteraction `json:"point_of_interaction,omitempty"`
	TransactionDetails *PixTransactionDetails `json:"transaction_details,omitempty"`

	// Extra carries provider-specific fields not modeled above.
	Extra map[string]any `json:"-"`
}

// snapshotFieldKeys is the set of JSON keys bound to struct fields; anything
// else lands in Extra.
var snapshotFieldKeys = func() map[string]struct{} {
	keys := make(map[string]struct{})
	t := reflect.TypeOf(PaymentSnapshot{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}()

func (p *PaymentSnapshot) UnmarshalJSON(data []byte) error {
	type alias PaymentSnapshot
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range snapshotFieldKeys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}
	a.Extra = raw

	*p = PaymentSnapshot(a)
	return nil
}

func (p PaymentSnapshot) MarshalJSON() ([]byte, error) {
	type alias PaymentSnapshot
	base, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return base, nil
	}

	var out map[string]any
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, known := snapshotFieldKeys[k]; !known {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// Clone returns a deep copy. The JSON round-trip goes through the custom
// codecs above, so the passthrough bag and raw numeric tokens survive intact.
func (p *PaymentSnapshot) Clone() *PaymentSnapshot {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	out := &PaymentSnapshot{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil
	}
	return out
}
