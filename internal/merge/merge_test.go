package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatIncomingWins(t *testing.T) {
	current := map[string]any{"status": "pending", "amount": 100.0}
	incoming := map[string]any{"status": "approved"}

	out := Flat(current, incoming)

	assert.Equal(t, "approved", out["status"])
	assert.Equal(t, 100.0, out["amount"])
}

func TestFlatNullAndAbsencePreserveCurrent(t *testing.T) {
	current := map[string]any{"status": "pending", "qr_code": "A"}
	incoming := map[string]any{"status": nil}

	out := Flat(current, incoming)

	assert.Equal(t, "pending", out["status"])
	assert.Equal(t, "A", out["qr_code"])
}

func TestFlatIdempotent(t *testing.T) {
	current := map[string]any{"status": "pending", "amount": 45.9}

	out := Flat(current, current)

	assert.Equal(t, current, out)
}

func TestFlatExcludedKeysSkipped(t *testing.T) {
	current := map[string]any{"point_of_interaction": "old"}
	incoming := map[string]any{"point_of_interaction": "new", "status": "approved"}

	out := Flat(current, incoming, "point_of_interaction")

	assert.Equal(t, "old", out["point_of_interaction"])
	assert.Equal(t, "approved", out["status"])
}

func TestFlatNilCurrentReturnsIncomingVerbatim(t *testing.T) {
	incoming := map[string]any{"status": nil, "amount": 30.0}

	out := Flat(nil, incoming)

	assert.Equal(t, incoming, out)
	assert.Nil(t, Flat(nil, nil))
}

func TestFlatDoesNotMutateInputs(t *testing.T) {
	current := map[string]any{"status": "pending"}
	incoming := map[string]any{"status": "approved", "extra": nil}

	out := Flat(current, incoming)
	out["status"] = "mutated"

	assert.Equal(t, "pending", current["status"])
	assert.Equal(t, "approved", incoming["status"])
}

func TestOverlay(t *testing.T) {
	known := "pending"
	fresh := "approved"

	assert.Equal(t, &fresh, Overlay(&known, &fresh))
	assert.Equal(t, &known, Overlay(&known, nil))
	assert.Equal(t, &fresh, Overlay(nil, &fresh))
	assert.Nil(t, Overlay[string](nil, nil))
}
