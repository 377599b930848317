package models

import "time"

// NATS subjects for purchase lifecycle events
const (
	EventPurchaseConfirmed   = "purchase.confirmed"
	EventPaymentRequested    = "payment.requested"
	EventPaymentStatusMerged = "payment.status_merged"
	EventTicketCreated       = "ticket.created"
)

// PurchaseConfirmedEvent is published when a selection is finalized into
// purchase history.
type PurchaseConfirmedEvent struct {
	MovieID   *int64    `json:"movie_id"`
	Seats     []string  `json:"seats"`
	Amount    float64   `json:"amount"`
	PaymentID *string   `json:"payment_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PaymentRequestedEvent is published after a PIX charge is created.
type PaymentRequestedEvent struct {
	PaymentID         string    `json:"payment_id"`
	ExternalReference string    `json:"external_reference"`
	Amount            string    `json:"amount"`
	Timestamp         time.Time `json:"timestamp"`
}

// PaymentStatusMergedEvent is published after a status poll is folded into
// the known payment snapshot.
type PaymentStatusMergedEvent struct {
	PaymentID string    `json:"payment_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketCreatedEvent is published after the ticketing service creates a
// ticket.
type TicketCreatedEvent struct {
	TicketID  string    `json:"ticket_id"`
	Reference string    `json:"reference"`
	Timestamp time.Time `json:"timestamp"`
}
