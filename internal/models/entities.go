package models

import (
	"time"

	"github.com/jinzhu/copier"
)

// Selection is the user's in-progress seat choice. Mutable until confirmed.
type Selection struct {
	MovieID    *int64   `json:"movieId"`
	Seats      []string `json:"seats"`
	TotalPrice float64  `json:"totalPrice"`
}

// DefaultSelection is the empty selection the aggregate starts with and
// returns to after a reset or a posted ticket.
func DefaultSelection() Selection {
	return Selection{MovieID: nil, Seats: []string{}, TotalPrice: 0}
}

// Clone returns a deep copy. History entries and confirmed snapshots must
// never alias the live selection's seat slice.
func (s Selection) Clone() Selection {
	var out Selection
	_ = copier.CopyWithOption(&out, &s, copier.Option{DeepCopy: true})
	if out.Seats == nil {
		out.Seats = []string{}
	}
	return out
}

// Ticket mirrors the ticketing service's resource.
type Ticket struct {
	ID                   string   `json:"id"`
	Client               *string  `json:"client,omitempty"`
	Reference            string   `json:"reference"`
	TheaterMovieTitle    string   `json:"theater_movie_title"`
	TheaterMovieDatetime string   `json:"theater_movie_datetime"`
	TheaterSeats         []string `json:"theater_seats"`
	Payment              any      `json:"payment,omitempty"`
	Status               string   `json:"status"`
	CreatedAt            *string  `json:"created_at,omitempty"`
	UpdatedAt            *string  `json:"updated_at,omitempty"`
}

// Ticket statuses as the ticketing service reports them.
const (
	TicketStatusPending   = "pending"
	TicketStatusPaid      = "paid"
	TicketStatusCancelled = "cancelled"
)

// ConfirmedPurchaseSnapshot captures a purchase at the instant it was
// confirmed. It is created exactly once per confirmation and never mutated
// afterwards.
type ConfirmedPurchaseSnapshot struct {
	Selection    Selection `json:"selection"`
	PaymentID    *string   `json:"paymentId"`
	PixStatus    *string   `json:"pixStatus"`
	PixAmount    float64   `json:"pixAmount"`
	PixReference *string   `json:"pixReference"`
	ConfirmedAt  time.Time `json:"confirmedAt"`
}

// Clone returns a deep copy.
func (c *ConfirmedPurchaseSnapshot) Clone() *ConfirmedPurchaseSnapshot {
	if c == nil {
		return nil
	}
	out := *c
	out.Selection = c.Selection.Clone()
	return &out
}

// TicketState is the aggregate owned by the ticket service. Loading and
// error flags are partitioned per concern: IsLoading/Error for generic
// ticket operations, PixIsLoading/PixError for payment operations.
type TicketState struct {
	Tickets               []Ticket                   `json:"tickets"`
	History               []Selection                `json:"history"`
	Selection             Selection                  `json:"selection"`
	Response              string                     `json:"response"`
	PixPayment            *PaymentSnapshot           `json:"pixPayment"`
	IsLoading             bool                       `json:"isLoading"`
	Error                 *string                    `json:"error"`
	PixIsLoading          bool                       `json:"pixIsLoading"`
	PixError              *string                    `json:"pixError"`
	LastConfirmedPurchase *ConfirmedPurchaseSnapshot `json:"lastConfirmedPurchase"`
	LastUpdated           time.Time                  `json:"lastUpdated"`
}

// NewTicketState returns the empty aggregate.
func NewTicketState() TicketState {
	return TicketState{
		Tickets:   []Ticket{},
		History:   []Selection{},
		Selection: DefaultSelection(),
	}
}

// PersistedState is the projection written to the persistence sink. Loading
// and error flags are transient and intentionally excluded.
type PersistedState struct {
	History               []Selection                `json:"history"`
	Selection             Selection                  `json:"selection"`
	Tickets               []Ticket                   `json:"tickets"`
	LastConfirmedPurchase *ConfirmedPurchaseSnapshot `json:"lastConfirmedPurchase"`
}
