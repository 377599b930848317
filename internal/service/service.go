package service

import (
	"context"

	"cinepix/internal/external"
	"cinepix/internal/messaging"
	"cinepix/internal/models"
)

// StateStore is the persistence sink for the durable projection of the
// purchase session. Loading/error flags never pass through it.
type StateStore interface {
	Save(ctx context.Context, key string, state *models.PersistedState) error
	Load(ctx context.Context, key string) (*models.PersistedState, error)
}

type Services struct {
	Tickets *TicketService
}

func NewServices(pixClient *external.PixClient, ticketingClient *external.TicketingClient, store StateStore, natsClient *messaging.NATSClient) *Services {
	return &Services{
		Tickets: NewTicketService(pixClient, ticketingClient, store, natsClient),
	}
}
