package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "cinepix/internal/errors"
	"cinepix/internal/external"
	"cinepix/internal/logger"
	"cinepix/internal/messaging"
	"cinepix/internal/models"
	"cinepix/internal/pix"
)

// stateKey is the sink key for the session projection.
const stateKey = "purchase:session"

// TicketService owns the ticket/payment aggregate. All in-memory mutation
// happens under the mutex; the external calls (payment creation, status
// poll, ticket creation) run outside it, so two overlapping operations may
// interleave at those points and the last response to return determines the
// merge order applied to the payment snapshot.
type TicketService struct {
	mu    sync.Mutex
	state models.TicketState

	pixClient       *external.PixClient
	ticketingClient *external.TicketingClient
	store           StateStore
	natsClient      *messaging.NATSClient
}

func NewTicketService(pixClient *external.PixClient, ticketingClient *external.TicketingClient, store StateStore, natsClient *messaging.NATSClient) *TicketService {
	return &TicketService{
		state:           models.NewTicketState(),
		pixClient:       pixClient,
		ticketingClient: ticketingClient,
		store:           store,
		natsClient:      natsClient,
	}
}

// Rehydrate loads the persisted projection, if any, into the aggregate. It
// replaces the projected fields as a whole, never partially. Loading and
// error flags always start clean.
func (s *TicketService) Rehydrate(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	persisted, err := s.store.Load(ctx, stateKey)
	if err != nil {
		return fmt.Errorf("failed to load persisted state: %w", err)
	}
	if persisted == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.History = persisted.History
	s.state.Selection = persisted.Selection
	s.state.Tickets = persisted.Tickets
	s.state.LastConfirmedPurchase = persisted.LastConfirmedPurchase

	if s.state.History == nil {
		s.state.History = []models.Selection{}
	}
	if s.state.Tickets == nil {
		s.state.Tickets = []models.Ticket{}
	}
	if s.state.Selection.Seats == nil {
		s.state.Selection.Seats = []string{}
	}

	return nil
}

// State returns a deep copy of the aggregate for read-only consumers.
func (s *TicketService) State() models.TicketState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Tickets = cloneTickets(s.state.Tickets)
	out.History = cloneHistory(s.state.History)
	out.Selection = s.state.Selection.Clone()
	out.PixPayment = s.state.PixPayment.Clone()
	out.LastConfirmedPurchase = s.state.LastConfirmedPurchase.Clone()
	return out
}

// SaveSelection replaces the current selection wholesale. No validation
// beyond shape; seats are only checked at confirmation time.
func (s *TicketService) SaveSelection(ctx context.Context, movieID *int64, seats []string, totalPrice float64) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Selection = models.Selection{
		MovieID:    movieID,
		Seats:      append([]string{}, seats...),
		TotalPrice: totalPrice,
	}
	s.state.LastUpdated = time.Now()
	s.persistLocked(ctx)

	return s.state.Selection.Clone()
}

// ResetSelection restores the empty default selection.
func (s *TicketService) ResetSelection(ctx context.Context) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Selection = models.DefaultSelection()
	s.state.LastUpdated = time.Now()
	s.persistLocked(ctx)

	return s.state.Selection.Clone()
}

// ConfirmPurchase finalizes the current selection: appends it to history and
// captures the confirmed-purchase snapshot with the resolved paid amount,
// read from the payment snapshot and selection as of this instant. Fails
// without side effects when no seats are selected.
func (s *TicketService) ConfirmPurchase(ctx context.Context) (*models.ConfirmedPurchaseSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Error = nil
	s.state.IsLoading = true
	defer func() { s.state.IsLoading = false }()

	if len(s.state.Selection.Seats) == 0 {
		msg := apperrors.ErrEmptySelection.Error()
		s.state.Error = &msg
		return nil, apperrors.ErrEmptySelection
	}

	selection := s.state.Selection.Clone()
	s.state.History = append(s.state.History, selection)

	amount := pix.ResolveConfirmedAmount(s.state.PixPayment, selection)

	snapshot := &models.ConfirmedPurchaseSnapshot{
		Selection:   selection.Clone(),
		PixAmount:   amount,
		ConfirmedAt: time.Now(),
	}
	if p := s.state.PixPayment; p != nil {
		snapshot.PaymentID = p.ID
		snapshot.PixStatus = p.Status
		snapshot.PixReference = p.ExternalReference
	}

	s.state.LastConfirmedPurchase = snapshot
	s.state.LastUpdated = time.Now()
	s.persistLocked(ctx)

	s.publish(ctx, models.EventPurchaseConfirmed, models.PurchaseConfirmedEvent{
		MovieID:   selection.MovieID,
		Seats:     selection.Seats,
		Amount:    amount,
		PaymentID: snapshot.PaymentID,
		Timestamp: snapshot.ConfirmedAt,
	})

	return snapshot.Clone(), nil
}

// RequestPixPayment creates a new PIX charge and stores the creation
// response as the payment snapshot — replacing, not merging, since the
// creation response is the first authoritative view. Unlike status polling,
// failures here surface to the caller.
func (s *TicketService) RequestPixPayment(ctx context.Context, req *models.PixPaymentRequest) (*models.PaymentSnapshot, error) {
	s.mu.Lock()
	s.state.PixError = nil
	s.state.PixIsLoading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state.PixIsLoading = false
		s.mu.Unlock()
	}()

	if req.ExternalReference == "" {
		req.ExternalReference = uuid.New().String()
	}

	created, err := s.pixClient.CreatePayment(req)
	if err != nil {
		s.recordPixError(fmt.Sprintf("failed to create PIX payment: %v", err))
		return nil, fmt.Errorf("failed to create PIX payment: %w", err)
	}

	s.mu.Lock()
	s.state.PixPayment = created
	s.state.LastUpdated = time.Now()
	s.mu.Unlock()

	paymentID := ""
	if created.ID != nil {
		paymentID = *created.ID
	}
	s.publish(ctx, models.EventPaymentRequested, models.PaymentRequestedEvent{
		PaymentID:         paymentID,
		ExternalReference: req.ExternalReference,
		Amount:            req.Amount,
		Timestamp:         time.Now(),
	})

	return created.Clone(), nil
}

// CheckPixPaymentStatus polls the provider and folds the partial response
// into the known payment snapshot. It is built for timer-driven polling:
// every failure is recorded and swallowed so a poll loop is never aborted.
// An absent payment ID is a no-op.
func (s *TicketService) CheckPixPaymentStatus(ctx context.Context, paymentID string) {
	if paymentID == "" {
		return
	}

	s.mu.Lock()
	s.state.PixError = nil
	s.mu.Unlock()

	snapshot, err := s.pixClient.FetchStatus(paymentID)
	if err != nil {
		pixStatusPolls.WithLabelValues("error").Inc()
		logger.WithContext(ctx).Error("Failed to fetch PIX payment status",
			"error", err,
			"payment_id", paymentID)
		s.recordPixError(fmt.Sprintf("failed to fetch PIX payment status: %v", err))
		return
	}
	pixStatusPolls.WithLabelValues("ok").Inc()

	if snapshot == nil {
		return
	}

	s.mu.Lock()
	s.state.PixPayment = pix.Reconcile(s.state.PixPayment, snapshot)
	s.state.LastUpdated = time.Now()
	status := ""
	if s.state.PixPayment.Status != nil {
		status = *s.state.PixPayment.Status
	}
	s.mu.Unlock()
	pixSnapshotMerges.Inc()

	s.publish(ctx, models.EventPaymentStatusMerged, models.PaymentStatusMergedEvent{
		PaymentID: paymentID,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// PostNewTicket creates the ticket with the ticketing service, appends it to
// the aggregate and resets the selection for the next purchase.
func (s *TicketService) PostNewTicket(ctx context.Context, req *models.CreateTicketRequest) (*models.Ticket, error) {
	s.mu.Lock()
	s.state.Error = nil
	s.state.IsLoading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state.IsLoading = false
		s.mu.Unlock()
	}()

	ticket, err := s.ticketingClient.CreateTicket(req)
	if err != nil {
		s.mu.Lock()
		msg := fmt.Sprintf("failed to create ticket: %v", err)
		s.state.Error = &msg
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.mu.Lock()
	s.state.Tickets = append(s.state.Tickets, *ticket)
	s.state.Response = fmt.Sprintf("Ticket %s created", ticket.Reference)
	s.state.Selection = models.DefaultSelection()
	s.state.LastUpdated = time.Now()
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, models.EventTicketCreated, models.TicketCreatedEvent{
		TicketID:  ticket.ID,
		Reference: ticket.Reference,
		Timestamp: time.Now(),
	})

	return ticket, nil
}

// persistLocked writes the durable projection through to the sink. Must be
// called with the mutex held. Failures are logged, not surfaced.
func (s *TicketService) persistLocked(ctx context.Context) {
	if s.store == nil {
		return
	}

	projection := &models.PersistedState{
		History:               s.state.History,
		Selection:             s.state.Selection,
		Tickets:               s.state.Tickets,
		LastConfirmedPurchase: s.state.LastConfirmedPurchase,
	}

	if err := s.store.Save(ctx, stateKey, projection); err != nil {
		logger.WithContext(ctx).Error("Failed to persist purchase state", "error", err)
	}
}

func (s *TicketService) recordPixError(msg string) {
	s.mu.Lock()
	s.state.PixError = &msg
	s.mu.Unlock()
}

func (s *TicketService) publish(ctx context.Context, subject string, data any) {
	if s.natsClient == nil {
		return
	}
	if err := s.natsClient.Publish(subject, data); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}

func cloneTickets(in []models.Ticket) []models.Ticket {
	out := make([]models.Ticket, len(in))
	for i, t := range in {
		out[i] = t
		out[i].TheaterSeats = append([]string{}, t.TheaterSeats...)
	}
	return out
}

func cloneHistory(in []models.Selection) []models.Selection {
	out := make([]models.Selection, len(in))
	for i, sel := range in {
		out[i] = sel.Clone()
	}
	return out
}
