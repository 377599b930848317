package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cinepix/internal/models"
)

// TicketingClient talks to the ticket-creation REST service.
type TicketingClient struct {
	baseURL    string
	httpClient *http.Client
}

type TicketingConfig struct {
	BaseURL string
	Timeout time.Duration
}

func NewTicketingClient(cfg TicketingConfig) *TicketingClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &TicketingClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CreateTicket posts a partial ticket and returns the created resource.
func (tc *TicketingClient) CreateTicket(req *models.CreateTicketRequest) (*models.Ticket, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := tc.httpClient.Post(tc.baseURL+"/tickets/", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
