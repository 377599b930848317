package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cinepix/internal/models"
)

// PixClient talks to the PIX payment provider's REST facade.
type PixClient struct {
	baseURL    string
	httpClient *http.Client
}

type PixConfig struct {
	BaseURL string
	Timeout time.Duration
}

func NewPixClient(cfg PixConfig) *PixClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &PixClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CreatePayment posts a new PIX charge and returns the creation response,
// which is the authoritative first snapshot of the payment.
func (pc *PixClient) CreatePayment(req *models.PixPaymentRequest) (*models.PaymentSnapshot, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := pc.httpClient.Post(pc.baseURL+"/api/payments/pix/", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result models.PaymentSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// FetchStatus polls the provider for the payment's current state. Responses
// are partial by design; callers merge them into the known snapshot.
func (pc *PixClient) FetchStatus(paymentID string) (*models.PaymentSnapshot, error) {
	u := fmt.Sprintf("%s/api/payments/pix/webhook/?payment_id=%s", pc.baseURL, url.QueryEscape(paymentID))
	resp, err := pc.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result models.PaymentSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
