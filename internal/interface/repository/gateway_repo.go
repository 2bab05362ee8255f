package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/pkg/logger"
)

// GatewayRepository forwards relay requests to an external relay
// gateway over its JSON contract. Success is signalled by either an
// `ok` or a `success` field; both are accepted for compatibility with
// older gateway deployments.
type GatewayRepository struct {
	logger   logger.Logger
	endpoint string
	client   *http.Client
}

// NewGatewayRepository creates a new relay gateway client
func NewGatewayRepository(endpoint string, logger logger.Logger) repository.RelayGateway {
	return &GatewayRepository{
		logger:   logger,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Relay posts the request and interprets the success envelope. Gateway
// failures surface the gateway's error string verbatim.
func (r *GatewayRepository) Relay(ctx context.Context, relayReq *entity.RelayRequest) error {
	jsonData, err := json.Marshal(relayReq)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var envelope entity.RelayResponse
	// A body that fails to decode counts as a failed relay below.
	json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !envelope.Delivered() {
		if envelope.Error != "" {
			return fmt.Errorf("%s", envelope.Error)
		}
		return fmt.Errorf("relay gateway returned status %d", resp.StatusCode)
	}

	r.logger.Info("Request forwarded to relay gateway",
		"endpoint", r.endpoint,
		"type", relayReq.Type)
	return nil
}
