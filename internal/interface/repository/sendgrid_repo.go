package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/pkg/logger"
)

const sendGridSendURL = "https://api.sendgrid.com/v3/mail/send"

// SendGridRepository sends email through the SendGrid v3 mail API
type SendGridRepository struct {
	logger    logger.Logger
	apiKey    string
	fromEmail string
	fromName  string
	client    *http.Client
}

// NewSendGridRepository creates a new SendGrid email repository
func NewSendGridRepository(apiKey, fromEmail, fromName string, logger logger.Logger) repository.EmailRelay {
	if fromName == "" {
		fromName = "Website"
	}
	return &SendGridRepository{
		logger:    logger,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress   `json:"from"`
	Subject string            `json:"subject"`
	Content []sendGridContent `json:"content"`
}

// SendEmail dispatches one email. A non-2xx answer surfaces the SendGrid
// response body as the error string.
func (r *SendGridRepository) SendEmail(ctx context.Context, msg *entity.EmailMessage) error {
	html := msg.HTML
	if html == "" {
		html = strings.ReplaceAll(msg.Text, "\n", "<br>")
	}

	payload := sendGridPayload{
		From:    sendGridAddress{Email: r.fromEmail, Name: r.fromName},
		Subject: msg.Subject,
		Content: []sendGridContent{
			{Type: "text/plain", Value: msg.Text},
			{Type: "text/html", Value: html},
		},
	}
	payload.Personalizations = append(payload.Personalizations, struct {
		To []sendGridAddress `json:"to"`
	}{To: []sendGridAddress{{Email: msg.To}}})

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", sendGridSendURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		errText := strings.TrimSpace(string(body))
		if errText == "" {
			errText = "SendGrid error"
		}
		return fmt.Errorf("%s", errText)
	}

	r.logger.Info("Email sent via SendGrid", "to", msg.To, "subject", msg.Subject)
	return nil
}
