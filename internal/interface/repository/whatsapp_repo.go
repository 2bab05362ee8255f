package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/pkg/logger"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v19.0"

// WhatsappRepository sends messages through the WhatsApp Business Cloud
// API using a business phone number id and a bearer token.
type WhatsappRepository struct {
	logger        logger.Logger
	baseURL       string
	bearerToken   string
	phoneNumberID string
	client        *http.Client
}

// NewWhatsappRepository creates a new WhatsApp repository
func NewWhatsappRepository(baseURL, bearerToken, phoneNumberID string, logger logger.Logger) repository.WhatsappRelay {
	if baseURL == "" {
		baseURL = defaultGraphBaseURL
	}
	return &WhatsappRepository{
		logger:        logger,
		baseURL:       baseURL,
		bearerToken:   bearerToken,
		phoneNumberID: phoneNumberID,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

type whatsappText struct {
	Body string `json:"body"`
}

type whatsappLanguage struct {
	Code string `json:"code"`
}

type whatsappParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type whatsappComponent struct {
	Type       string              `json:"type"`
	Parameters []whatsappParameter `json:"parameters"`
}

type whatsappTemplate struct {
	Name       string              `json:"name"`
	Language   whatsappLanguage    `json:"language"`
	Components []whatsappComponent `json:"components,omitempty"`
}

type whatsappMessage struct {
	MessagingProduct string            `json:"messaging_product"`
	To               string            `json:"to"`
	Type             string            `json:"type"`
	Text             *whatsappText     `json:"text,omitempty"`
	Template         *whatsappTemplate `json:"template,omitempty"`
}

// SendText sends a free-text message to a digits-only number.
func (r *WhatsappRepository) SendText(ctx context.Context, to, text string) error {
	msg := whatsappMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &whatsappText{Body: text},
	}
	return r.send(ctx, &msg)
}

// SendTemplate sends an approved template with its parameter vector in
// template body order.
func (r *WhatsappRepository) SendTemplate(ctx context.Context, to, template, lang string, params []string) error {
	if lang == "" {
		lang = "en"
	}

	tpl := whatsappTemplate{
		Name:     template,
		Language: whatsappLanguage{Code: lang},
	}
	if len(params) > 0 {
		component := whatsappComponent{Type: "body"}
		for _, p := range params {
			component.Parameters = append(component.Parameters, whatsappParameter{Type: "text", Text: p})
		}
		tpl.Components = []whatsappComponent{component}
	}

	msg := whatsappMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template:         &tpl,
	}
	return r.send(ctx, &msg)
}

func (r *WhatsappRepository) send(ctx context.Context, msg *whatsappMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", r.baseURL, r.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorBody struct {
			Error struct {
				Message string `json:"message"`
				Code    int    `json:"code"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		if errorBody.Error.Message != "" {
			return fmt.Errorf("WhatsApp API returned status %d: %s", resp.StatusCode, errorBody.Error.Message)
		}
		return fmt.Errorf("WhatsApp API returned status %d", resp.StatusCode)
	}

	r.logger.Info("Message sent via WhatsApp",
		"to", msg.To,
		"messageType", msg.Type)
	return nil
}
