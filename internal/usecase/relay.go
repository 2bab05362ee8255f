package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/pkg/logger"
	"contactdesk-service/pkg/metrics"
	"contactdesk-service/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Message size limits enforced before dispatch.
const (
	MaxTextLen = 8000
	MaxHTMLLen = 20000
)

// RelayOrchestrator validates relay requests and dispatches them
// fire-and-once to the configured providers, or forwards them to an
// external gateway when one is configured. The outcome of the most
// recent attempt is kept as the single status indicator.
type RelayOrchestrator struct {
	validate *validator.Validate
	limiter  *rate.Limiter
	email    repository.EmailRelay
	whatsapp repository.WhatsappRelay
	gateway  repository.RelayGateway
	metrics  *metrics.Metrics
	logger   logger.Logger

	// Deployment-wide WhatsApp template, applied when a request names none.
	defaultTemplate     string
	defaultTemplateLang string

	mu         sync.Mutex
	lastStatus *entity.RelayStatus
}

// NewRelayOrchestrator creates a new relay orchestrator. Any of the
// providers may be nil; dispatching to a missing provider is a
// validation failure, not a crash. ratePerMin bounds relay attempts as
// a second anti-automation layer next to the honeypot.
func NewRelayOrchestrator(
	email repository.EmailRelay,
	whatsapp repository.WhatsappRelay,
	gateway repository.RelayGateway,
	ratePerMin int,
	m *metrics.Metrics,
	logger logger.Logger,
) *RelayOrchestrator {
	if ratePerMin <= 0 {
		ratePerMin = 10
	}
	return &RelayOrchestrator{
		validate: validator.New(),
		limiter:  rate.NewLimiter(rate.Limit(float64(ratePerMin)/60.0), ratePerMin),
		email:    email,
		whatsapp: whatsapp,
		gateway:  gateway,
		metrics:  m,
		logger:   logger,
	}
}

// SetWhatsAppTemplate configures the deployment-wide template used for
// WhatsApp requests that name none of their own.
func (o *RelayOrchestrator) SetWhatsAppTemplate(name, lang string) {
	o.defaultTemplate = name
	o.defaultTemplateLang = lang
}

// Dispatch runs one relay attempt: honeypot check, validation, then a
// single provider or gateway call. No retry, no queueing. The returned
// error is nil on success; the status is recorded either way.
func (o *RelayOrchestrator) Dispatch(ctx context.Context, req *entity.RelayRequest) (*entity.RelayStatus, error) {
	start := time.Now()
	status := &entity.RelayStatus{
		ID:      uuid.NewString(),
		Channel: req.Type,
		At:      start,
	}

	err := o.attempt(ctx, req)
	if err != nil {
		status.Error = err.Error()
		o.metrics.ErrorsCount.WithLabelValues("relay").Inc()
		o.logger.Warn("Relay attempt failed",
			"id", status.ID,
			"channel", req.Type,
			"error", err)
	} else {
		status.OK = true
		o.metrics.RelaysSent.Inc()
		o.logger.Info("Relay attempt succeeded",
			"id", status.ID,
			"channel", req.Type)
	}
	o.metrics.RelayTime.Observe(time.Since(start).Seconds())

	o.mu.Lock()
	o.lastStatus = status
	o.mu.Unlock()

	return status, err
}

// LastStatus returns the outcome of the most recent relay attempt.
func (o *RelayOrchestrator) LastStatus() *entity.RelayStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastStatus
}

func (o *RelayOrchestrator) attempt(ctx context.Context, req *entity.RelayRequest) error {
	// Honeypot first: a non-blank hidden field blocks the attempt with
	// a generic status that does not disclose the reason.
	if strings.TrimSpace(req.Company) != "" {
		o.logger.Debug("Relay blocked by honeypot")
		return entity.ErrBlocked
	}

	if !o.limiter.Allow() {
		return entity.ErrBlocked
	}

	if req.Type == entity.RelayWhatsApp && req.Template == "" && o.defaultTemplate != "" {
		req.Template = o.defaultTemplate
		if req.TemplateLang == "" {
			req.TemplateLang = o.defaultTemplateLang
		}
	}

	if err := o.validateRequest(req); err != nil {
		return err
	}

	switch req.Type {
	case entity.RelayEmail:
		return o.dispatchEmail(ctx, req)
	case entity.RelayWhatsApp:
		return o.dispatchWhatsApp(ctx, req)
	default:
		return &entity.ValidationError{Field: "type", Reason: "unsupported relay type"}
	}
}

// validateRequest rejects malformed requests before any network call.
func (o *RelayOrchestrator) validateRequest(req *entity.RelayRequest) error {
	if err := o.validate.Struct(req); err != nil {
		return &entity.ValidationError{Reason: err.Error()}
	}

	switch req.Type {
	case entity.RelayEmail:
		if req.SendTo == "" || req.Subject == "" || req.Text == "" {
			return &entity.ValidationError{Reason: "Missing fields: sendTo, subject, text are required"}
		}
	case entity.RelayWhatsApp:
		if utils.DigitsOnly(req.To) == "" {
			return &entity.ValidationError{Field: "to", Reason: "a digits-only phone number is required"}
		}
		if req.Text == "" && req.Template == "" {
			return &entity.ValidationError{Reason: "either text or template is required"}
		}
	}

	if len(req.Text) > MaxTextLen || len(req.HTML) > MaxHTMLLen {
		return &entity.ValidationError{Reason: "Message too large"}
	}
	return nil
}

func (o *RelayOrchestrator) dispatchEmail(ctx context.Context, req *entity.RelayRequest) error {
	if o.gateway != nil {
		return o.forward(ctx, req)
	}
	if o.email == nil {
		return &entity.ValidationError{Reason: "no email provider configured"}
	}

	html := req.HTML
	if html == "" {
		html = strings.ReplaceAll(req.Text, "\n", "<br>")
	}
	err := o.email.SendEmail(ctx, &entity.EmailMessage{
		To:      req.SendTo,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    html,
	})
	if err != nil {
		return &entity.RelayError{Channel: entity.RelayEmail, Message: err.Error()}
	}
	return nil
}

func (o *RelayOrchestrator) dispatchWhatsApp(ctx context.Context, req *entity.RelayRequest) error {
	if o.gateway != nil {
		return o.forward(ctx, req)
	}
	if o.whatsapp == nil {
		return &entity.ValidationError{Reason: "no WhatsApp provider configured"}
	}

	to := utils.DigitsOnly(req.To)
	var err error
	if req.Template != "" {
		err = o.whatsapp.SendTemplate(ctx, to, req.Template, req.TemplateLang, req.Params)
	} else {
		err = o.whatsapp.SendText(ctx, to, req.Text)
	}
	if err != nil {
		return &entity.RelayError{Channel: entity.RelayWhatsApp, Message: err.Error()}
	}
	return nil
}

func (o *RelayOrchestrator) forward(ctx context.Context, req *entity.RelayRequest) error {
	if err := o.gateway.Relay(ctx, req); err != nil {
		return &entity.RelayError{Channel: req.Type, Message: err.Error()}
	}
	return nil
}
