package repository

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailRepository sends email through the Gmail API on behalf of the
// authenticated account.
type GmailRepository struct {
	gmailService *gmail.Service
	fromEmail    string
	fromName     string
	logger       logger.Logger
}

// NewGmailRepository creates a new Gmail email repository
func NewGmailRepository(ctx context.Context, tokenSource oauth2.TokenSource, fromEmail, fromName string, logger logger.Logger) (repository.EmailRelay, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailRepository{
		gmailService: service,
		fromEmail:    fromEmail,
		fromName:     fromName,
		logger:       logger,
	}, nil
}

// SendEmail dispatches one email as a multipart/alternative MIME
// message via users.messages.send.
func (r *GmailRepository) SendEmail(ctx context.Context, msg *entity.EmailMessage) error {
	html := msg.HTML
	if html == "" {
		html = strings.ReplaceAll(msg.Text, "\n", "<br>")
	}

	const boundary = "contactdesk-alt"
	var raw strings.Builder
	fmt.Fprintf(&raw, "From: %s <%s>\r\n", r.fromName, r.fromEmail)
	fmt.Fprintf(&raw, "To: %s\r\n", msg.To)
	fmt.Fprintf(&raw, "Subject: %s\r\n", msg.Subject)
	raw.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&raw, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&raw, "--%s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, msg.Text)
	fmt.Fprintf(&raw, "--%s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n", boundary, html)
	fmt.Fprintf(&raw, "--%s--", boundary)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw.String())),
	}

	if _, err := r.gmailService.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send via Gmail: %w", err)
	}

	r.logger.Info("Email sent via Gmail", "to", msg.To, "subject", msg.Subject)
	return nil
}
