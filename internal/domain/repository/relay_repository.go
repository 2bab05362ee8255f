package repository

import (
	"context"

	"contactdesk-service/internal/domain/entity"
)

// EmailRelay dispatches one outbound email. Best effort, single attempt.
type EmailRelay interface {
	SendEmail(ctx context.Context, msg *entity.EmailMessage) error
}

// WhatsappRelay dispatches one outbound WhatsApp message, either free
// text or an approved template with its parameter vector.
type WhatsappRelay interface {
	SendText(ctx context.Context, to, text string) error
	SendTemplate(ctx context.Context, to, template, lang string, params []string) error
}

// RelayGateway forwards a composed relay request to an external gateway
// speaking the wire contract (type/sendTo/subject/... with an {ok}/
// {success} envelope).
type RelayGateway interface {
	Relay(ctx context.Context, req *entity.RelayRequest) error
}
