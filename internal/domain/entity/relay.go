package entity

import "time"

// RelayType selects the outbound channel of a relay request.
type RelayType string

const (
	RelayEmail    RelayType = "email"
	RelayWhatsApp RelayType = "whatsapp"
)

// RelayRequest is the wire body accepted by the relay gateway.
// Email requests carry sendTo/subject/text (html optional), WhatsApp
// requests carry a digits-only `to` with either free text or an approved
// template name plus its parameter vector. Company is a hidden honeypot
// field: a non-blank value blocks the attempt.
type RelayRequest struct {
	Type         RelayType `json:"type" validate:"required,oneof=email whatsapp"`
	SendTo       string    `json:"sendTo,omitempty" validate:"omitempty,email"`
	Subject      string    `json:"subject,omitempty"`
	Text         string    `json:"text,omitempty"`
	HTML         string    `json:"html,omitempty"`
	To           string    `json:"to,omitempty"`
	Template     string    `json:"template,omitempty"`
	TemplateLang string    `json:"template_lang,omitempty"`
	Params       []string  `json:"params,omitempty"`
	Company      string    `json:"company,omitempty"`
}

// RelayResponse is the gateway success/failure envelope. Older gateway
// deployments answer with `success` instead of `ok`; clients must accept
// either field as the success discriminant.
type RelayResponse struct {
	OK      *bool  `json:"ok,omitempty"`
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Delivered reports whether the envelope signals success under either
// discriminant.
func (r *RelayResponse) Delivered() bool {
	if r.OK != nil && *r.OK {
		return true
	}
	return r.Success != nil && *r.Success
}

// EmailMessage is one outbound email handed to a mail provider.
type EmailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// RelayStatus records the outcome of the most recent relay attempt.
type RelayStatus struct {
	ID      string    `json:"id"`
	Channel RelayType `json:"channel"`
	OK      bool      `json:"ok"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}
