package usecase

import (
	"fmt"
	"strings"

	"contactdesk-service/internal/domain/entity"
)

// PassengerFields carries the passenger-supplied inputs that accompany
// a composed message.
type PassengerFields struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

// Composer renders a contact record into the canonical outbound text.
// Compose is pure: the same record and fields always produce the same
// bytes, so it can be re-run on every keystroke.
type Composer struct {
	signature string
}

// NewComposer creates a composer with the given brand signature.
func NewComposer(signature string) *Composer {
	return &Composer{signature: signature}
}

// Compose renders the message. The bullet gates depend on the
// department kind, not on whether the source data happens to carry a
// value: a simple-kind record never renders address or map lines even
// when populated, a location-kind record renders whatever it has.
func (c *Composer) Compose(rec *entity.ContactRecord, fields PassengerFields) string {
	if rec == nil {
		return ""
	}

	place := rec.City
	if rec.Country != "" {
		place += ", " + rec.Country
	}

	lines := []string{
		fmt.Sprintf("Here are the official %s contact details for %s:", rec.Department, place),
		"",
	}

	if len(rec.Emails) > 0 {
		lines = append(lines, "• Email: "+strings.Join(rec.Emails, ", "))
	}
	if len(rec.Phones) > 0 {
		lines = append(lines, "• Phone: "+strings.Join(rec.Phones, " / "))
	}
	if rec.Address != "" && rec.Kind == entity.KindLocation {
		lines = append(lines, "• Address: "+rec.Address)
	}
	if rec.Hours != "" {
		lines = append(lines, "• Working hours: "+rec.Hours)
	}
	if rec.MapURL != "" && rec.Kind == entity.KindLocation {
		lines = append(lines, "• Map: "+rec.MapURL)
	}

	if note := strings.TrimSpace(fields.Note); note != "" {
		lines = append(lines, "", "Note: "+note)
	}

	lines = append(lines, "", c.signature)
	return strings.Join(lines, "\n")
}
