// Package templates holds the outbound message shapes shared by the
// relay channels: the email subject, the text-to-HTML conversion and
// the WhatsApp template parameter vector.
package templates

import (
	"fmt"
	"html"
	"strings"
)

// DefaultRecipientName fills the first template slot when the passenger
// name is unknown.
const DefaultRecipientName = "Customer"

// EmailSubject builds the outbound email subject for a department/city
// selection.
func EmailSubject(department, city string) string {
	return fmt.Sprintf("[Flydubai Contacts] %s – %s", department, city)
}

// TextToHTML converts composed plain text into the HTML body variant.
func TextToHTML(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

// TemplateParams builds the WhatsApp template parameter vector. The
// order must match the approved template body:
// {{1}} recipient name, {{2}} department, {{3}} city, {{4}} department
// email, {{5}} department phone, {{6}} optional note.
func TemplateParams(name, department, city, email, phone, note string) []string {
	if strings.TrimSpace(name) == "" {
		name = DefaultRecipientName
	}
	return []string{name, department, city, email, phone, note}
}
