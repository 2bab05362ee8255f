package utils

import (
	"net/url"
	"strings"
)

// DigitsOnly strips every non-digit rune from a phone number, turning
// "+971 5X XXX XXXX" into "9715XXXXXXX" for WhatsApp addressing.
func DigitsOnly(phone string) string {
	out := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}

// ClickToChatURL builds the wa.me fallback link used when no relay
// gateway is configured, or as a manual-send escape hatch.
func ClickToChatURL(phone, text string) string {
	digits := DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	// Percent-encode spaces; wa.me does not decode the form "+".
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + encoded
}
