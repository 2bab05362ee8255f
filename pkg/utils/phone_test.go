package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+971 (4) 603-0000", "97146030000"},
		{"971.50.111.2222", "971501112222"},
		{"97100000000", "97100000000"},
		{"call us", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DigitsOnly(tt.in), "input %q", tt.in)
	}
}

func TestClickToChatURL_EncodesSpacesAsPercent20(t *testing.T) {
	got := ClickToChatURL("+971 50 111 2222", "Here are the details")

	assert.Equal(t, "https://wa.me/971501112222?text=Here%20are%20the%20details", got)
	assert.NotContains(t, got, "+")
}

func TestClickToChatURL_EscapesReservedCharacters(t *testing.T) {
	got := ClickToChatURL("97100000000", "A&B\nC")

	assert.Equal(t, "https://wa.me/97100000000?text=A%26B%0AC", got)
}

func TestClickToChatURL_EmptyWithoutDigits(t *testing.T) {
	assert.Empty(t, ClickToChatURL("no number", "text"))
	assert.Empty(t, ClickToChatURL("", "text"))
}
