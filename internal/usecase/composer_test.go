package usecase

import (
	"strings"
	"testing"

	"contactdesk-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignature = "— Flydubai Contact Centre"

func TestComposer_CargoScenario(t *testing.T) {
	rec := &entity.ContactRecord{
		Department: entity.DeptCargo,
		Kind:       entity.KindLocation,
		City:       "Dubai",
		Country:    "UAE",
		Iata:       "DXB",
		Phones:     []string{"+97142161111"},
		Hours:      "24/7",
		Status:     entity.StatusOnline,
	}

	text := NewComposer(testSignature).Compose(rec, PassengerFields{})

	assert.True(t, strings.HasPrefix(text, "Here are the official Cargo contact details for Dubai, UAE:"))
	assert.Contains(t, text, "• Phone: +97142161111")
	assert.Contains(t, text, "• Working hours: 24/7")
	assert.NotContains(t, text, "• Email:")
	assert.NotContains(t, text, "• Address:")
	assert.NotContains(t, text, "• Map:")
	assert.True(t, strings.HasSuffix(text, testSignature))
}

func TestComposer_FixedLineOrder(t *testing.T) {
	rec := &entity.ContactRecord{
		Department: entity.DeptTravelShop,
		Kind:       entity.KindLocation,
		City:       "Abu Dhabi",
		Country:    "UAE",
		Emails:     []string{"shop1@flydubai.com", "shop2@flydubai.com"},
		Phones:     []string{"+9712111", "+9712222"},
		Address:    "12 Main St",
		Hours:      "09:00-18:00",
		MapURL:     "https://www.google.com/maps/search/?query=,&z=15&api=1&query_place_id=ChIJ123&hl=en-US",
	}

	text := NewComposer(testSignature).Compose(rec, PassengerFields{Note: "Please call ahead"})
	lines := strings.Split(text, "\n")

	require.Equal(t, []string{
		"Here are the official Travel Shop contact details for Abu Dhabi, UAE:",
		"",
		"• Email: shop1@flydubai.com, shop2@flydubai.com",
		"• Phone: +9712111 / +9712222",
		"• Address: 12 Main St",
		"• Working hours: 09:00-18:00",
		"• Map: https://www.google.com/maps/search/?query=,&z=15&api=1&query_place_id=ChIJ123&hl=en-US",
		"",
		"Note: Please call ahead",
		"",
		testSignature,
	}, lines)
}

func TestComposer_SimpleKindNeverRendersLocationFields(t *testing.T) {
	// Kind gates visibility regardless of what the record carries.
	rec := &entity.ContactRecord{
		Department: entity.DeptGDSSupport,
		Kind:       entity.KindSimple,
		City:       "Dubai",
		Emails:     []string{"gds@flydubai.com"},
		Address:    "should never appear",
		MapURL:     "https://maps.example.com/leaked",
	}

	text := NewComposer(testSignature).Compose(rec, PassengerFields{})

	assert.NotContains(t, text, "should never appear")
	assert.NotContains(t, text, "leaked")
	assert.Contains(t, text, "• Email: gds@flydubai.com")
}

func TestComposer_CountryOmittedWhenEmpty(t *testing.T) {
	rec := &entity.ContactRecord{
		Department: entity.DeptBaggageServices,
		Kind:       entity.KindSimple,
		City:       "Dubai",
		Phones:     []string{"+971"},
	}

	text := NewComposer(testSignature).Compose(rec, PassengerFields{})
	assert.True(t, strings.HasPrefix(text, "Here are the official Baggage Services contact details for Dubai:"))
}

func TestComposer_BlankNoteSkipped(t *testing.T) {
	rec := &entity.ContactRecord{
		Department: entity.DeptGDSSupport,
		Kind:       entity.KindSimple,
		City:       "Dubai",
	}

	text := NewComposer(testSignature).Compose(rec, PassengerFields{Note: "   "})
	assert.NotContains(t, text, "Note:")
}

func TestComposer_Deterministic(t *testing.T) {
	rec := &entity.ContactRecord{
		Department: entity.DeptCargo,
		Kind:       entity.KindLocation,
		City:       "Muscat",
		Country:    "Oman",
		Emails:     []string{"cargo.mct@flydubai.com"},
		Hours:      "08:00-17:00",
	}
	fields := PassengerFields{Note: "Fragile shipment"}

	c := NewComposer(testSignature)
	first := c.Compose(rec, fields)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Compose(rec, fields))
	}
}

func TestComposer_NilRecordRendersEmpty(t *testing.T) {
	assert.Empty(t, NewComposer(testSignature).Compose(nil, PassengerFields{Note: "x"}))
}
