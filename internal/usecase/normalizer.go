package usecase

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/pkg/logger"
	"contactdesk-service/pkg/utils"
)

// DepartmentHandler normalizes one source-document shape into contact
// records. Exactly one handler claims each department kind.
type DepartmentHandler interface {
	CanHandle(dept entity.Department) bool
	Normalize(dept entity.Department, doc []byte) ([]*entity.ContactRecord, error)
}

// mapSearchURL is the authoritative map-link form. Two historical
// variants existed; the most recent one, including the "query=,&z=15&"
// segment, is kept verbatim. Built by concatenation so the parameter
// order never changes.
const mapSearchURL = "https://www.google.com/maps/search/?query=,&z=15&api=1&query_place_id=%s&hl=en-US"

// MapURLFromPlaceID derives the canonical map link for a place id.
func MapURLFromPlaceID(placeID string) string {
	if placeID == "" {
		return ""
	}
	return fmt.Sprintf(mapSearchURL, url.QueryEscape(placeID))
}

// placeIDFromURL pulls a query_place_id parameter out of a legacy map
// link. Returns empty when the link has none or does not parse.
func placeIDFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("query_place_id")
}

var (
	combinedKeyPattern = regexp.MustCompile(`^(.*\S)\s*\((.*?)\)\s*$`)
	downloadMapPattern = regexp.MustCompile(`(?i)download\s*map`)
)

// SplitCombinedKey splits a legacy "City (Country)" key. When the key
// does not match the pattern the whole key becomes the city and the
// country stays empty.
func SplitCombinedKey(key string) (city, country string) {
	if m := combinedKeyPattern.FindStringSubmatch(key); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(key), ""
}

// CleanAddress strips markup, the "Download map" boilerplate label and
// trailing separators from a raw address string.
func CleanAddress(raw string) string {
	cleaned := utils.CleanHTMLText(raw)
	cleaned = downloadMapPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, " ,;|-·")
	return strings.TrimSpace(cleaned)
}

// wrapSingular merges singular and plural source fields into one clean
// sequence: the plural form wins when present, otherwise the singular
// value is wrapped, and blanks are filtered either way.
func wrapSingular(plural []string, singular string) []string {
	if len(plural) > 0 {
		return utils.CompactSlice(plural)
	}
	return utils.CompactSlice([]string{singular})
}

// SimpleHandler normalizes the flat city-keyed departments
// (GDS Support, Baggage Services, Agency Support, Let's Talk).
type SimpleHandler struct{}

func NewSimpleHandler() *SimpleHandler {
	return &SimpleHandler{}
}

func (h *SimpleHandler) CanHandle(dept entity.Department) bool {
	return dept.Source == entity.SourceContacts
}

type simpleEntry struct {
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
	Hours  string   `json:"hours"`
}

// Normalize extracts this department's city map from the shared
// contacts document. Map and address fields are never populated for
// simple-kind departments, regardless of source data.
func (h *SimpleHandler) Normalize(dept entity.Department, doc []byte) ([]*entity.ContactRecord, error) {
	var all map[string]map[string]simpleEntry
	if err := json.Unmarshal(doc, &all); err != nil {
		return nil, fmt.Errorf("invalid contacts document: %w", err)
	}

	cities, ok := all[dept.Name]
	if !ok {
		return nil, fmt.Errorf("department %q not present in contacts document", dept.Name)
	}

	records := make([]*entity.ContactRecord, 0, len(cities))
	for city, raw := range cities {
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}
		records = append(records, &entity.ContactRecord{
			Department: dept.Name,
			Kind:       entity.KindSimple,
			City:       city,
			Emails:     wrapSingular(raw.Emails, raw.Email),
			Phones:     wrapSingular(raw.Phones, raw.Phone),
			Hours:      strings.TrimSpace(raw.Hours),
			Status:     entity.StatusUnknown,
		})
	}
	return records, nil
}

// locationEntry covers both the cargo document and the entries form of
// the travel-shops document.
type locationEntry struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Iata    string   `json:"iata"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Emails  []string `json:"emails"`
	Phones  []string `json:"phones"`
	Hours   string   `json:"hours"`
	Status  string   `json:"status"`
	Address string   `json:"address"`
	PlaceID string   `json:"place_id"`
	Map     string   `json:"map"`
	MapURL  string   `json:"map_url"`
	MapImg  string   `json:"map_img"`
}

// CargoHandler normalizes the cargo stations document. Entries pass
// through with field defaulting and no address or map synthesis.
type CargoHandler struct{}

func NewCargoHandler() *CargoHandler {
	return &CargoHandler{}
}

func (h *CargoHandler) CanHandle(dept entity.Department) bool {
	return dept.Source == entity.SourceCargo
}

func (h *CargoHandler) Normalize(dept entity.Department, doc []byte) ([]*entity.ContactRecord, error) {
	var parsed struct {
		Entries []locationEntry `json:"entries"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("invalid cargo document: %w", err)
	}

	records := make([]*entity.ContactRecord, 0, len(parsed.Entries))
	for _, e := range parsed.Entries {
		city := strings.TrimSpace(e.City)
		if city == "" {
			continue
		}
		records = append(records, &entity.ContactRecord{
			Department: dept.Name,
			Kind:       entity.KindLocation,
			City:       city,
			Country:    strings.TrimSpace(e.Country),
			Iata:       strings.ToUpper(strings.TrimSpace(e.Iata)),
			Emails:     wrapSingular(e.Emails, e.Email),
			Phones:     wrapSingular(e.Phones, e.Phone),
			Hours:      strings.TrimSpace(e.Hours),
			Status:     entity.NormalizeStatus(e.Status),
		})
	}
	return records, nil
}

// TravelShopHandler normalizes the travel-shops document, which comes
// in two shapes: the entries sequence, or a legacy map keyed by a
// combined "City (Country)" label.
type TravelShopHandler struct {
	logger logger.Logger
}

func NewTravelShopHandler(logger logger.Logger) *TravelShopHandler {
	return &TravelShopHandler{logger: logger}
}

func (h *TravelShopHandler) CanHandle(dept entity.Department) bool {
	return dept.Source == entity.SourceTravelShops
}

func (h *TravelShopHandler) Normalize(dept entity.Department, doc []byte) ([]*entity.ContactRecord, error) {
	var parsed struct {
		Entries []locationEntry `json:"entries"`
	}
	if err := json.Unmarshal(doc, &parsed); err == nil && parsed.Entries != nil {
		return h.fromEntries(dept, parsed.Entries), nil
	}

	var legacy map[string]locationEntry
	if err := json.Unmarshal(doc, &legacy); err != nil {
		return nil, fmt.Errorf("invalid travel shops document: %w", err)
	}
	return h.fromLegacy(dept, legacy), nil
}

func (h *TravelShopHandler) fromEntries(dept entity.Department, entries []locationEntry) []*entity.ContactRecord {
	records := make([]*entity.ContactRecord, 0, len(entries))
	for _, e := range entries {
		city := strings.TrimSpace(e.City)
		if city == "" {
			continue
		}
		records = append(records, h.buildRecord(dept, city, strings.TrimSpace(e.Country), e))
	}
	return records
}

func (h *TravelShopHandler) fromLegacy(dept entity.Department, legacy map[string]locationEntry) []*entity.ContactRecord {
	records := make([]*entity.ContactRecord, 0, len(legacy))
	for key, e := range legacy {
		city, country := SplitCombinedKey(key)
		if city == "" {
			continue
		}
		records = append(records, h.buildRecord(dept, city, country, e))
	}
	return records
}

func (h *TravelShopHandler) buildRecord(dept entity.Department, city, country string, e locationEntry) *entity.ContactRecord {
	mapURL := MapURLFromPlaceID(strings.TrimSpace(e.PlaceID))
	if mapURL == "" {
		// Legacy shops embed a full map link instead of a place id.
		for _, candidate := range []string{e.MapURL, e.Map} {
			if id := placeIDFromURL(candidate); id != "" {
				mapURL = MapURLFromPlaceID(id)
				break
			}
		}
	}

	return &entity.ContactRecord{
		Department:  dept.Name,
		Kind:        entity.KindLocation,
		City:        city,
		Country:     country,
		Iata:        strings.ToUpper(strings.TrimSpace(e.Iata)),
		Emails:      wrapSingular(e.Emails, e.Email),
		Phones:      wrapSingular(e.Phones, e.Phone),
		Hours:       strings.TrimSpace(e.Hours),
		Address:     CleanAddress(e.Address),
		Status:      entity.NormalizeStatus(e.Status),
		MapURL:      mapURL,
		MapImageURL: strings.TrimSpace(e.MapImg),
	}
}
