package usecase

import (
	"sort"
	"strings"

	"contactdesk-service/internal/domain/entity"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultMaxResults bounds every filter result to protect the
// presentation layer. It is a display cap, not a correctness concern.
const DefaultMaxResults = 500

// SearchIndex holds one department's normalized records. It is rebuilt
// wholesale on department change and never partially mutated.
type SearchIndex struct {
	dept       entity.Department
	records    []*entity.ContactRecord // source order, lookup keyspace
	display    []*entity.ContactRecord // city-sorted default listing
	maxResults int
}

var cityCollator = collate.New(language.English, collate.IgnoreCase)

// NewSearchIndex builds an index over the given records. The default
// listing is a second, display-only ordering sorted by city ascending
// with locale-aware comparison; lookups always run against the source
// order.
func NewSearchIndex(dept entity.Department, records []*entity.ContactRecord, maxResults int) *SearchIndex {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	display := make([]*entity.ContactRecord, len(records))
	copy(display, records)
	sort.SliceStable(display, func(i, j int) bool {
		if c := cityCollator.CompareString(display[i].City, display[j].City); c != 0 {
			return c < 0
		}
		return cityCollator.CompareString(display[i].Country, display[j].Country) < 0
	})

	return &SearchIndex{
		dept:       dept,
		records:    records,
		display:    display,
		maxResults: maxResults,
	}
}

// Department returns the department this index is scoped to.
func (x *SearchIndex) Department() entity.Department {
	return x.dept
}

// Len returns the number of indexed records.
func (x *SearchIndex) Len() int {
	return len(x.records)
}

// Listing returns the default city-sorted listing, bounded to the
// result cap.
func (x *SearchIndex) Listing() []*entity.ContactRecord {
	return capRecords(x.display, x.maxResults)
}

// Filter returns records whose city, country or IATA code contains the
// query, case-insensitively, in source order. An empty query returns
// all records up to the cap.
func (x *SearchIndex) Filter(query string) []*entity.ContactRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return capRecords(x.records, x.maxResults)
	}

	matched := make([]*entity.ContactRecord, 0, len(x.records))
	for _, r := range x.records {
		if strings.Contains(strings.ToLower(r.City), query) ||
			strings.Contains(strings.ToLower(r.Country), query) ||
			strings.Contains(strings.ToLower(r.Iata), query) {
			matched = append(matched, r)
		}
	}
	return capRecords(matched, x.maxResults)
}

// Resolve returns the first record whose derived key equals the
// argument. First match wins on lookup even though a later record with
// the same key shadowed it in keyed views at build time; the collision
// behavior is a documented limitation.
func (x *SearchIndex) Resolve(key string) (*entity.ContactRecord, bool) {
	for _, r := range x.records {
		if r.Key() == key {
			return r, true
		}
	}
	return nil, false
}

func capRecords(records []*entity.ContactRecord, max int) []*entity.ContactRecord {
	if len(records) > max {
		records = records[:max]
	}
	out := make([]*entity.ContactRecord, len(records))
	copy(out, records)
	return out
}
