package usecase

import (
	"context"
	"fmt"
	"sync"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/pkg/logger"
)

// Session states
const (
	StateEmpty    = "EMPTY"
	StateLoaded   = "LOADED"
	StateSelected = "SELECTED"
)

// HandlerResolver resolves the normalization handler for a department.
type HandlerResolver interface {
	GetHandler(dept entity.Department) DepartmentHandler
}

// SourceURLs maps each source document to its fetch URL.
type SourceURLs map[entity.SourceDoc]string

// Snapshot is an immutable view of the session after an operation.
type Snapshot struct {
	State      string                  `json:"state"`
	Department string                  `json:"department,omitempty"`
	Query      string                  `json:"query,omitempty"`
	Records    []*entity.ContactRecord `json:"records"`
	Selected   *entity.ContactRecord   `json:"selected,omitempty"`
	LoadError  string                  `json:"loadError,omitempty"`
}

// Session owns the active department, index and selection. Operations
// run to completion under the session lock except the source fetch,
// which is tagged with an epoch so a result that lands after a newer
// department selection is discarded instead of clobbering the index.
type Session struct {
	directory  repository.DirectoryRepository
	resolver   HandlerResolver
	sources    SourceURLs
	maxResults int
	logger     logger.Logger

	mu       sync.Mutex
	epoch    uint64
	state    string
	dept     entity.Department
	index    *SearchIndex
	query    string
	selected *entity.ContactRecord
	loadErr  error
}

// NewSession creates an empty session.
func NewSession(directory repository.DirectoryRepository, resolver HandlerResolver, sources SourceURLs, maxResults int, logger logger.Logger) *Session {
	return &Session{
		directory:  directory,
		resolver:   resolver,
		sources:    sources,
		maxResults: maxResults,
		logger:     logger,
		state:      StateEmpty,
	}
}

// SelectDepartment rebuilds the index for the named department and
// auto-selects the first entry of the default sorted listing. A fetch
// or parse failure leaves the session Empty with the failure attached.
func (s *Session) SelectDepartment(ctx context.Context, name string) *Snapshot {
	dept, ok := entity.DepartmentByName(name)
	if !ok {
		return s.fail(dept, fmt.Errorf("unknown department %q", name))
	}

	handler := s.resolver.GetHandler(dept)
	if handler == nil {
		return s.fail(dept, fmt.Errorf("no handler for department %q", name))
	}

	url, ok := s.sources[dept.Source]
	if !ok || url == "" {
		return s.fail(dept, fmt.Errorf("no source URL configured for %s", dept.Source))
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	doc, err := s.directory.FetchDocument(ctx, url)

	var records []*entity.ContactRecord
	if err == nil {
		records, err = handler.Normalize(dept, doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		// A newer department selection superseded this fetch.
		s.logger.Debug("Discarding stale department load", "department", name)
		return s.snapshotLocked()
	}

	if err != nil {
		loadErr := &entity.LoadError{Department: name, Err: err}
		s.logger.Error("Department load failed", "department", name, "error", err)
		s.resetLocked(dept, loadErr)
		return s.snapshotLocked()
	}

	s.dept = dept
	s.index = NewSearchIndex(dept, records, s.maxResults)
	s.query = ""
	s.loadErr = nil
	s.selectFirstLocked(s.index.Listing())
	s.logger.Info("Department loaded", "department", name, "records", s.index.Len())
	return s.snapshotLocked()
}

// Search re-filters the active index and auto-selects the first
// filtered result. Zero matches clears the selection without touching
// the index.
func (s *Session) Search(query string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return s.snapshotLocked()
	}

	s.query = query
	s.selectFirstLocked(s.index.Filter(query))
	return s.snapshotLocked()
}

// Pick resolves an explicit selection key. A stale or unknown key
// clears the selection; it is never a fatal error.
func (s *Session) Pick(key string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return s.snapshotLocked()
	}

	if rec, ok := s.index.Resolve(key); ok {
		s.selected = rec
		s.state = StateSelected
	} else {
		s.selected = nil
		s.state = StateLoaded
	}
	return s.snapshotLocked()
}

// Snapshot returns the current session view without mutating it.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Selected returns the active record, or nil when nothing is selected.
func (s *Session) Selected() *entity.ContactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) fail(dept entity.Department, err error) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.resetLocked(dept, &entity.LoadError{Department: dept.Name, Err: err})
	return s.snapshotLocked()
}

func (s *Session) resetLocked(dept entity.Department, loadErr error) {
	s.dept = dept
	s.index = nil
	s.query = ""
	s.selected = nil
	s.state = StateEmpty
	s.loadErr = loadErr
}

func (s *Session) selectFirstLocked(records []*entity.ContactRecord) {
	if len(records) > 0 {
		s.selected = records[0]
		s.state = StateSelected
	} else {
		s.selected = nil
		if s.index != nil && s.index.Len() > 0 {
			s.state = StateLoaded
		} else {
			s.state = StateEmpty
		}
	}
}

func (s *Session) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		State:    s.state,
		Query:    s.query,
		Selected: s.selected,
		Records:  []*entity.ContactRecord{},
	}
	if s.dept.Name != "" {
		snap.Department = s.dept.Name
	}
	if s.index != nil {
		if s.query != "" {
			snap.Records = s.index.Filter(s.query)
		} else {
			snap.Records = s.index.Listing()
		}
	}
	if s.loadErr != nil {
		snap.LoadError = s.loadErr.Error()
	}
	return snap
}
