package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/pkg/logger"
	"contactdesk-service/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

// HTTPDirectoryRepository fetches source documents over HTTP and caches
// them in memory per URL. Concurrent fetches of the same URL collapse
// into one request via singleflight. A TTL of zero caches for the
// process lifetime.
type HTTPDirectoryRepository struct {
	client  *http.Client
	logger  logger.Logger
	metrics *metrics.Metrics
	ttl     time.Duration
	group   singleflight.Group

	mu    sync.Mutex
	cache map[string]cachedDoc
}

type cachedDoc struct {
	body      []byte
	fetchedAt time.Time
}

// NewHTTPDirectoryRepository creates a new HTTP directory repository
func NewHTTPDirectoryRepository(ttl time.Duration, m *metrics.Metrics, logger logger.Logger) repository.DirectoryRepository {
	return &HTTPDirectoryRepository{
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		metrics: m,
		ttl:     ttl,
		cache:   make(map[string]cachedDoc),
	}
}

// FetchDocument returns the document at the URL, from cache when fresh.
func (r *HTTPDirectoryRepository) FetchDocument(ctx context.Context, url string) ([]byte, error) {
	r.mu.Lock()
	if doc, ok := r.cache[url]; ok {
		if r.ttl == 0 || time.Since(doc.fetchedAt) < r.ttl {
			r.mu.Unlock()
			return doc.body, nil
		}
	}
	r.mu.Unlock()

	result, err, _ := r.group.Do(url, func() (interface{}, error) {
		return r.fetch(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Invalidate drops the cached copy of the URL, forcing a refetch.
func (r *HTTPDirectoryRepository) Invalidate(url string) {
	r.mu.Lock()
	delete(r.cache, url)
	r.mu.Unlock()
	r.group.Forget(url)
}

func (r *HTTPDirectoryRepository) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	r.mu.Lock()
	r.cache[url] = cachedDoc{body: body, fetchedAt: time.Now()}
	r.mu.Unlock()

	r.metrics.DirectoryLoads.Inc()
	r.logger.Info("Fetched directory document", "url", url, "bytes", len(body))
	return body, nil
}
