package repository

import "context"

// DirectoryRepository fetches raw contact-directory source documents.
// Implementations cache per URL for the process lifetime; Invalidate
// forces a refetch on the next call.
type DirectoryRepository interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
	Invalidate(url string)
}
