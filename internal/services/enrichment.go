package services

import (
	"context"
	"log"
	"strings"
)

// ImageSearcher returns the URL of the best image for a free-text query, or
// "" when nothing suitable was found.
type ImageSearcher interface {
	FirstImage(ctx context.Context, query string) (string, error)
}

// Enricher attaches best-effort image URLs to tournaments and courses. The
// stored value always wins over a fresh search.
type Enricher struct {
	images ImageSearcher
}

func NewEnricher(images ImageSearcher) *Enricher {
	return &Enricher{images: images}
}

type (
	imageLookup func(ctx context.Context) (string, error)
	imageSave   func(ctx context.Context, imageURL string) (string, error)
)

// resolve returns the image URL for one entity, or "" if none is known.
// Lookup, search and save failures are logged and degrade to the next best
// answer; they never fail the caller.
func (e *Enricher) resolve(ctx context.Context, kind string, id int64, query string, lookup imageLookup, save imageSave) string {
	cached, err := lookup(ctx)
	if err != nil {
		log.Printf("[enrich] %s %d: lookup failed: %v", kind, id, err)
	} else if cached != "" {
		return cached
	}

	if e.images == nil || strings.TrimSpace(query) == "" {
		return ""
	}

	found, err := e.images.FirstImage(ctx, query)
	if err != nil {
		log.Printf("[enrich] %s %d: image search failed: %v", kind, id, err)
		return ""
	}
	if found == "" {
		return ""
	}

	stored, err := save(ctx, found)
	if err != nil {
		log.Printf("[enrich] %s %d: failed to store image: %v", kind, id, err)
		return found
	}
	if stored == "" {
		return found
	}
	return stored
}
