package domain

import (
	"context"
	"time"
)

// PageFetcher retrieves one page of catalog records. Implementations
// must degrade every failure to an empty RemotePage instead of returning
// it: one unreliable page must never abort the rest of a run.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) RemotePage
}

// FoodStreamer lazily decodes food records from one dump file, handing
// them to fn one at a time. The full document is never resident in
// memory.
type FoodStreamer interface {
	Stream(ctx context.Context, path string, fn func(Food) error) error
}

// Translator maps free text to the configured target language. On
// failure implementations return the input text unchanged together with
// the last error, so callers always have usable output.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// RowSink appends delimited rows under a header written exactly once.
type RowSink interface {
	Write(row []string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
