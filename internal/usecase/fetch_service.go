package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/phetrack/pipeline/internal/domain"
	"go.uber.org/zap"
)

// FetchConfig bounds one acquisition run.
type FetchConfig struct {
	// PageSize must match the page size the fetcher requests; it is used
	// to turn the reported result count into a page count.
	PageSize int
	// PageCap bounds the walk when the server never reports a count.
	// This is a safety ceiling, not a protocol guarantee.
	PageCap int
}

// FetchService walks the remote catalog page by page and writes one row
// per product. Pages are strictly sequential: page N is fully written
// before page N+1 is requested.
type FetchService struct {
	fetcher domain.PageFetcher
	sink    domain.RowSink
	cfg     FetchConfig
	log     *zap.Logger
}

// NewFetchService creates a new fetch pipeline driver
func NewFetchService(fetcher domain.PageFetcher, sink domain.RowSink, cfg FetchConfig, log *zap.Logger) *FetchService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.PageCap <= 0 {
		cfg.PageCap = 500
	}

	return &FetchService{
		fetcher: fetcher,
		sink:    sink,
		cfg:     cfg,
		log:     log,
	}
}

// Run requests pages until the computed total is reached and returns
// the number of rows written. Degraded or empty pages are logged and
// skipped; they never end the walk early. The page total is fixed by
// the first reported result count; until one arrives the page cap
// bounds the walk.
func (s *FetchService) Run(ctx context.Context) (int, error) {
	written := 0
	totalPages := s.cfg.PageCap
	countKnown := false

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		s.log.Info("fetching page",
			zap.Int("page", page),
			zap.Int("written", written))

		result := s.fetcher.FetchPage(ctx, page)

		if !countKnown && result.Count != nil {
			count := *result.Count
			totalPages = int(math.Ceil(float64(count) / float64(s.cfg.PageSize)))
			countKnown = true
			s.log.Info("total result count reported",
				zap.Int64("count", count),
				zap.Int("pages", totalPages))
		}

		if len(result.Products) == 0 {
			s.log.Warn("page empty or degraded, continuing",
				zap.Int("page", page))
		} else {
			pageWritten := 0
			for _, p := range result.Products {
				if err := s.sink.Write(ExtractProductRow(p)); err != nil {
					return written, fmt.Errorf("write row: %w", err)
				}
				written++
				pageWritten++
			}
			s.log.Info("page written",
				zap.Int("page", page),
				zap.Int("rows", pageWritten),
				zap.Int("total", written))
		}

		if page >= totalPages {
			return written, nil
		}
	}
}
