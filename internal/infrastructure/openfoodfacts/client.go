package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/phetrack/pipeline/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// bodyExcerptLen bounds how much of a malformed response body is logged
// for operator inspection.
const bodyExcerptLen = 200

// Config holds the per-session fetch parameters.
type Config struct {
	BaseURL      string
	Country      string
	PageSize     int
	MaxRetries   int
	RetryBackoff time.Duration
	Throttle     time.Duration
	Timeout      time.Duration
}

// Client fetches product pages from the Open Food Facts search API.
// Every failure mode degrades to an empty RemotePage: one unreliable
// page must never abort acquisition of the remaining pages.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	country      string
	pageSize     int
	maxRetries   int
	retryBackoff time.Duration
	throttle     *rate.Limiter
	log          *zap.Logger
}

// NewClient creates a new Open Food Facts search client
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 5 * time.Second
	}
	if cfg.Throttle <= 0 {
		cfg.Throttle = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      cfg.BaseURL,
		country:      cfg.Country,
		pageSize:     cfg.PageSize,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		// One request per throttle interval regardless of retry state.
		throttle: rate.NewLimiter(rate.Every(cfg.Throttle), 1),
		log:      log,
	}
}

// FetchPage retrieves one page of products. It never returns an error:
// after the retry budget is spent, or immediately for non-retryable
// failures, it degrades to an empty page with no count.
func (c *Client) FetchPage(ctx context.Context, page int) domain.RemotePage {
	reqURL := c.pageURL(page)

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.throttle.Wait(ctx); err != nil {
			return domain.RemotePage{}
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			// Timeout or connection-level failure: retry after backoff.
			c.log.Warn("network error",
				zap.Int("page", page),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.maxRetries),
				zap.Error(err))
			if attempt == c.maxRetries {
				c.log.Error("page failed after all attempts, skipping",
					zap.Int("page", page), zap.Int("attempts", c.maxRetries))
				return domain.RemotePage{}
			}
			if !c.sleep(ctx) {
				return domain.RemotePage{}
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			// Truncated body behaves like a connection failure.
			c.log.Warn("failed reading response body",
				zap.Int("page", page), zap.Int("attempt", attempt), zap.Error(err))
			if attempt == c.maxRetries {
				return domain.RemotePage{}
			}
			if !c.sleep(ctx) {
				return domain.RemotePage{}
			}
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			c.log.Warn("server error",
				zap.Int("page", page),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt))
			if attempt == c.maxRetries {
				c.log.Error("page failed after all attempts, skipping",
					zap.Int("page", page), zap.Int("attempts", c.maxRetries))
				return domain.RemotePage{}
			}
			if !c.sleep(ctx) {
				return domain.RemotePage{}
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			// Client errors will not improve on retry.
			c.log.Error("client error, skipping page",
				zap.Int("page", page), zap.Int("status", resp.StatusCode))
			return domain.RemotePage{}
		}

		var payload domain.SearchResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			c.log.Error("malformed response body, skipping page",
				zap.Int("page", page),
				zap.Error(err),
				zap.String("excerpt", excerpt(body)))
			return domain.RemotePage{}
		}

		return domain.RemotePage{Products: payload.Products, Count: payload.Count}
	}

	return domain.RemotePage{}
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "phetrack/1.0 (+https://openfoodfacts.org)")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// pageURL builds the search URL for one page with the session-constant
// filters: country, two always-true nutrient bounds, completeness sort.
func (c *Client) pageURL(page int) string {
	params := url.Values{}
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(c.pageSize))
	params.Set("page", strconv.Itoa(page))

	params.Set("tagtype_0", "countries")
	params.Set("tag_contains_0", "contains")
	params.Set("tag_0", c.country)

	params.Set("nutriment_0", "proteins")
	params.Set("nutriment_compare_0", "gte")
	params.Set("nutriment_value_0", "0")

	params.Set("nutriment_1", "carbohydrates")
	params.Set("nutriment_compare_1", "gte")
	params.Set("nutriment_value_1", "0")

	params.Set("sort_by", "completeness")

	return fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
}

// sleep waits out the retry backoff, returning false if the context was
// cancelled first.
func (c *Client) sleep(ctx context.Context) bool {
	timer := time.NewTimer(c.retryBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func excerpt(body []byte) string {
	if len(body) > bodyExcerptLen {
		return string(body[:bodyExcerptLen])
	}
	return string(body)
}
