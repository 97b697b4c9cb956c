// Package translate calls a Google-translate-compatible endpoint (the
// "gtx" client protocol) to map free text into a target language.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phetrack/pipeline/internal/domain"
	"go.uber.org/zap"
)

// Config holds the translation endpoint settings.
type Config struct {
	Endpoint   string
	TargetLang string
	MaxRetries int
	RetryPause time.Duration
	Timeout    time.Duration
}

// Client translates single strings with per-string retry. After the
// retry budget is spent the input text is returned unchanged, so a
// flaky endpoint degrades output quality but never aborts a run.
type Client struct {
	httpClient *http.Client
	endpoint   string
	target     string
	maxRetries int
	retryPause time.Duration
	log        *zap.Logger
}

// NewClient creates a new translation client
func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryPause <= 0 {
		cfg.RetryPause = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint:   cfg.Endpoint,
		target:     cfg.TargetLang,
		maxRetries: cfg.MaxRetries,
		retryPause: cfg.RetryPause,
		log:        log,
	}
}

// Translate returns text in the target language. On exhaustion it
// returns the input unchanged along with the last error.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		out, err := c.translateOnce(ctx, text)
		if err == nil {
			return out, nil
		}
		lastErr = err
		c.log.Warn("translation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxRetries),
			zap.Error(err))

		if attempt < c.maxRetries {
			timer := time.NewTimer(c.retryPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return text, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return text, fmt.Errorf("%w: %v", domain.ErrTranslateFailure, lastErr)
}

func (c *Client) translateOnce(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", c.target)
	params.Set("dt", "t")
	params.Set("q", text)

	reqURL := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "phetrack/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return parseResponse(body)
}

// parseResponse extracts the translated text from the gtx payload: a
// nested array whose first element lists [translated, original, ...]
// segments.
func parseResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", errors.New("empty translation payload")
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return "", errors.New("unexpected translation payload shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}

	if b.Len() == 0 {
		return "", errors.New("no translated segments in payload")
	}
	return b.String(), nil
}
