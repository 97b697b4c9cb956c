package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Country:      "Russia",
		PageSize:     100,
		MaxRetries:   3,
		RetryBackoff: time.Millisecond,
		Throttle:     time.Millisecond,
		Timeout:      time.Second,
	}
}

func TestFetchPageSuccess(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 250,
			"page": 2,
			"products": [
				{"code": "123", "product_name": "Творог", "nutriments": {"proteins_100g": 16.0}},
				{"code": "456", "product_name": "Кефир"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	page := client.FetchPage(context.Background(), 2)

	require.NotNil(t, page.Count)
	assert.Equal(t, int64(250), *page.Count)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Творог", page.Products[0]["product_name"])

	assert.Equal(t, []string{"process"}, gotQuery["action"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"100"}, gotQuery["page_size"])
	assert.Equal(t, []string{"Russia"}, gotQuery["tag_0"])
	assert.Equal(t, []string{"completeness"}, gotQuery["sort_by"])
}

func TestFetchPageRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"count": 1, "products": [{"code": "1"}]}`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	page := client.FetchPage(context.Background(), 1)

	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, page.Products, 1)
}

func TestFetchPageDegradesAfterRetryBudget(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	page := client.FetchPage(context.Background(), 1)

	assert.Equal(t, int32(3), calls.Load(), "all attempts spent")
	assert.Empty(t, page.Products)
	assert.Nil(t, page.Count)
}

func TestFetchPageClientErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	page := client.FetchPage(context.Background(), 1)

	assert.Equal(t, int32(1), calls.Load(), "client errors are not retried")
	assert.Empty(t, page.Products)
}

func TestFetchPageMalformedBodyNoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`<html>rate limited, but politely</html>`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	page := client.FetchPage(context.Background(), 1)

	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, page.Products)
}

func TestFetchPageRetriesNetworkErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // every request now fails at the dial

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	page := client.FetchPage(context.Background(), 1)

	assert.Empty(t, page.Products)
	assert.Nil(t, page.Count)
}

func TestFetchPageStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(fastConfig("http://127.0.0.1:0"), zap.NewNop())
	page := client.FetchPage(ctx, 1)

	assert.Empty(t, page.Products)
}

func TestFetchPageMissingCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": [{"code": "1"}]}`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	page := client.FetchPage(context.Background(), 1)

	assert.Nil(t, page.Count)
	require.Len(t, page.Products, 1)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://example.test"}, zap.NewNop())

	assert.Equal(t, 100, client.pageSize)
	assert.Equal(t, 5, client.maxRetries)
	assert.Equal(t, 5*time.Second, client.retryBackoff)
	assert.Equal(t, 60*time.Second, client.httpClient.Timeout)
}
