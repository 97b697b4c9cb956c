package translate

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

	"github.com/phetrack/pipeline/internal/domain"
)

func fastConfig(endpoint string) Config {
	return Config{
		Endpoint:   endpoint,
		TargetLang: "ru",
		MaxRetries: 3,
		RetryPause: time.Millisecond,
		Timeout:    time.Second,
	}
}

func TestTranslateSuccess(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[[["сыр швейцарский","cheese, swiss",null,null,10]],null,"en"]`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	out, err := client.Translate(context.Background(), "cheese, swiss")

	require.NoError(t, err)
	assert.Equal(t, "сыр швейцарский", out)
	assert.Equal(t, []string{"gtx"}, gotQuery["client"])
	assert.Equal(t, []string{"ru"}, gotQuery["tl"])
	assert.Equal(t, []string{"cheese, swiss"}, gotQuery["q"])
}

func TestTranslateConcatenatesSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[["яблоко, ","apple, "],["сырое","raw"]],null,"en"]`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	out, err := client.Translate(context.Background(), "apple, raw")

	require.NoError(t, err)
	assert.Equal(t, "яблоко, сырое", out)
}

func TestTranslateBlankInput(t *testing.T) {
	client := NewClient(fastConfig("http://127.0.0.1:0"), zap.NewNop())
	out, err := client.Translate(context.Background(), "   ")

	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestTranslateRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[[["молоко","milk"]],null,"en"]`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	out, err := client.Translate(context.Background(), "milk")

	require.NoError(t, err)
	assert.Equal(t, "молоко", out)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTranslateFallsBackToInput(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	out, err := client.Translate(context.Background(), "milk")

	require.ErrorIs(t, err, domain.ErrTranslateFailure)
	assert.Equal(t, "milk", out, "callers keep the original text")
	assert.Equal(t, int32(3), calls.Load())
}

func TestTranslateMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "the gtx shape"}`))
	}))
	defer server.Close()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	out, err := client.Translate(context.Background(), "milk")

	require.ErrorIs(t, err, domain.ErrTranslateFailure)
	assert.Equal(t, "milk", out)
}

func TestTranslateStopsOnCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(fastConfig(server.URL), zap.NewNop())
	_, err := client.Translate(ctx, "milk")
	require.Error(t, err)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"single segment", `[[["привет","hello"]]]`, "привет", false},
		{"skips malformed segments", `[[["a","x"],42,["b","y"]]]`, "ab", false},
		{"empty payload", `[]`, "", true},
		{"wrong shape", `"just a string"`, "", true},
		{"no segments", `[[]]`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
