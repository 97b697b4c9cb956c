package http

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phetrack/pipeline/config"
	"github.com/phetrack/pipeline/internal/infrastructure/cache"
	"github.com/phetrack/pipeline/internal/usecase"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "dataset.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write(usecase.ClassifyHeader))
	require.NoError(t, w.WriteAll([][]string{
		{"321360", "Cheese, swiss", "Cheese", "25.00", "1250.0", "calculated", "30.50", "1.40", "393"},
		{"1100", "Milk, whole", "Dairy", "3.20", "160.0", "original", "3.60", "4.80", "61"},
	}))
	require.NoError(t, f.Close())

	dataset := usecase.NewDatasetService(cache.NewMemoryCache(), time.Minute)
	require.NoError(t, dataset.Load(path))

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Server.AllowedOrigins = []string{"*"}

	return SetupRouter(cfg, NewHandler(dataset))
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(2), body["records"])
}

func TestSearchFoods(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/foods/search?q=milk")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
}

func TestSearchFoodsMissingQuery(t *testing.T) {
	router := testRouter(t)

	rec, _ := doRequest(t, router, "/api/v1/foods/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchFoodsBadLimit(t *testing.T) {
	router := testRouter(t)

	rec, _ := doRequest(t, router, "/api/v1/foods/search?q=milk&limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, "/api/v1/foods/search?q=milk&limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFood(t *testing.T) {
	router := testRouter(t)

	rec, body := doRequest(t, router, "/api/v1/foods/321360")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cheese, swiss", body["name"])
	assert.Equal(t, float64(1250), body["phe"])
}

func TestGetFoodNotFound(t *testing.T) {
	router := testRouter(t)

	rec, _ := doRequest(t, router, "/api/v1/foods/99999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFoodBadID(t *testing.T) {
	router := testRouter(t)

	rec, _ := doRequest(t, router, "/api/v1/foods/not-a-number")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
