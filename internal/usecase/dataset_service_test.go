package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phetrack/pipeline/internal/domain"
	"github.com/phetrack/pipeline/internal/infrastructure/cache"
)

func loadedDataset(t *testing.T) *DatasetService {
	t.Helper()
	path := writeClassifyCSV(t, [][]string{
		{"1", "Cheese, swiss", "Cheese", "25.00", "1250.0", "calculated", "30.50", "1.40", "393"},
		{"2", "Milk, whole", "Dairy", "3.20", "160.0", "original", "3.60", "4.80", "61"},
		{"3", "Milk, skim", "Dairy", "3.40", "170.0", "calculated", "0.10", "5.00", "34"},
	})

	svc := NewDatasetService(cache.NewMemoryCache(), time.Minute)
	require.NoError(t, svc.Load(path))
	return svc
}

func TestDatasetServiceLoad(t *testing.T) {
	svc := loadedDataset(t)
	assert.Equal(t, 3, svc.Len())
}

func TestDatasetServiceSearch(t *testing.T) {
	svc := loadedDataset(t)

	results, err := svc.Search(context.Background(), "milk", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Milk, whole", results[0].Name)
	assert.Equal(t, "Milk, skim", results[1].Name)

	// Cached path returns the same results.
	again, err := svc.Search(context.Background(), "  MILK ", 10)
	require.NoError(t, err)
	assert.Equal(t, results, again)
}

func TestDatasetServiceSearchLimit(t *testing.T) {
	svc := loadedDataset(t)

	results, err := svc.Search(context.Background(), "milk", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Milk, whole", results[0].Name)
}

func TestDatasetServiceGet(t *testing.T) {
	svc := loadedDataset(t)

	record, err := svc.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Milk, whole", record.Name)
	assert.Equal(t, domain.CategoryDairy, record.Category)
	assert.Equal(t, 160.0, record.Phe)

	_, err = svc.Get(99)
	require.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestDatasetServiceNotLoaded(t *testing.T) {
	svc := NewDatasetService(cache.NewMemoryCache(), time.Minute)

	_, err := svc.Search(context.Background(), "milk", 10)
	require.ErrorIs(t, err, domain.ErrDatasetNotLoaded)

	_, err = svc.Get(1)
	require.ErrorIs(t, err, domain.ErrDatasetNotLoaded)
}
