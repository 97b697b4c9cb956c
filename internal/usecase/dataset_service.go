package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/phetrack/pipeline/internal/domain"
)

// DatasetService answers read-only queries over a derived dataset file
// loaded into memory. Search results are cached per normalized query.
type DatasetService struct {
	cache    domain.CacheRepository
	cacheTTL time.Duration
	records  []domain.DerivedRecord
	byID     map[int64]int
}

// NewDatasetService creates a new dataset query service
func NewDatasetService(cache domain.CacheRepository, cacheTTL time.Duration) *DatasetService {
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	return &DatasetService{
		cache:    cache,
		cacheTTL: cacheTTL,
		byID:     make(map[int64]int),
	}
}

// Load reads a classification output CSV into memory.
func (s *DatasetService) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("read dataset header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read dataset row: %w", err)
		}
		if len(row) != len(ClassifyHeader) {
			continue
		}

		record := domain.DerivedRecord{
			Name:      row[colName],
			Category:  domain.Category(row[colCategory]),
			PheSource: domain.PheSource(row[colSource]),
		}
		record.FdcID, _ = strconv.ParseInt(row[colFdcID], 10, 64)
		record.Protein, _ = strconv.ParseFloat(row[colProtein], 64)
		record.Phe, _ = strconv.ParseFloat(row[colPhe], 64)
		record.Fat, _ = strconv.ParseFloat(row[colFat], 64)
		record.Carbs, _ = strconv.ParseFloat(row[colCarbs], 64)
		record.Energy, _ = strconv.ParseFloat(row[colEnergy], 64)

		s.byID[record.FdcID] = len(s.records)
		s.records = append(s.records, record)
	}

	return nil
}

// Len returns the number of loaded records.
func (s *DatasetService) Len() int {
	return len(s.records)
}

// Search returns up to limit records whose name contains the query,
// case-insensitively, in dataset order.
func (s *DatasetService) Search(ctx context.Context, query string, limit int) ([]domain.DerivedRecord, error) {
	if s.records == nil {
		return nil, domain.ErrDatasetNotLoaded
	}
	if limit <= 0 {
		limit = 50
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	cacheKey := fmt.Sprintf("search:%s:%d", needle, limit)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if results, ok := cached.([]domain.DerivedRecord); ok {
			return results, nil
		}
	}

	results := make([]domain.DerivedRecord, 0, limit)
	for _, record := range s.records {
		if strings.Contains(strings.ToLower(record.Name), needle) {
			results = append(results, record)
			if len(results) >= limit {
				break
			}
		}
	}

	// Best effort: a failed cache write only costs the next lookup.
	_ = s.cache.Set(ctx, cacheKey, results, s.cacheTTL)

	return results, nil
}

// Get returns the record with the given identifier.
func (s *DatasetService) Get(id int64) (domain.DerivedRecord, error) {
	if s.records == nil {
		return domain.DerivedRecord{}, domain.ErrDatasetNotLoaded
	}
	idx, ok := s.byID[id]
	if !ok {
		return domain.DerivedRecord{}, domain.ErrFoodNotFound
	}
	return s.records[idx], nil
}
