package usecase

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/phetrack/pipeline/internal/domain"
	"github.com/phetrack/pipeline/internal/infrastructure/fooddata"
	"go.uber.org/zap"
)

// ClassifyHeader is the classification pipeline's output schema.
var ClassifyHeader = []string{
	"fdc_id",
	"name",
	"category",
	"protein",
	"phe",
	"phe_source",
	"fat",
	"carbs",
	"energy",
}

// progressEvery controls how often cumulative progress is logged.
const progressEvery = 10000

// ClassifyService streams dump files into classified, phe-derived rows,
// one output row per record, in decode order.
type ClassifyService struct {
	streamer domain.FoodStreamer
	sink     domain.RowSink
	log      *zap.Logger
}

// NewClassifyService creates a new classification pipeline driver
func NewClassifyService(streamer domain.FoodStreamer, sink domain.RowSink, log *zap.Logger) *ClassifyService {
	return &ClassifyService{
		streamer: streamer,
		sink:     sink,
		log:      log,
	}
}

// Run processes every input file in order and returns the number of
// rows written. A missing or undecodable file is logged and skipped;
// only all inputs missing is fatal.
func (s *ClassifyService) Run(ctx context.Context, inputs []string) (int, error) {
	written := 0
	opened := 0

	for _, path := range inputs {
		if _, err := os.Stat(path); err != nil {
			s.log.Error("input file missing, skipping",
				zap.String("file", path), zap.Error(err))
			continue
		}
		opened++

		s.log.Info("processing input", zap.String("file", path))

		err := s.streamer.Stream(ctx, path, func(food domain.Food) error {
			if food.FdcID == 0 {
				return nil
			}
			if err := s.sink.Write(s.buildRow(food)); err != nil {
				return err
			}
			written++
			if written%progressEvery == 0 {
				s.log.Info("progress", zap.Int("rows", written))
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return written, err
			}
			// Files already fully processed stay written; only the rest
			// of this file is lost.
			s.log.Error("input failed, skipping remainder",
				zap.String("file", path), zap.Error(err))
		}
	}

	if opened == 0 {
		return written, domain.ErrNoInput
	}
	return written, nil
}

// buildRow classifies and derives one record into its 9-column row.
func (s *ClassifyService) buildRow(food domain.Food) []string {
	classification := Classify(food.Description, food.CategoryHint())
	nutrients := fooddata.ExtractNutrients(food)
	phe, source := DerivePhe(nutrients, classification.Coefficient)

	return []string{
		strconv.FormatInt(food.FdcID, 10),
		food.Description,
		string(classification.Category),
		FormatFixed(nutrients.Protein, 2),
		FormatFixed(phe, 1),
		string(source),
		FormatFixed(nutrients.Fat, 2),
		FormatFixed(nutrients.Carbs, 2),
		FormatFixed(nutrients.Energy, 0),
	}
}
