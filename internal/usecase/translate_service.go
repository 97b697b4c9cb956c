package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/phetrack/pipeline/internal/domain"
	"github.com/phetrack/pipeline/internal/infrastructure/csvsink"
	"go.uber.org/zap"
)

// categoryTranslations maps classifier labels to their fixed Russian
// names. These never go through the translation service.
var categoryTranslations = map[domain.Category]string{
	domain.CategoryCheese:     "Сыры",
	domain.CategoryEggs:       "Яйца",
	domain.CategoryMeat:       "Мясо",
	domain.CategoryFish:       "Рыба и морепродукты",
	domain.CategoryLegumes:    "Бобовые",
	domain.CategoryNutsSeeds:  "Орехи и семена",
	domain.CategoryDairy:      "Молочные продукты",
	domain.CategoryPlantMilk:  "Растительное молоко",
	domain.CategoryBreads:     "Хлеб и выпечка",
	domain.CategoryGrains:     "Крупы и макароны",
	domain.CategoryVegetables: "Овощи",
	domain.CategoryFruits:     "Фрукты",
	domain.CategorySweets:     "Сладости",
	domain.CategoryBeverages:  "Напитки",
	domain.CategoryOther:      "Другое",
}

// Column positions in the classification output schema.
const (
	colFdcID    = 0
	colName     = 1
	colCategory = 2
	colProtein  = 3
	colPhe      = 4
	colSource   = 5
	colFat      = 6
	colCarbs    = 7
	colEnergy   = 8
)

// TranslateService rewrites a derived dataset with translated names and
// category labels, re-formatting numbers with the comma separator. The
// memo map is owned here and scoped to one run.
type TranslateService struct {
	translator domain.Translator
	memo       map[string]string
	log        *zap.Logger
}

// NewTranslateService creates a new translation pipeline driver
func NewTranslateService(translator domain.Translator, log *zap.Logger) *TranslateService {
	return &TranslateService{
		translator: translator,
		memo:       make(map[string]string),
		log:        log,
	}
}

// Run reads the classification CSV at inputPath and writes the
// translated, `;`-delimited dataset to outputPath, returning the number
// of rows written.
func (s *TranslateService) Run(ctx context.Context, inputPath, outputPath string) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	sink, err := csvsink.New(outputPath, ';', header)
	if err != nil {
		return 0, err
	}
	defer sink.Close()

	written := 0
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("read row: %w", err)
		}
		if len(row) != len(ClassifyHeader) {
			s.log.Warn("row has unexpected field count, skipping",
				zap.Int("fields", len(row)))
			continue
		}

		if err := sink.Write(s.translateRow(ctx, row)); err != nil {
			return written, err
		}
		written++
		if written%500 == 0 {
			s.log.Info("progress", zap.Int("rows", written))
		}
	}

	if err := sink.Close(); err != nil {
		return written, err
	}

	s.log.Info("translation complete",
		zap.Int("rows", written),
		zap.Int("unique_strings", len(s.memo)))
	return written, nil
}

// translateRow translates the name and category fields and re-formats
// the numeric fields. Phe and energy keep one decimal, the rest two.
func (s *TranslateService) translateRow(ctx context.Context, row []string) []string {
	out := make([]string, len(row))
	copy(out, row)

	out[colName] = s.lookup(ctx, row[colName])

	translated, ok := categoryTranslations[domain.Category(row[colCategory])]
	if !ok {
		translated = categoryTranslations[domain.CategoryOther]
	}
	out[colCategory] = translated

	out[colProtein] = commaNumber(row[colProtein], 2)
	out[colPhe] = commaNumber(row[colPhe], 1)
	out[colFat] = commaNumber(row[colFat], 2)
	out[colCarbs] = commaNumber(row[colCarbs], 2)
	out[colEnergy] = commaNumber(row[colEnergy], 1)

	return out
}

// lookup translates one string, memoized for the run. The translator
// falls back to the input on failure, so the result is always usable.
func (s *TranslateService) lookup(ctx context.Context, text string) string {
	if text == "" {
		return ""
	}
	if cached, ok := s.memo[text]; ok {
		return cached
	}

	translated, err := s.translator.Translate(ctx, text)
	if err != nil {
		s.log.Warn("translation failed, keeping original text", zap.Error(err))
	}

	translated = capitalize(translated)
	s.memo[text] = translated
	return translated
}

// capitalize upper-cases the first rune.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// commaNumber re-renders a dot-decimal field with a comma separator and
// fixed decimals; anything unparseable becomes "0,0".
func commaNumber(raw string, decimals int) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "0,0"
	}
	return strings.Replace(strconv.FormatFloat(f, 'f', decimals, 64), ".", ",", 1)
}
