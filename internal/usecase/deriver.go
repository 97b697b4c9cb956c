package usecase

import "github.com/phetrack/pipeline/internal/domain"

// DerivePhe computes the output phenylalanine value in milligrams and
// records its provenance. Strict fallback order, first satisfied wins:
//
//  1. the source reported phe (grams): convert to mg, provenance "original"
//  2. the source reported protein: protein x coefficient, "calculated"
//  3. neither: 0.0, "empty"
//
// Zero protein with zero phe is a valid outcome, never an error.
func DerivePhe(nutrients domain.NutrientSet, coefficient float64) (float64, domain.PheSource) {
	switch {
	case nutrients.Phe > 0:
		return nutrients.Phe * 1000.0, domain.PheSourceOriginal
	case nutrients.Protein > 0:
		return nutrients.Protein * coefficient, domain.PheSourceCalculated
	default:
		return 0.0, domain.PheSourceEmpty
	}
}
