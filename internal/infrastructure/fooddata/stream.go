// Package fooddata streams food records out of FoodData Central dump
// files. The dumps are hundreds of megabytes, so records are decoded
// lazily one at a time; only the current record is ever resident.
package fooddata

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phetrack/pipeline/internal/domain"
)

// Known top-level arrays in FoodData Central dump files.
const (
	markerFoundation = "FoundationFoods"
	markerSurvey     = "SurveyFoods"
	markerSRLegacy   = "SRLegacyFoods"
)

// sniffBytes is how much of the file head is inspected for a marker.
const sniffBytes = 2048

// Streamer decodes dump files record by record.
type Streamer struct{}

// NewStreamer creates a new dump file streamer
func NewStreamer() *Streamer {
	return &Streamer{}
}

// Stream hands each food record of one dump file to fn in document
// order. Decoding stops at the first record or callback error.
func (s *Streamer) Stream(ctx context.Context, path string, fn func(domain.Food) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	key := DetectPath(path)

	dec := json.NewDecoder(bufio.NewReaderSize(f, 1<<20))
	if err := seekArray(dec, key); err != nil {
		return fmt.Errorf("locate record array in %s: %w", path, err)
	}

	for dec.More() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var food domain.Food
		if err := dec.Decode(&food); err != nil {
			return fmt.Errorf("decode record in %s: %w", path, err)
		}
		if err := fn(food); err != nil {
			return err
		}
	}

	return nil
}

// DetectPath inspects the head of a dump file and returns the name of
// the top-level array holding the records, or "" when the document root
// itself is expected to be the array.
func DetectPath(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, sniffBytes)
	n, _ := io.ReadFull(f, head)
	start := string(head[:n])

	for _, marker := range []string{markerFoundation, markerSurvey, markerSRLegacy} {
		if strings.Contains(start, `"`+marker+`"`) {
			return marker
		}
	}
	return ""
}

// seekArray advances the decoder to just inside the record array: the
// value of the named top-level key, or the document root itself when no
// key is given.
func seekArray(dec *json.Decoder, key string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return fmt.Errorf("unexpected leading token %v", tok)
	}

	if delim == '[' {
		if key != "" {
			return fmt.Errorf("document is a bare array, expected object with %q", key)
		}
		return nil
	}
	if delim != '{' {
		return fmt.Errorf("unexpected leading delimiter %v", delim)
	}
	if key == "" {
		return fmt.Errorf("document is an object but no known food array marker was found")
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return fmt.Errorf("key %q not found", key)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v while scanning keys", tok)
		}
		if name == key {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if d, ok := tok.(json.Delim); !ok || d != '[' {
				return fmt.Errorf("value of %q is not an array", key)
			}
			return nil
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
}

// skipValue consumes one JSON value token by token, so skipped siblings
// of the record array are never materialized.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// ExtractNutrients builds the fixed nutrient set for one record. A
// nutrient the record does not carry, or carries without an amount,
// stays 0.
func ExtractNutrients(food domain.Food) domain.NutrientSet {
	var set domain.NutrientSet

	for _, n := range food.FoodNutrients {
		amount := 0.0
		if n.Amount != nil {
			amount = *n.Amount
		}
		switch n.Number() {
		case domain.NutrientNumberProtein:
			set.Protein = amount
		case domain.NutrientNumberFat:
			set.Fat = amount
		case domain.NutrientNumberCarbs:
			set.Carbs = amount
		case domain.NutrientNumberEnergy:
			set.Energy = amount
		case domain.NutrientNumberPhe:
			set.Phe = amount
		}
	}

	return set
}
