package domain

import "errors"

var (
	// ErrNoInput is returned when none of the configured input files exist
	ErrNoInput = errors.New("no configured input files found")

	// ErrFoodNotFound is returned when a record is not in the loaded dataset
	ErrFoodNotFound = errors.New("food not found in dataset")

	// ErrDatasetNotLoaded is returned when the serve layer has no dataset
	ErrDatasetNotLoaded = errors.New("dataset not loaded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrTranslateFailure is returned when the translation endpoint fails
	ErrTranslateFailure = errors.New("translation request failed")
)
