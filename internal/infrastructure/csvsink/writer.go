// Package csvsink writes delimiter-separated output files with a header
// row written exactly once.
package csvsink

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Writer appends rows to a single output file. Close is idempotent so
// callers can both defer it for safety and call it explicitly to check
// the flush error.
type Writer struct {
	file   *os.File
	csv    *csv.Writer
	rows   int
	closed bool
}

// New creates the output file and writes the header.
func New(path string, delimiter rune, header []string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = delimiter

	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &Writer{file: f, csv: w}, nil
}

// Write appends one row.
func (w *Writer) Write(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written so far, excluding the
// header.
func (w *Writer) Rows() int {
	return w.rows
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.csv.Flush()
	err := w.csv.Error()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}
