package writer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-scripts/krankenhaus/pkg/common"
)

// Sink stores the final hospital table
type Sink interface {
	Name() string
	Write(ctx context.Context, records []common.HospitalRecord) error
}

// CSVWriter writes the hospital table as a comma separated file
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter for path. An existing file is replaced on Write.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Name returns the output path
func (w *CSVWriter) Name() string {
	return w.path
}

// Write writes the header row followed by one row per record
func (w *CSVWriter) Write(ctx context.Context, records []common.HospitalRecord) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(common.CSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return file.Close()
}
