// Package table persists repository records as a flat CSV file with a
// header row.
package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"repoanalysis/logger"
	"repoanalysis/models"
)

// Write encodes records with a header row of models.Columns.
func Write(w io.Writer, records []models.RepositoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(models.Columns))
	for _, rec := range records {
		row[0] = rec.Name
		row[1] = rec.Language
		for i, v := range rec.Ints() {
			row[i+2] = strconv.Itoa(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", rec.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read decodes a table written by Write.
func Read(r io.Reader) ([]models.RepositoryRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(models.Columns)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty table", ErrHeaderMismatch)
		}
		return nil, fmt.Errorf("%w: %v", ErrHeaderMismatch, err)
	}
	for i, col := range models.Columns {
		if header[i] != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i, header[i], col)
		}
	}

	var records []models.RepositoryRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
		}

		rec := models.RepositoryRecord{Name: row[0], Language: row[1]}
		for i, col := range models.NumericColumns {
			v, err := strconv.Atoi(row[i+2])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %q", ErrInvalidRow, line, col, row[i+2])
			}
			if err := rec.SetInt(col, v); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// WriteFile writes the table to path through a temporary file in the same
// directory, so path either holds the complete table or is left untouched.
func WriteFile(path string, records []models.RepositoryRecord) (err error) {
	if path == "" {
		return fmt.Errorf("%w: table path cannot be empty", ErrInvalidInput)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".table-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temporary table: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, records); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set table permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary table: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move table into place: %w", err)
	}
	return nil
}

// ReadFile reads the table at path.
func ReadFile(path string) ([]models.RepositoryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Store is a CSV table at a fixed path.
type Store struct {
	Path string
}

// NewStore returns a Store for path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Write replaces the table with records.
func (s *Store) Write(ctx context.Context, records []models.RepositoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("Writing table", zap.String("path", s.Path), zap.Int("records", len(records)))
	return WriteFile(s.Path, records)
}

// Read loads the table.
func (s *Store) Read(ctx context.Context) ([]models.RepositoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("Table loaded", zap.String("path", s.Path), zap.Int("records", len(records)))
	return records, nil
}
