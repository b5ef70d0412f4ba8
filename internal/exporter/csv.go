package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/config"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/dataprocessing"
	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteTable writes the table with a leading row-index column, overwriting
// any existing file. The write is not atomic. Returns the file's path.
func (w *CSVWriter) WriteTable(ctx context.Context, filename string, t *dataprocessing.Table) (string, error) {
	fullPath := w.paths.GetOutputPath(filename)

	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("file_path", filename),
		slog.String("full_path", fullPath),
		slog.Int("record_count", t.Len()))

	columns := t.OutputColumns()
	stream, err := w.CreateStreamWriter(fullPath, tableHeader(columns), false)
	if err != nil {
		return "", err
	}

	for _, rec := range t.Records {
		if err := stream.WriteRecord(tableRow(rec, columns)); err != nil {
			stream.Close()
			return "", apperrors.NewStorageError("failed to write record", err).
				WithContext("path", fullPath).
				WithContext("row", rec.Row)
		}
	}

	if err := stream.Close(); err != nil {
		return "", apperrors.NewStorageError("failed to flush CSV file", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer, truncating the file.
// bom prefixes the file with a UTF-8 byte order mark.
func (w *CSVWriter) CreateStreamWriter(fullPath string, headers []string, bom bool) (*StreamWriter, error) {
	// Ensure directory exists
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err).WithContext("dir", dir)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create file", err).WithContext("path", fullPath)
	}

	if bom {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write BOM", err).WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write headers", err).WithContext("path", fullPath)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
