package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/config"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/dataprocessing"
	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// Sheet names of the exported workbook
const (
	TransactionsSheet = "transactions"
	SummarySheet      = "summary"
)

// XLSXWriter exports the cleaned table and its summary as a workbook
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// WriteWorkbook writes a transactions sheet with the same rows as the CSV
// export and a summary sheet with monthly revenue, revenue by country and
// the pre-clean diagnostics. Returns the file's path.
func (w *XLSXWriter) WriteWorkbook(ctx context.Context, filename string, t *dataprocessing.Table, diag dataprocessing.Diagnostics) (string, error) {
	fullPath := w.paths.GetOutputPath(filename)

	w.logger.InfoContext(ctx, "Writing XLSX workbook",
		slog.String("file_path", filename),
		slog.String("full_path", fullPath),
		slog.Int("record_count", t.Len()))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return "", storageError("failed to name sheet", err, fullPath)
	}
	if err := writeTransactions(f, t); err != nil {
		return "", storageError("failed to write transactions sheet", err, fullPath)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return "", storageError("failed to add summary sheet", err, fullPath)
	}
	if err := writeSummary(f, t, diag); err != nil {
		return "", storageError("failed to write summary sheet", err, fullPath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", storageError("failed to create directory", err, fullPath)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", storageError("failed to save workbook", err, fullPath)
	}
	return fullPath, nil
}

func storageError(message string, err error, path string) error {
	return apperrors.NewStorageError(message, err).WithContext("path", path)
}

func writeTransactions(f *excelize.File, t *dataprocessing.Table) error {
	columns := t.OutputColumns()
	header := tableHeader(columns)
	if err := setRow(f, TransactionsSheet, 1, toCells(header)); err != nil {
		return err
	}

	for i, rec := range t.Records {
		cells := make([]interface{}, 0, len(columns)+1)
		cells = append(cells, rec.Row)
		for _, column := range columns {
			cells = append(cells, cellValue(rec, column))
		}
		if err := setRow(f, TransactionsSheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps numeric columns numeric in the workbook
func cellValue(rec domain.Transaction, column string) interface{} {
	switch column {
	case domain.ColumnAge:
		return rec.Age
	case domain.ColumnPrice:
		return rec.Price.InexactFloat64()
	case domain.ColumnQuantity:
		return rec.Quantity
	case domain.ColumnTotalAmount:
		return rec.TotalAmount.InexactFloat64()
	default:
		return formatField(rec, column)
	}
}

func writeSummary(f *excelize.File, t *dataprocessing.Table, diag dataprocessing.Diagnostics) error {
	row := 1
	write := func(cells ...interface{}) error {
		err := setRow(f, SummarySheet, row, cells)
		row++
		return err
	}

	if err := write("Month", "Revenue", "Orders"); err != nil {
		return err
	}
	orders := dataprocessing.OrdersByMonth(t)
	for i, m := range dataprocessing.RevenueByMonth(t) {
		if err := write(m.Month.String(), m.Amount.InexactFloat64(), orders[i].Count); err != nil {
			return err
		}
	}

	row++
	if err := write("Country", "Revenue"); err != nil {
		return err
	}
	for _, c := range dataprocessing.RevenueByCountry(t) {
		if err := write(c.Key, c.Amount.InexactFloat64()); err != nil {
			return err
		}
	}

	row++
	if err := write("Column", "Missing", "Rows"); err != nil {
		return err
	}
	for _, m := range diag.Missing {
		if err := write(m.Column, m.Missing, diag.Rows); err != nil {
			return err
		}
	}
	if err := write("Prices less than 0", diag.NonPositivePrice); err != nil {
		return err
	}
	return write("Quantity less than 0", diag.NonPositiveQuantity)
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
