// Package exporter writes the cleaned transaction table.
//
// CSVWriter writes transactions_cleaned.csv: an unnamed row-index column,
// the input columns in header order, then total_amount and month. Decimals
// are written in their shortest exact form and missing values as empty
// fields, so the file can be read back by the loader and cleaned again
// without change.
//
// XLSXWriter optionally writes the same rows to a workbook together with a
// summary sheet of monthly revenue, revenue by country and the pre-clean
// diagnostics.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths, logger)
//	path, err := w.WriteTable(ctx, "transactions_cleaned.csv", enriched)
package exporter
