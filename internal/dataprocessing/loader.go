package dataprocessing

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"

	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// naValues are the tokens read as missing, the same set pandas uses by default
var naValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// indexColumnNames name a leading row-index column written by a previous export.
// gota renames an empty header to X0.
var indexColumnNames = map[string]bool{
	"":           true,
	"X0":         true,
	"Unnamed: 0": true,
}

// dateLayouts are tried in order when parsing transaction_date
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Loader reads a transaction log into a RawTable
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile reads the delimited file at path
func (l *Loader) LoadFile(ctx context.Context, path string) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewFileAccessError("failed to read transaction log", err).
			WithContext("path", path)
	}

	table, err := l.Load(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "loaded transaction log",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

// Load reads a header row followed by transaction rows from r.
// Every column is read as text first; typed fields are parsed afterwards so
// errors can name the offending row and value.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewFileAccessError("failed to read transaction log", err)
	}

	// Remove BOM if present
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		// gota refuses a header without rows; that is an empty log, not a broken one
		if header, ok := headerOnly(data); ok {
			l.logger.WarnContext(ctx, "transaction log has no rows")
			return emptyRawTable(header)
		}
		return nil, apperrors.NewParsingError("failed to parse transaction log", df.Err)
	}

	return buildRawTable(df)
}

// headerOnly reports whether data holds exactly one CSV record
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

func emptyRawTable(header []string) (*RawTable, error) {
	columns := keptColumns(header)
	if err := checkSchema(columns); err != nil {
		return nil, err
	}
	return &RawTable{Columns: columns, Records: []domain.RawTransaction{}}, nil
}

// keptColumns drops a leading index column and previously derived columns
func keptColumns(names []string) []string {
	kept := make([]string, 0, len(names))
	for i, name := range names {
		if i == 0 && indexColumnNames[name] {
			continue
		}
		if name == domain.ColumnTotalAmount || name == domain.ColumnMonth {
			continue
		}
		kept = append(kept, name)
	}
	return kept
}

func checkSchema(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, required := range domain.RequiredColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError("transaction log is missing required columns").
			WithContext("missing", strings.Join(missing, ","))
	}
	return nil
}

// textColumn is a column's cell text with its missing mask
type textColumn struct {
	values  []string
	missing []bool
}

func (c textColumn) nullString(row int) sql.NullString {
	if c.missing[row] {
		return sql.NullString{}
	}
	return sql.NullString{String: c.values[row], Valid: true}
}

func buildRawTable(df dataframe.DataFrame) (*RawTable, error) {
	columns := keptColumns(df.Names())
	if err := checkSchema(columns); err != nil {
		return nil, err
	}

	cols := make(map[string]textColumn, len(columns))
	for _, name := range columns {
		s := df.Col(name)
		if s.Err != nil {
			return nil, apperrors.NewParsingError("failed to read column", s.Err).WithContext("column", name)
		}
		cols[name] = textColumn{values: s.Records(), missing: s.IsNaN()}
	}

	extras := extraColumns(columns)
	records := make([]domain.RawTransaction, df.Nrow())

	for row := range records {
		rec := domain.RawTransaction{
			Row:             row,
			Gender:          cols[domain.ColumnGender].nullString(row),
			Country:         cols[domain.ColumnCountry].nullString(row),
			ProductCategory: cols[domain.ColumnProductCategory].nullString(row),
			PaymentMethod:   cols[domain.ColumnPaymentMethod].nullString(row),
		}

		var err error
		if rec.TransactionDate, err = parseDateCell(cols[domain.ColumnTransactionDate], row); err != nil {
			return nil, err
		}
		if rec.Age, err = parseDecimalCell(cols[domain.ColumnAge], domain.ColumnAge, row); err != nil {
			return nil, err
		}
		if rec.Price, err = parseDecimalCell(cols[domain.ColumnPrice], domain.ColumnPrice, row); err != nil {
			return nil, err
		}
		if rec.Quantity, err = parseDecimalCell(cols[domain.ColumnQuantity], domain.ColumnQuantity, row); err != nil {
			return nil, err
		}
		if rec.Quantity.Valid && !rec.Quantity.Decimal.Equal(rec.Quantity.Decimal.Truncate(0)) {
			return nil, cellError("quantity must be a whole number", nil, domain.ColumnQuantity, row, rec.Quantity.Decimal.String())
		}

		if len(extras) > 0 {
			rec.Extra = make(map[string]sql.NullString, len(extras))
			for _, name := range extras {
				rec.Extra[name] = cols[name].nullString(row)
			}
		}

		records[row] = rec
	}

	return &RawTable{Columns: columns, Records: records}, nil
}

func parseDateCell(col textColumn, row int) (civil.Date, error) {
	if col.missing[row] {
		return civil.Date{}, nil
	}
	d, err := ParseDate(col.values[row])
	if err != nil {
		return civil.Date{}, cellError("failed to parse date", err, domain.ColumnTransactionDate, row, col.values[row])
	}
	return d, nil
}

func parseDecimalCell(col textColumn, name string, row int) (decimal.NullDecimal, error) {
	if col.missing[row] {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(col.values[row]))
	if err != nil {
		return decimal.NullDecimal{}, cellError("failed to parse number", err, name, row, col.values[row])
	}
	return decimal.NewNullDecimal(d), nil
}

// cellError reports the data row as its 1-based line in the file (header is line 1)
func cellError(message string, cause error, column string, row int, value string) error {
	return apperrors.NewParsingError(fmt.Sprintf("%s in column %s", message, column), cause).
		WithContext("line", row+2).
		WithContext("value", value)
}

// ParseDate parses a calendar date in one of the accepted layouts.
// Any time-of-day component is discarded.
func ParseDate(value string) (civil.Date, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("unrecognized date %q", value)
}
