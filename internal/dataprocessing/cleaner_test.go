package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/shared/testutil"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

func loadRows(t *testing.T, rows []testutil.TransactionRow) *RawTable {
	t.Helper()
	f := testutil.NewTransactionFixtures(t.TempDir())
	raw, err := loadString(t, f.CSV(rows))
	require.NoError(t, err)
	return raw
}

func cleanRows(t *testing.T, rows []testutil.TransactionRow) (*Table, CleanReport) {
	t.Helper()
	table, report, err := NewCleaner(nil).Clean(context.Background(), loadRows(t, rows))
	require.NoError(t, err)
	return table, report
}

func TestDiagnose(t *testing.T) {
	f := testutil.NewTransactionFixtures("")
	d := Diagnose(loadRows(t, f.GetSampleRows()))

	assert.Equal(t, 8, d.Rows)
	require.Len(t, d.Missing, len(domain.RequiredColumns))
	for i, column := range domain.RequiredColumns {
		assert.Equal(t, column, d.Missing[i].Column)
	}
	assert.Equal(t, 1, d.MissingFor(domain.ColumnGender))
	assert.Equal(t, 1, d.MissingFor(domain.ColumnAge))
	assert.Equal(t, 0, d.MissingFor(domain.ColumnPrice))
	assert.Equal(t, -1, d.MissingFor("store"))
	assert.Equal(t, 1, d.NonPositivePrice)
	assert.Equal(t, 1, d.NonPositiveQuantity)
}

func TestDiagnose_MissingIsNotNonPositive(t *testing.T) {
	raw := loadRows(t, []testutil.TransactionRow{
		{"2024-01-01", "Male", "30", "", "", "US", "Books", "Card"},
		{"2024-01-01", "Male", "30", "0", "-1", "US", "Books", "Card"},
	})

	d := Diagnose(raw)
	assert.Equal(t, 1, d.MissingFor(domain.ColumnPrice))
	assert.Equal(t, 1, d.MissingFor(domain.ColumnQuantity))
	assert.Equal(t, 1, d.NonPositivePrice)
	assert.Equal(t, 1, d.NonPositiveQuantity)
}

func TestDiagnose_Empty(t *testing.T) {
	d := Diagnose(nil)
	assert.Equal(t, 0, d.Rows)
	assert.Empty(t, d.Missing)
}

func TestCleaner_SampleLog(t *testing.T) {
	f := testutil.NewTransactionFixtures("")
	table, report := cleanRows(t, f.GetSampleRows())

	assert.Equal(t, 8, report.RowsIn)
	assert.Equal(t, 6, report.RowsOut)
	assert.Equal(t, 1, report.GenderImputed)
	assert.Equal(t, 1, report.AgeImputed)
	assert.Equal(t, 1, report.DroppedPrice)
	assert.Equal(t, 1, report.DroppedQuantity)

	// (34+45+29+52+38+61+23)/7 = 40.28...
	assert.True(t, report.AgeMeanAvailable)
	assert.Equal(t, int64(40), report.AgeMean.IntPart())

	rows := make([]int, 0, table.Len())
	for _, rec := range table.Records {
		rows = append(rows, rec.Row)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 6, 7}, rows, "row index survives filtering")

	assert.Equal(t, domain.UnknownGender, table.Records[2].Gender)
	assert.Equal(t, 40, table.Records[3].Age)
	assert.False(t, table.Enriched)
}

func TestCleaner_Invariants(t *testing.T) {
	f := testutil.NewTransactionFixtures("")
	rows := append(f.GetSampleRows(),
		testutil.TransactionRow{"2024-08-01", "", "", "", "1", "US", "Books", "Card"},
		testutil.TransactionRow{"2024-08-02", "Male", "19.9", "3.333", "", "US", "Books", "Card"},
		testutil.TransactionRow{"2024-08-03", "Male", "44", "0", "0", "US", "Books", "Card"},
	)
	table, _ := cleanRows(t, rows)

	for _, rec := range table.Records {
		assert.True(t, rec.Price.IsPositive(), "row %d price", rec.Row)
		assert.Greater(t, rec.Quantity, int64(0), "row %d quantity", rec.Row)
		assert.NotEmpty(t, rec.Gender)
	}
}

func TestCleaner_AgeTruncatesTowardZero(t *testing.T) {
	table, report := cleanRows(t, []testutil.TransactionRow{
		{"2024-01-01", "Male", "20", "10", "1", "US", "Books", "Card"},
		{"2024-01-02", "Male", "21", "10", "1", "US", "Books", "Card"},
		{"2024-01-03", "Male", "", "10", "1", "US", "Books", "Card"},
		{"2024-01-04", "Male", "33.9", "10", "1", "US", "Books", "Card"},
	})

	// mean of 20, 21 and 33.9 is 24.966...
	assert.True(t, report.AgeMean.GreaterThan(decimal.NewFromInt(24)))
	assert.Equal(t, []int{20, 21, 24, 33}, []int{
		table.Records[0].Age, table.Records[1].Age, table.Records[2].Age, table.Records[3].Age,
	})
}

func TestCleaner_MeanIncludesDroppedRows(t *testing.T) {
	table, _ := cleanRows(t, []testutil.TransactionRow{
		{"2024-01-01", "Male", "", "10", "1", "US", "Books", "Card"},
		{"2024-01-02", "Male", "80", "-1", "1", "US", "Books", "Card"},
		{"2024-01-03", "Male", "20", "10", "1", "US", "Books", "Card"},
	})

	require.Equal(t, 2, table.Len())
	assert.Equal(t, 50, table.Records[0].Age)
}

func TestCleaner_NoAgesPresent(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	raw := loadRows(t, []testutil.TransactionRow{
		{"2024-01-01", "Male", "", "10", "1", "US", "Books", "Card"},
	})

	table, report, err := NewCleaner(logger).Clean(context.Background(), raw)
	require.NoError(t, err)

	assert.False(t, report.AgeMeanAvailable)
	assert.Equal(t, 0, table.Records[0].Age)
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "no ages present")
}

func TestCleaner_RowCountArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		rows    []testutil.TransactionRow
		overlap bool
	}{
		{
			name: "disjoint filters",
			rows: []testutil.TransactionRow{
				{"2024-01-01", "Male", "30", "-1", "1", "US", "Books", "Card"},
				{"2024-01-01", "Male", "30", "10", "0", "US", "Books", "Card"},
				{"2024-01-01", "Male", "30", "10", "1", "US", "Books", "Card"},
			},
		},
		{
			name: "overlapping filters",
			rows: []testutil.TransactionRow{
				{"2024-01-01", "Male", "30", "-1", "0", "US", "Books", "Card"},
				{"2024-01-01", "Male", "30", "10", "1", "US", "Books", "Card"},
			},
			overlap: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := loadRows(t, tt.rows)
			d := Diagnose(raw)
			table, report, err := NewCleaner(nil).Clean(context.Background(), raw)
			require.NoError(t, err)

			lower := d.Rows - d.NonPositivePrice - d.NonPositiveQuantity
			if tt.overlap {
				assert.Greater(t, table.Len(), lower)
			} else {
				assert.Equal(t, lower, table.Len())
			}
			assert.Equal(t, report.RowsIn-report.DroppedPrice-report.DroppedQuantity, report.RowsOut)
		})
	}
}

func TestCleaner_DoesNotModifyInput(t *testing.T) {
	f := testutil.NewTransactionFixtures("")
	raw := loadRows(t, f.GetSampleRows())

	_, _, err := NewCleaner(nil).Clean(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 8, raw.Len())
	assert.False(t, raw.Records[2].Gender.Valid)
	assert.False(t, raw.Records[3].Age.Valid)
}

func TestCleaner_EmptyTable(t *testing.T) {
	table, report, err := NewCleaner(nil).Clean(context.Background(), &RawTable{Columns: domain.RequiredColumns})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, domain.RequiredColumns, table.Columns)
	assert.Equal(t, 0, report.RowsOut)
}
