package dataprocessing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/shared/testutil"
)

func TestReporter_PrintDiagnostics(t *testing.T) {
	f := testutil.NewTransactionFixtures("")
	rows := append(f.GetSampleRows(), f.GetNegativePriceRow())
	d := Diagnose(loadRows(t, rows))

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).PrintDiagnostics(d))

	want := "\n=== Data info ===\n" +
		"transaction_date: 0 missing of 9\n" +
		"gender: 1 missing of 9\n" +
		"age: 1 missing of 9\n" +
		"price: 0 missing of 9\n" +
		"quantity: 0 missing of 9\n" +
		"country: 0 missing of 9\n" +
		"product_category: 0 missing of 9\n" +
		"payment_method: 0 missing of 9\n" +
		"\nPrices less than 0: 2\n" +
		"Quantity less than 0: 1\n\n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_PrintProfitability(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-03-05", "Male", 30, "10", 2, "US", "A", "Card"},
		txSpec{"2024-05-05", "Male", 30, "12.5", 4, "US", "A", "Card"},
	)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).PrintProfitability(table))

	assert.Equal(t,
		"Most profitable month: May - 50\nMost unprofitable month: January - 0\n\n",
		buf.String())
}

func TestReporter_PrintProfitability_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).PrintProfitability(&Table{}))
	assert.Equal(t, "No transactions left after cleaning\n\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestReporter_WriteError(t *testing.T) {
	err := NewReporter(failingWriter{}).PrintDiagnostics(Diagnostics{})
	assert.EqualError(t, err, "closed pipe")
}
