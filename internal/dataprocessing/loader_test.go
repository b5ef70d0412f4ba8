package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/shared/testutil"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

const header = "transaction_date,gender,age,price,quantity,country,product_category,payment_method"

func loadString(t *testing.T, content string) (*RawTable, error) {
	t.Helper()
	return NewLoader(nil).Load(context.Background(), strings.NewReader(content))
}

func TestLoader_LoadFile(t *testing.T) {
	f := testutil.NewTransactionFixtures(t.TempDir())
	path, err := f.CreateTransactionLog("transactions.csv", f.GetSampleRows())
	require.NoError(t, err)

	logger, handler := testutil.NewTestLogger(t)
	raw, err := NewLoader(logger).LoadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, domain.RequiredColumns, raw.Columns)
	require.Equal(t, 8, raw.Len())

	first := raw.Records[0]
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 10}, first.TransactionDate)
	assert.Equal(t, "Female", first.Gender.String)
	assert.True(t, first.Price.Decimal.Equal(decimal.RequireFromString("120.5")))
	assert.True(t, first.Quantity.Decimal.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "Credit Card", first.PaymentMethod.String)

	assert.False(t, raw.Records[2].Gender.Valid, "empty gender is missing")
	assert.False(t, raw.Records[3].Age.Valid, "empty age is missing")
	assert.Equal(t, 7, raw.Records[7].Row)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "loaded transaction log")
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	_, err := NewLoader(nil).LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeFileAccess))
}

func TestLoader_NATokens(t *testing.T) {
	raw, err := loadString(t, header+"\n"+
		"2024-01-01,NaN,NA,10,1,US,Books,Card\n"+
		"2024-01-02,null,None,10,1,N/A,Books,<NA>\n"+
		",nan,,10,1,US,,Card\n")
	require.NoError(t, err)
	require.Equal(t, 3, raw.Len())

	for _, rec := range raw.Records {
		assert.False(t, rec.Gender.Valid)
		assert.False(t, rec.Age.Valid)
	}
	assert.False(t, raw.Records[1].Country.Valid)
	assert.False(t, raw.Records[1].PaymentMethod.Valid)
	assert.False(t, raw.Records[2].HasDate())
	assert.False(t, raw.Records[2].ProductCategory.Valid)
}

func TestLoader_DateLayouts(t *testing.T) {
	tests := []struct {
		value string
		want  civil.Date
	}{
		{"2024-03-05", civil.Date{Year: 2024, Month: 3, Day: 5}},
		{"2024-03-05 14:30:00", civil.Date{Year: 2024, Month: 3, Day: 5}},
		{"2024-03-05T14:30:00Z", civil.Date{Year: 2024, Month: 3, Day: 5}},
		{"2024/03/05", civil.Date{Year: 2024, Month: 3, Day: 5}},
		{"03/05/2024", civil.Date{Year: 2024, Month: 3, Day: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType apperrors.ErrorType
		wantLine int
	}{
		{
			name:     "missing column",
			content:  "transaction_date,gender,age,price,quantity,country,product_category\n2024-01-01,Male,30,10,1,US,Books\n",
			wantType: apperrors.ErrTypeSchema,
		},
		{
			name:     "unparsable date",
			content:  header + "\n2024-01-01,Male,30,10,1,US,Books,Card\nyesterday,Male,30,10,1,US,Books,Card\n",
			wantType: apperrors.ErrTypeParsing,
			wantLine: 3,
		},
		{
			name:     "non-numeric price",
			content:  header + "\n2024-01-01,Male,30,ten,1,US,Books,Card\n",
			wantType: apperrors.ErrTypeParsing,
			wantLine: 2,
		},
		{
			name:     "non-numeric age",
			content:  header + "\n2024-01-01,Male,old,10,1,US,Books,Card\n",
			wantType: apperrors.ErrTypeParsing,
			wantLine: 2,
		},
		{
			name:     "fractional quantity",
			content:  header + "\n2024-01-01,Male,30,10,1.5,US,Books,Card\n",
			wantType: apperrors.ErrTypeParsing,
			wantLine: 2,
		},
		{
			name:     "ragged row",
			content:  header + "\n2024-01-01,Male,30,10,1,US\n",
			wantType: apperrors.ErrTypeParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.content)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))

			if tt.wantLine > 0 {
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantLine, appErr.Context["line"])
			}
		})
	}
}

func TestLoader_WholeQuantityWithDecimalPoint(t *testing.T) {
	raw, err := loadString(t, header+"\n2024-01-01,Male,30,10,2.0,US,Books,Card\n")
	require.NoError(t, err)
	assert.True(t, raw.Records[0].Quantity.Decimal.Equal(decimal.NewFromInt(2)))
}

func TestLoader_HeaderOnly(t *testing.T) {
	raw, err := loadString(t, header+"\n")
	require.NoError(t, err)
	assert.Equal(t, 0, raw.Len())
	assert.Equal(t, domain.RequiredColumns, raw.Columns)
}

func TestLoader_HeaderOnlyMissingColumn(t *testing.T) {
	_, err := loadString(t, "transaction_date,gender\n")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestLoader_IgnoresIndexAndDerivedColumns(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"empty index header", ","},
		{"pandas index header", "Unnamed: 0,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := tt.header + header + ",total_amount,month\n" +
				"4,2024-03-05,Unknown,40,10,2,US,Books,Card,20,March\n"
			raw, err := loadString(t, content)
			require.NoError(t, err)

			assert.Equal(t, domain.RequiredColumns, raw.Columns)
			assert.Empty(t, raw.ExtraColumns())
			require.Equal(t, 1, raw.Len())
			assert.Equal(t, "Unknown", raw.Records[0].Gender.String)
		})
	}
}

func TestLoader_CarriesExtraColumns(t *testing.T) {
	raw, err := loadString(t, "transaction_id,"+header+",store\n"+
		"T1,2024-01-01,Male,30,10,1,US,Books,Card,North\n"+
		"T2,2024-01-02,Male,30,10,1,US,Books,Card,\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"transaction_id", "store"}, raw.ExtraColumns())
	assert.Equal(t, "T1", raw.Records[0].Extra["transaction_id"].String)
	assert.Equal(t, "North", raw.Records[0].Extra["store"].String)
	assert.False(t, raw.Records[1].Extra["store"].Valid)
}

func TestLoader_StripsByteOrderMark(t *testing.T) {
	raw, err := loadString(t, "\ufeff"+header+"\n2024-01-01,Male,30,10,1,US,Books,Card\n")
	require.NoError(t, err)
	assert.Equal(t, domain.RequiredColumns, raw.Columns)
}
