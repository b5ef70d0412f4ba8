package exporter

import (
	"database/sql"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

func TestFormatField(t *testing.T) {
	rec := domain.Transaction{
		Row:             12,
		TransactionDate: civil.Date{Year: 2024, Month: 11, Day: 2},
		Gender:          "Female",
		Age:             41,
		Price:           decimal.RequireFromString("19.990"),
		Quantity:        3,
		Country:         "Spain",
		ProductCategory: "Garden",
		PaymentMethod:   "Cash",
		Extra: map[string]sql.NullString{
			"store": {String: "North", Valid: true},
			"note":  {},
		},
		TotalAmount: decimal.RequireFromString("59.970"),
		Month:       domain.November,
	}

	tests := []struct {
		column string
		want   string
	}{
		{domain.ColumnTransactionDate, "2024-11-02"},
		{domain.ColumnGender, "Female"},
		{domain.ColumnAge, "41"},
		{domain.ColumnPrice, "19.99"},
		{domain.ColumnQuantity, "3"},
		{domain.ColumnCountry, "Spain"},
		{domain.ColumnProductCategory, "Garden"},
		{domain.ColumnPaymentMethod, "Cash"},
		{domain.ColumnTotalAmount, "59.97"},
		{domain.ColumnMonth, "November"},
		{"store", "North"},
		{"note", ""},
		{"absent", ""},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.Equal(t, tt.want, formatField(rec, tt.column))
		})
	}
}

func TestFormatField_MissingDate(t *testing.T) {
	rec := domain.Transaction{Month: domain.NoMonth}
	assert.Equal(t, "", formatField(rec, domain.ColumnTransactionDate))
	assert.Equal(t, "", formatField(rec, domain.ColumnMonth))
}

func TestTableRow(t *testing.T) {
	rec := domain.Transaction{Row: 5, Gender: "Male", Age: 30}
	assert.Equal(t, []string{"5", "Male", "30"}, tableRow(rec, []string{"gender", "age"}))
	assert.Equal(t, []string{"", "gender", "age"}, tableHeader([]string{"gender", "age"}))
}
