package exporter

import (
	"database/sql"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// tableHeader prefixes the columns with the unnamed index column
func tableHeader(columns []string) []string {
	header := make([]string, 0, len(columns)+1)
	header = append(header, "")
	return append(header, columns...)
}

// tableRow renders rec in column order after its row index
func tableRow(rec domain.Transaction, columns []string) []string {
	row := make([]string, 0, len(columns)+1)
	row = append(row, formatInt(int64(rec.Row)))
	for _, column := range columns {
		row = append(row, formatField(rec, column))
	}
	return row
}

func formatField(rec domain.Transaction, column string) string {
	switch column {
	case domain.ColumnTransactionDate:
		return formatDate(rec.TransactionDate)
	case domain.ColumnGender:
		return rec.Gender
	case domain.ColumnAge:
		return formatInt(int64(rec.Age))
	case domain.ColumnPrice:
		return formatDecimal(rec.Price)
	case domain.ColumnQuantity:
		return formatInt(rec.Quantity)
	case domain.ColumnCountry:
		return rec.Country
	case domain.ColumnProductCategory:
		return rec.ProductCategory
	case domain.ColumnPaymentMethod:
		return rec.PaymentMethod
	case domain.ColumnTotalAmount:
		return formatDecimal(rec.TotalAmount)
	case domain.ColumnMonth:
		return rec.Month.String()
	default:
		return formatNullString(rec.Extra[column])
	}
}

// formatDecimal writes the shortest exact representation
func formatDecimal(d decimal.Decimal) string {
	return d.String()
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatDate leaves a missing date empty
func formatDate(d civil.Date) string {
	if !d.IsValid() {
		return ""
	}
	return d.String()
}

func formatNullString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
