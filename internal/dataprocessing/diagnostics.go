package dataprocessing

import (
	"github.com/shopspring/decimal"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// ColumnMissing is the missing-value count of one input column
type ColumnMissing struct {
	Column  string
	Missing int
}

// Diagnostics summarizes the quality of a loaded table before cleaning
type Diagnostics struct {
	Rows    int
	Missing []ColumnMissing

	// Rows with a present price or quantity that is zero or negative.
	// Missing values are reported in Missing, not here.
	NonPositivePrice    int
	NonPositiveQuantity int
}

// MissingFor returns the missing count of column, or -1 if the column is unknown
func (d Diagnostics) MissingFor(column string) int {
	for _, m := range d.Missing {
		if m.Column == column {
			return m.Missing
		}
	}
	return -1
}

// Diagnose counts missing values per column, in header order, and
// non-positive prices and quantities
func Diagnose(raw *RawTable) Diagnostics {
	d := Diagnostics{Rows: raw.Len()}
	if raw == nil {
		return d
	}

	d.Missing = make([]ColumnMissing, len(raw.Columns))
	for i, column := range raw.Columns {
		d.Missing[i].Column = column
	}

	for _, rec := range raw.Records {
		for i := range d.Missing {
			if isMissing(rec, d.Missing[i].Column) {
				d.Missing[i].Missing++
			}
		}
		if nonPositive(rec.Price) {
			d.NonPositivePrice++
		}
		if nonPositive(rec.Quantity) {
			d.NonPositiveQuantity++
		}
	}

	return d
}

func isMissing(rec domain.RawTransaction, column string) bool {
	switch column {
	case domain.ColumnTransactionDate:
		return !rec.HasDate()
	case domain.ColumnGender:
		return !rec.Gender.Valid
	case domain.ColumnAge:
		return !rec.Age.Valid
	case domain.ColumnPrice:
		return !rec.Price.Valid
	case domain.ColumnQuantity:
		return !rec.Quantity.Valid
	case domain.ColumnCountry:
		return !rec.Country.Valid
	case domain.ColumnProductCategory:
		return !rec.ProductCategory.Valid
	case domain.ColumnPaymentMethod:
		return !rec.PaymentMethod.Valid
	default:
		return !rec.Extra[column].Valid
	}
}

func nonPositive(v decimal.NullDecimal) bool {
	return v.Valid && v.Decimal.Sign() <= 0
}
