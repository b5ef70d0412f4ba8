package dataprocessing

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

var (
	recordValidator     *validator.Validate
	recordValidatorOnce sync.Once
)

// getValidator returns the validator for cleaned records. Decimals are
// compared as floats by tag rules; exact checks are done at struct level.
func getValidator() *validator.Validate {
	recordValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterStructValidation(transactionStructLevel, domain.Transaction{})
		recordValidator = v
	})
	return recordValidator
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// transactionStructLevel checks the derived columns of an enriched record
func transactionStructLevel(sl validator.StructLevel) {
	t := sl.Current().Interface().(domain.Transaction)

	if !t.TotalAmount.IsZero() && !t.TotalAmount.Equal(t.Amount()) {
		sl.ReportError(t.TotalAmount, "TotalAmount", "total_amount", "eqamount", "")
	}
	if t.Month != domain.NoMonth && t.Month != domain.MonthOf(t.TransactionDate) {
		sl.ReportError(t.Month, "Month", "month", "eqdatemonth", "")
	}
}

// ValidateTable checks every record of t
func ValidateTable(t *Table) error {
	v := getValidator()
	for _, rec := range t.Records {
		if err := v.Struct(rec); err != nil {
			return apperrors.NewValidationError("record violates cleaned table invariants", err).
				WithContext("row", rec.Row)
		}
	}
	return nil
}
