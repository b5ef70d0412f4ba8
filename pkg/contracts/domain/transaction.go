package domain

import (
	"database/sql"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Column names of the transaction log
const (
	ColumnTransactionDate = "transaction_date"
	ColumnGender          = "gender"
	ColumnAge             = "age"
	ColumnPrice           = "price"
	ColumnQuantity        = "quantity"
	ColumnCountry         = "country"
	ColumnProductCategory = "product_category"
	ColumnPaymentMethod   = "payment_method"

	// Derived columns
	ColumnTotalAmount = "total_amount"
	ColumnMonth       = "month"
)

// UnknownGender replaces a missing gender during cleaning
const UnknownGender = "Unknown"

// RequiredColumns lists the columns every transaction log must carry
var RequiredColumns = []string{
	ColumnTransactionDate,
	ColumnGender,
	ColumnAge,
	ColumnPrice,
	ColumnQuantity,
	ColumnCountry,
	ColumnProductCategory,
	ColumnPaymentMethod,
}

// DerivedColumns lists the columns computed by enrichment, in output order
var DerivedColumns = []string{ColumnTotalAmount, ColumnMonth}

// RawTransaction is one loaded row before cleaning. Every field may be missing.
type RawTransaction struct {
	Row             int                       `json:"row"`
	TransactionDate civil.Date                `json:"transaction_date"`
	Gender          sql.NullString            `json:"gender"`
	Age             decimal.NullDecimal       `json:"age"`
	Price           decimal.NullDecimal       `json:"price"`
	Quantity        decimal.NullDecimal       `json:"quantity"`
	Country         sql.NullString            `json:"country"`
	ProductCategory sql.NullString            `json:"product_category"`
	PaymentMethod   sql.NullString            `json:"payment_method"`
	Extra           map[string]sql.NullString `json:"extra,omitempty"`
}

// HasDate reports whether the transaction date was present
func (r RawTransaction) HasDate() bool {
	return r.TransactionDate.IsValid()
}

// Transaction is a cleaned transaction record. TotalAmount and Month are
// zero until the record has been enriched.
type Transaction struct {
	Row             int                       `json:"row"`
	TransactionDate civil.Date                `json:"transaction_date"`
	Gender          string                    `json:"gender" validate:"required"`
	Age             int                       `json:"age"`
	Price           decimal.Decimal           `json:"price" validate:"gt=0"`
	Quantity        int64                     `json:"quantity" validate:"gt=0"`
	Country         string                    `json:"country"`
	ProductCategory string                    `json:"product_category"`
	PaymentMethod   string                    `json:"payment_method"`
	Extra           map[string]sql.NullString `json:"extra,omitempty"`

	TotalAmount decimal.Decimal `json:"total_amount"`
	Month       Month           `json:"month" validate:"gte=0,lte=12"`
}

// Amount returns price times quantity
func (t Transaction) Amount() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}

// HasDate reports whether the transaction date was present
func (t Transaction) HasDate() bool {
	return t.TransactionDate.IsValid()
}
