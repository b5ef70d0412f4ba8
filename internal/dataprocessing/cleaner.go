package dataprocessing

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// CleanReport describes the repairs made by Clean
type CleanReport struct {
	RowsIn  int
	RowsOut int

	GenderImputed int
	AgeImputed    int
	// AgeMean is the mean of the present ages before truncation.
	// It is zero and AgeMeanAvailable false when no age was present.
	AgeMean          decimal.Decimal
	AgeMeanAvailable bool

	DroppedPrice    int
	DroppedQuantity int
}

// Cleaner repairs and filters a loaded table
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a new cleaner
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean returns a new table in which every gender and age is present,
// ages are whole numbers, and every price and quantity is positive.
// Repairs run in order: gender, age, price filter, quantity filter.
// The age mean is taken over all loaded rows, including rows later dropped.
func (c *Cleaner) Clean(ctx context.Context, raw *RawTable) (*Table, CleanReport, error) {
	report := CleanReport{RowsIn: raw.Len()}

	mean, ok := meanAge(raw)
	report.AgeMean, report.AgeMeanAvailable = mean, ok
	if !ok && raw.Len() > 0 {
		c.logger.WarnContext(ctx, "no ages present, imputing zero")
	}

	out := &Table{Records: make([]domain.Transaction, 0, raw.Len())}
	if raw != nil {
		out.Columns = append([]string(nil), raw.Columns...)
	}

	for _, rec := range raw.recordsOrNil() {
		gender := rec.Gender.String
		if !rec.Gender.Valid {
			gender = domain.UnknownGender
			report.GenderImputed++
		}

		age := rec.Age.Decimal
		if !rec.Age.Valid {
			age = mean
			report.AgeImputed++
		}

		if !rec.Price.Valid || rec.Price.Decimal.Sign() <= 0 {
			report.DroppedPrice++
			continue
		}
		if !rec.Quantity.Valid || rec.Quantity.Decimal.Sign() <= 0 {
			report.DroppedQuantity++
			continue
		}

		out.Records = append(out.Records, domain.Transaction{
			Row:             rec.Row,
			TransactionDate: rec.TransactionDate,
			Gender:          gender,
			Age:             int(age.IntPart()),
			Price:           rec.Price.Decimal,
			Quantity:        rec.Quantity.Decimal.IntPart(),
			Country:         rec.Country.String,
			ProductCategory: rec.ProductCategory.String,
			PaymentMethod:   rec.PaymentMethod.String,
			Extra:           rec.Extra,
		})
	}
	report.RowsOut = len(out.Records)

	if err := ValidateTable(out); err != nil {
		return nil, report, err
	}

	c.logger.InfoContext(ctx, "cleaned transaction table",
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("gender_imputed", report.GenderImputed),
		slog.Int("age_imputed", report.AgeImputed),
		slog.String("age_mean", report.AgeMean.String()),
		slog.Int("dropped_price", report.DroppedPrice),
		slog.Int("dropped_quantity", report.DroppedQuantity))

	return out, report, nil
}

// meanAge returns the exact mean of the present ages
func meanAge(raw *RawTable) (decimal.Decimal, bool) {
	sum := decimal.Zero
	n := int64(0)
	for _, rec := range raw.recordsOrNil() {
		if rec.Age.Valid {
			sum = sum.Add(rec.Age.Decimal)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(n)), true
}
