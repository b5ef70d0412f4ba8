package dataprocessing

import (
	"context"
	"log/slog"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// Enricher derives total_amount and month
type Enricher struct {
	logger *slog.Logger
}

// NewEnricher creates a new enricher
func NewEnricher(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{logger: logger}
}

// Enrich returns a copy of t with TotalAmount = Price × Quantity and the
// month of each transaction date
func (e *Enricher) Enrich(ctx context.Context, t *Table) (*Table, error) {
	if t == nil {
		t = &Table{}
	}

	out := t.clone()
	out.Enriched = true

	noMonth := 0
	for i := range out.Records {
		rec := &out.Records[i]
		rec.TotalAmount = rec.Amount()
		rec.Month = domain.MonthOf(rec.TransactionDate)
		if rec.Month == domain.NoMonth {
			noMonth++
		}
	}

	if err := ValidateTable(out); err != nil {
		return nil, err
	}

	if noMonth > 0 {
		e.logger.WarnContext(ctx, "transactions without a date have no month",
			slog.Int("count", noMonth))
	}
	e.logger.InfoContext(ctx, "enriched transaction table", slog.Int("rows", out.Len()))

	return out, nil
}
