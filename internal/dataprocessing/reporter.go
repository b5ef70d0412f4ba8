package dataprocessing

import (
	"fmt"
	"io"
)

// Reporter prints the diagnostic text of a run
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// PrintDiagnostics prints missing-value counts per column and the counts of
// non-positive prices and quantities
func (r *Reporter) PrintDiagnostics(d Diagnostics) error {
	ew := &errWriter{w: r.w}
	ew.printf("\n=== Data info ===\n")
	for _, m := range d.Missing {
		ew.printf("%s: %d missing of %d\n", m.Column, m.Missing, d.Rows)
	}
	ew.printf("\nPrices less than 0: %d\n", d.NonPositivePrice)
	ew.printf("Quantity less than 0: %d\n\n", d.NonPositiveQuantity)
	return ew.err
}

// PrintProfitability prints the most and least profitable months of an
// enriched table
func (r *Reporter) PrintProfitability(t *Table) error {
	ew := &errWriter{w: r.w}
	p, ok := MonthProfitability(t)
	if !ok {
		ew.printf("No transactions left after cleaning\n\n")
		return ew.err
	}
	ew.printf("Most profitable month: %s - %s\n", p.Best.Month, p.Best.Amount.String())
	ew.printf("Most unprofitable month: %s - %s\n\n", p.Worst.Month, p.Worst.Amount.String())
	return ew.err
}

// errWriter keeps the first write error
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
