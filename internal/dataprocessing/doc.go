// Package dataprocessing turns a transaction log into a cleaned, enriched
// table and the aggregates reported and charted from it.
//
// # Stages
//
// Each stage takes a table value and returns a new one; no stage modifies
// its input.
//
//	Loader    reads the CSV file into a RawTable (every field nullable)
//	Diagnose  counts missing and non-positive values before cleaning
//	Cleaner   imputes gender and age, drops non-positive price and quantity
//	Enricher  derives total_amount and month
//	Reporter  prints diagnostics and the most and least profitable months
//
// # Usage
//
//	raw, err := dataprocessing.NewLoader(logger).LoadFile(ctx, "transactions.csv")
//	if err != nil {
//	    return err
//	}
//	diag := dataprocessing.Diagnose(raw)
//	cleaned, report, err := dataprocessing.NewCleaner(logger).Clean(ctx, raw)
//	enriched, err := dataprocessing.NewEnricher(logger).Enrich(ctx, cleaned)
//
// The aggregation functions in analytics.go (RevenueByMonth, TopCategoriesByPrice,
// AgeQuantityPivot and so on) are pure and take an enriched Table.
//
// # Numbers
//
// Ages, prices and totals are shopspring decimals, so total_amount equals
// price × quantity exactly. Floats appear only in chart inputs.
//
// # Error Handling
//
// Loader and cleaner failures are *errors.AppError values typed as
// FILE_ACCESS, PARSING, SCHEMA or VALIDATION, with the row and value in the
// error context where one applies.
package dataprocessing
