// Package config provides configuration management for the transactions
// analysis pipeline.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file (eda.yaml or EDA_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern EDA_<SECTION>_<FIELD>:
//
//	EDA_PIPELINE_INPUT_FILE=transactions.csv
//	EDA_PIPELINE_OUTPUT_DIR=out
//	EDA_EXPORT_XLSX_FILE=transactions_cleaned.xlsx
//	EDA_LOGGING_LEVEL=debug
//	EDA_TELEMETRY_METRICS_FILE=eda.prom
//
// Thresholds of the analysis itself (filters, bins, top-N) are constants and
// cannot be configured.
package config
