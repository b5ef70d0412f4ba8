package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Fekt0ral/Exploratory-data-analysis-project/internal/errors"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/infrastructure"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/operations"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/internal/shared/testutil"
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts"
)

// writeConfig writes a configuration reading input and writing to outDir
func writeConfig(t *testing.T, dir, input, outDir string) string {
	t.Helper()
	content := fmt.Sprintf(`pipeline:
  input_file: %s
  output_dir: %s
  manifest_file: manifest.json
telemetry:
  metrics_file: metrics.prom
`, input, outDir)
	path := filepath.Join(dir, "eda.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	return path
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &out))
	assert.Equal(t, contracts.GetVersionString()+"\n", out.String())
}

func TestRun_UnknownFlag(t *testing.T) {
	err := run(context.Background(), []string{"-nope"}, &bytes.Buffer{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestRun_MissingConfigFile(t *testing.T) {
	err := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	fixtures := testutil.NewTransactionFixtures(dir)
	input, err := fixtures.CreateTransactionLog("transactions.csv", fixtures.GetSampleRows())
	require.NoError(t, err)
	outDir := filepath.Join(dir, "out")
	cfgPath := writeConfig(t, dir, input, outDir)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath}, &out))

	assert.True(t, strings.HasPrefix(out.String(), "\n=== Data info ===\n"))
	assert.Contains(t, out.String(), "Most profitable month: January - 301\n")

	for _, name := range []string{
		"transactions_cleaned.csv",
		"age_distribution.png",
		"amount_by_gender.png",
		"amount_by_country.png",
		"top_5_categories.png",
		"orders_by_months.png",
		"age_quantity_revenue.png",
		"payment_methods_distribution.png",
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	manifest, err := operations.LoadManifestFromFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, "completed", manifest.Status)
	assert.Len(t, manifest.Stages, 6)
	assert.Len(t, manifest.Artifacts, 8)

	metrics, err := os.ReadFile(filepath.Join(outDir, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "eda_rows_loaded")
}

func TestRun_MissingInputFails(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfgPath := writeConfig(t, dir, filepath.Join(dir, "missing.csv"), outDir)

	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", cfgPath}, &out)
	require.Error(t, err)

	assert.Equal(t, operations.StepIDLoad, operations.FailedStep(err))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeFileAccess))
	assert.Empty(t, out.String())

	manifest, err := operations.LoadManifestFromFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, "failed", manifest.Status)
}
