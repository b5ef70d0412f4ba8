package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// TransactionRow is one input row as it appears in a transaction log
type TransactionRow struct {
	Date     string
	Gender   string
	Age      string
	Price    string
	Quantity string
	Country  string
	Category string
	Payment  string
}

func (r TransactionRow) fields() []string {
	return []string{r.Date, r.Gender, r.Age, r.Price, r.Quantity, r.Country, r.Category, r.Payment}
}

// TransactionFixtures provides transaction logs for testing
type TransactionFixtures struct {
	TestDataDir string
}

// NewTransactionFixtures creates a new fixtures manager
func NewTransactionFixtures(testDataDir string) *TransactionFixtures {
	return &TransactionFixtures{
		TestDataDir: testDataDir,
	}
}

// Header returns the schema header line
func (f *TransactionFixtures) Header() string {
	return strings.Join(domain.RequiredColumns, ",")
}

// GetSampleRows returns a small log with every kind of repair the cleaner does:
// a missing gender, a missing age, a negative price and a zero quantity
func (f *TransactionFixtures) GetSampleRows() []TransactionRow {
	return []TransactionRow{
		{"2024-01-10", "Female", "34", "120.50", "2", "Germany", "Electronics", "Credit Card"},
		{"2024-01-22", "Male", "45", "15.00", "4", "France", "Books", "PayPal"},
		{"2024-02-03", "", "29", "60.00", "1", "Germany", "Clothing", "Credit Card"},
		{"2024-03-05", "Female", "", "10", "2", "US", "Books", "Card"},
		{"2024-03-18", "Male", "52", "-5", "3", "US", "Toys", "Cash"},
		{"2024-04-01", "Female", "38", "200.00", "0", "France", "Electronics", "PayPal"},
		{"2024-05-12", "Male", "61", "80.25", "3", "Spain", "Garden", "Cash"},
		{"2024-07-30", "Female", "23", "45.00", "1", "Spain", "Beauty", "Credit Card"},
	}
}

// GetMarchScenarioRow returns a row missing both gender and age
func (f *TransactionFixtures) GetMarchScenarioRow() TransactionRow {
	return TransactionRow{"2024-03-05", "NaN", "NaN", "10", "2", "US", "Books", "Card"}
}

// GetNegativePriceRow returns a row the price filter must drop
func (f *TransactionFixtures) GetNegativePriceRow() TransactionRow {
	return TransactionRow{"2024-06-14", "Male", "40", "-5", "1", "Italy", "Toys", "Cash"}
}

// CSV renders rows under the schema header
func (f *TransactionFixtures) CSV(rows []TransactionRow) string {
	var b strings.Builder
	b.WriteString(f.Header())
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(strings.Join(r.fields(), ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// CreateTransactionLog writes rows as a CSV file under TestDataDir and returns its path
func (f *TransactionFixtures) CreateTransactionLog(name string, rows []TransactionRow) (string, error) {
	return f.CreateRawFile(name, f.CSV(rows))
}

// CreateRawFile writes content verbatim under TestDataDir and returns its path
func (f *TransactionFixtures) CreateRawFile(name, content string) (string, error) {
	if err := os.MkdirAll(f.TestDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(f.TestDataDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write transaction log: %w", err)
	}

	return path, nil
}
