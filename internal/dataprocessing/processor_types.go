package dataprocessing

import (
	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// RawTable is the loaded transaction log before cleaning
type RawTable struct {
	// Columns holds the input header in file order, ignored columns removed
	Columns []string
	Records []domain.RawTransaction
}

// Table is a cleaned transaction table. Stages never modify a Table they
// receive; they return a new one.
type Table struct {
	Columns  []string
	Records  []domain.Transaction
	Enriched bool
}

// Len returns the number of records
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// ExtraColumns returns the carried-through columns that are not part of the
// transaction schema, in header order
func (t *Table) ExtraColumns() []string {
	return extraColumns(t.Columns)
}

// ExtraColumns returns the carried-through columns that are not part of the
// transaction schema, in header order
func (t *RawTable) ExtraColumns() []string {
	return extraColumns(t.Columns)
}

// OutputColumns returns the input columns followed by the derived columns
func (t *Table) OutputColumns() []string {
	cols := make([]string, 0, len(t.Columns)+len(domain.DerivedColumns))
	cols = append(cols, t.Columns...)
	if t.Enriched {
		cols = append(cols, domain.DerivedColumns...)
	}
	return cols
}

// clone copies the table header and records. Extra column maps are shared;
// no stage writes to them after loading.
func (t *Table) clone() *Table {
	out := &Table{
		Columns:  append([]string(nil), t.Columns...),
		Records:  make([]domain.Transaction, len(t.Records)),
		Enriched: t.Enriched,
	}
	copy(out.Records, t.Records)
	return out
}

func extraColumns(columns []string) []string {
	var extras []string
	for _, c := range columns {
		if !isSchemaColumn(c) {
			extras = append(extras, c)
		}
	}
	return extras
}

func isSchemaColumn(name string) bool {
	for _, c := range domain.RequiredColumns {
		if c == name {
			return true
		}
	}
	return false
}

func (t *RawTable) recordsOrNil() []domain.RawTransaction {
	if t == nil {
		return nil
	}
	return t.Records
}
