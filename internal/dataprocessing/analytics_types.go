package dataprocessing

import (
	"github.com/shopspring/decimal"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// KeyedAmount is a summed amount for one group key
type KeyedAmount struct {
	Key    string
	Amount decimal.Decimal
}

// GroupValues holds the amounts of one group, in table order
type GroupValues struct {
	Group  string
	Values []float64
}

// MonthAmount is a summed amount for one month
type MonthAmount struct {
	Month  domain.Month
	Amount decimal.Decimal
}

// MonthCount is the number of transactions in one month
type MonthCount struct {
	Month domain.Month
	Count int
}

// Share is the frequency of one categorical value
type Share struct {
	Key     string
	Count   int
	Percent float64
}

// Pivot is a dense age × quantity grid of mean total amounts.
// Cells without transactions hold zero.
type Pivot struct {
	Ages       []int
	Quantities []int64
	// Cells[i][j] is the mean for Ages[i] and Quantities[j]
	Cells [][]decimal.Decimal
}

// Empty reports whether the pivot has no cells
func (p Pivot) Empty() bool {
	return len(p.Ages) == 0 || len(p.Quantities) == 0
}

// Profitability holds the months with the highest and lowest revenue
type Profitability struct {
	Best  MonthAmount
	Worst MonthAmount
}
