package dataprocessing

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

type txSpec struct {
	date     string
	gender   string
	age      int
	price    string
	quantity int64
	country  string
	category string
	payment  string
}

// enrichedTable builds an enriched table without going through the loader
func enrichedTable(t *testing.T, specs ...txSpec) *Table {
	t.Helper()
	table := &Table{Columns: domain.RequiredColumns, Enriched: true}
	for i, s := range specs {
		date, err := civil.ParseDate(s.date)
		require.NoError(t, err)
		rec := domain.Transaction{
			Row:             i,
			TransactionDate: date,
			Gender:          s.gender,
			Age:             s.age,
			Price:           decimal.RequireFromString(s.price),
			Quantity:        s.quantity,
			Country:         s.country,
			ProductCategory: s.category,
			PaymentMethod:   s.payment,
			Month:           domain.MonthOf(date),
		}
		rec.TotalAmount = rec.Amount()
		table.Records = append(table.Records, rec)
	}
	return table
}

func amounts(ks []KeyedAmount) map[string]string {
	out := make(map[string]string, len(ks))
	for _, k := range ks {
		out[k.Key] = k.Amount.String()
	}
	return out
}

func keys(ks []KeyedAmount) []string {
	out := make([]string, 0, len(ks))
	for _, k := range ks {
		out = append(out, k.Key)
	}
	return out
}

func TestAgeValues(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-01-01", "Male", 30, "1", 1, "US", "A", "Card"},
		txSpec{"2024-01-01", "Male", 45, "1", 1, "US", "A", "Card"},
	)
	assert.Equal(t, []float64{30, 45}, AgeValues(table))
	assert.Empty(t, AgeValues(nil))
}

func TestAmountByGender(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-01-01", "Male", 30, "10", 1, "US", "A", "Card"},
		txSpec{"2024-01-01", "Female", 30, "5", 2, "US", "A", "Card"},
		txSpec{"2024-01-01", "Unknown", 30, "1", 3, "US", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "2.5", 2, "US", "A", "Card"},
	)

	groups := AmountByGender(table)
	require.Len(t, groups, 3)
	assert.Equal(t, GroupValues{Group: "Male", Values: []float64{10, 5}}, groups[0])
	assert.Equal(t, GroupValues{Group: "Female", Values: []float64{10}}, groups[1])
	assert.Equal(t, GroupValues{Group: "Unknown", Values: []float64{3}}, groups[2])
}

func TestRevenueByCountry(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-01-01", "Male", 30, "10", 1, "Spain", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "5", 2, "France", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "1.25", 4, "Spain", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "7", 1, "", "A", "Card"},
	)

	sums := RevenueByCountry(table)
	assert.Equal(t, []string{"France", "Spain"}, keys(sums))
	assert.Equal(t, map[string]string{"France": "10", "Spain": "15"}, amounts(sums))
}

func TestTopCategoriesByPrice(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-01-01", "Male", 30, "100", 5, "US", "Electronics", "Card"},
		txSpec{"2024-01-01", "Male", 30, "10", 1, "US", "Books", "Card"},
		txSpec{"2024-01-01", "Male", 30, "40", 1, "US", "Clothing", "Card"},
		txSpec{"2024-01-01", "Male", 30, "30", 1, "US", "Garden", "Card"},
		txSpec{"2024-01-01", "Male", 30, "30", 1, "US", "Beauty", "Card"},
		txSpec{"2024-01-01", "Male", 30, "5", 1, "US", "Toys", "Card"},
		txSpec{"2024-01-01", "Male", 30, "15", 1, "US", "Books", "Card"},
		txSpec{"2024-01-01", "Male", 30, "1", 1, "US", "Food", "Card"},
	)

	top := TopCategoriesByPrice(table, 5)
	require.Len(t, top, 5)
	assert.Equal(t, []string{"Electronics", "Clothing", "Beauty", "Garden", "Books"}, keys(top))
	for i := 1; i < len(top); i++ {
		assert.False(t, top[i].Amount.GreaterThan(top[i-1].Amount), "descending at %d", i)
	}
	assert.Equal(t, "100", top[0].Amount.String(), "summed price, not revenue")
	assert.Equal(t, "25", top[4].Amount.String())

	assert.Len(t, TopCategoriesByPrice(table, 10), 7)
	assert.Empty(t, TopCategoriesByPrice(&Table{}, 5))
}

func TestOrdersByMonth(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-03-01", "Male", 30, "1", 1, "US", "A", "Card"},
		txSpec{"2024-12-01", "Male", 30, "1", 1, "US", "A", "Card"},
		txSpec{"2023-03-20", "Male", 30, "1", 1, "US", "A", "Card"},
	)

	counts := OrdersByMonth(table)
	require.Len(t, counts, 12)
	for i, c := range counts {
		assert.Equal(t, domain.Months()[i], c.Month)
	}
	assert.Equal(t, 2, counts[domain.March.Index()].Count)
	assert.Equal(t, 1, counts[domain.December.Index()].Count)
	assert.Equal(t, 0, counts[domain.January.Index()].Count)

	assert.Len(t, OrdersByMonth(nil), 12, "all months even without data")
}

func TestRevenueByMonth(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-02-01", "Male", 30, "10", 2, "US", "A", "Card"},
		txSpec{"2024-02-15", "Male", 30, "0.5", 1, "US", "A", "Card"},
	)

	sums := RevenueByMonth(table)
	require.Len(t, sums, 12)
	assert.Equal(t, "20.5", sums[domain.February.Index()].Amount.String())
	assert.True(t, sums[domain.January.Index()].Amount.IsZero())
}

func TestMonthProfitability(t *testing.T) {
	tests := []struct {
		name      string
		specs     []txSpec
		wantBest  domain.Month
		bestSum   string
		wantWorst domain.Month
		worstSum  string
	}{
		{
			name: "months without sales sum to zero",
			specs: []txSpec{
				{"2024-01-05", "Male", 30, "10", 1, "US", "A", "Card"},
				{"2024-06-05", "Male", 30, "40", 1, "US", "A", "Card"},
			},
			wantBest: domain.June, bestSum: "40",
			wantWorst: domain.February, worstSum: "0",
		},
		{
			name: "ties go to the earlier month",
			specs: []txSpec{
				{"2024-01-05", "Male", 30, "10", 3, "US", "A", "Card"},
				{"2024-02-05", "Male", 30, "20", 1, "US", "A", "Card"},
				{"2024-03-05", "Male", 30, "5", 1, "US", "A", "Card"},
				{"2024-04-05", "Male", 30, "30", 1, "US", "A", "Card"},
				{"2024-05-05", "Male", 30, "10", 2, "US", "A", "Card"},
				{"2024-06-05", "Male", 30, "5", 1, "US", "A", "Card"},
				{"2024-07-05", "Male", 30, "5", 1, "US", "A", "Card"},
				{"2024-08-05", "Male", 30, "5", 1, "US", "A", "Card"},
				{"2024-09-05", "Male", 30, "5", 1, "US", "A", "Card"},
				{"2024-10-05", "Male", 30, "5", 1, "US", "A", "Card"},
				{"2024-11-05", "Male", 30, "5", 1, "US", "A", "Card"},
				{"2024-12-05", "Male", 30, "5", 1, "US", "A", "Card"},
			},
			wantBest: domain.January, bestSum: "30",
			wantWorst: domain.March, worstSum: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := MonthProfitability(enrichedTable(t, tt.specs...))
			require.True(t, ok)
			assert.Equal(t, tt.wantBest, p.Best.Month)
			assert.Equal(t, tt.bestSum, p.Best.Amount.String())
			assert.Equal(t, tt.wantWorst, p.Worst.Month)
			assert.Equal(t, tt.worstSum, p.Worst.Amount.String())
		})
	}
}

func TestMonthProfitability_Empty(t *testing.T) {
	_, ok := MonthProfitability(&Table{})
	assert.False(t, ok)
}

func TestAgeQuantityPivot(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-01-01", "Male", 30, "10", 1, "US", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "20", 1, "US", "A", "Card"},
		txSpec{"2024-01-01", "Male", 25, "5", 3, "US", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "1", 4, "US", "A", "Card"},
	)

	p := AgeQuantityPivot(table)
	assert.False(t, p.Empty())
	assert.Equal(t, []int{25, 30}, p.Ages)
	assert.Equal(t, []int64{1, 3, 4}, p.Quantities)

	want := [][]string{
		{"0", "15", "0"},
		{"15", "0", "4"},
	}
	for i := range want {
		for j := range want[i] {
			assert.Equal(t, want[i][j], p.Cells[i][j].String(), "cell %d,%d", i, j)
		}
	}

	assert.True(t, AgeQuantityPivot(&Table{}).Empty())
}

func TestPaymentShares(t *testing.T) {
	table := enrichedTable(t,
		txSpec{"2024-01-01", "Male", 30, "1", 1, "US", "A", "PayPal"},
		txSpec{"2024-01-01", "Male", 30, "1", 1, "US", "A", "Cash"},
		txSpec{"2024-01-01", "Male", 30, "1", 1, "US", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "1", 1, "US", "A", "Card"},
		txSpec{"2024-01-01", "Male", 30, "1", 1, "US", "A", ""},
	)

	shares := PaymentShares(table)
	require.Len(t, shares, 3)
	assert.Equal(t, "Card", shares[0].Key)
	assert.Equal(t, 2, shares[0].Count)
	assert.InDelta(t, 50.0, shares[0].Percent, 1e-9)
	assert.Equal(t, "Cash", shares[1].Key)
	assert.Equal(t, "PayPal", shares[2].Key)

	total := 0.0
	for _, s := range shares {
		total += s.Percent
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}
