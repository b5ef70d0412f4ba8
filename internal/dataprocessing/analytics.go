package dataprocessing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Fekt0ral/Exploratory-data-analysis-project/pkg/contracts/domain"
)

// AgeValues returns every age in table order
func AgeValues(t *Table) []float64 {
	values := make([]float64, 0, t.Len())
	for _, rec := range records(t) {
		values = append(values, float64(rec.Age))
	}
	return values
}

// AmountByGender groups total amounts by gender, groups in order of first appearance
func AmountByGender(t *Table) []GroupValues {
	var groups []GroupValues
	index := make(map[string]int)
	for _, rec := range records(t) {
		i, ok := index[rec.Gender]
		if !ok {
			i = len(groups)
			index[rec.Gender] = i
			groups = append(groups, GroupValues{Group: rec.Gender})
		}
		groups[i].Values = append(groups[i].Values, rec.TotalAmount.InexactFloat64())
	}
	return groups
}

// RevenueByCountry sums total amounts per country, sorted by country name.
// Transactions without a country are not grouped.
func RevenueByCountry(t *Table) []KeyedAmount {
	sums := sumBy(t,
		func(rec domain.Transaction) string { return rec.Country },
		func(rec domain.Transaction) decimal.Decimal { return rec.TotalAmount })
	sort.Slice(sums, func(i, j int) bool { return sums[i].Key < sums[j].Key })
	return sums
}

// TopCategoriesByPrice returns the n product categories with the largest summed
// price, descending. Equal sums are ordered by name.
func TopCategoriesByPrice(t *Table, n int) []KeyedAmount {
	sums := sumBy(t,
		func(rec domain.Transaction) string { return rec.ProductCategory },
		func(rec domain.Transaction) decimal.Decimal { return rec.Price })
	sort.Slice(sums, func(i, j int) bool {
		if c := sums[i].Amount.Cmp(sums[j].Amount); c != 0 {
			return c > 0
		}
		return sums[i].Key < sums[j].Key
	})
	if n >= 0 && len(sums) > n {
		sums = sums[:n]
	}
	return sums
}

// OrdersByMonth counts transactions for each of the twelve months in calendar order
func OrdersByMonth(t *Table) []MonthCount {
	counts := make([]MonthCount, 0, 12)
	for _, m := range domain.Months() {
		counts = append(counts, MonthCount{Month: m})
	}
	for _, rec := range records(t) {
		if rec.Month.Valid() {
			counts[rec.Month.Index()].Count++
		}
	}
	return counts
}

// RevenueByMonth sums total amounts for each of the twelve months in calendar
// order. Months without transactions sum to zero.
func RevenueByMonth(t *Table) []MonthAmount {
	sums := make([]MonthAmount, 0, 12)
	for _, m := range domain.Months() {
		sums = append(sums, MonthAmount{Month: m, Amount: decimal.Zero})
	}
	for _, rec := range records(t) {
		if rec.Month.Valid() {
			i := rec.Month.Index()
			sums[i].Amount = sums[i].Amount.Add(rec.TotalAmount)
		}
	}
	return sums
}

// MonthProfitability returns the months with the largest and smallest revenue.
// Ties go to the month earliest in the calendar. ok is false for an empty table.
func MonthProfitability(t *Table) (Profitability, bool) {
	if t.Len() == 0 {
		return Profitability{}, false
	}

	sums := RevenueByMonth(t)
	p := Profitability{Best: sums[0], Worst: sums[0]}
	for _, s := range sums[1:] {
		if s.Amount.GreaterThan(p.Best.Amount) {
			p.Best = s
		}
		if s.Amount.LessThan(p.Worst.Amount) {
			p.Worst = s
		}
	}
	return p, true
}

// AgeQuantityPivot averages total amounts over age rows and quantity columns,
// both ascending
func AgeQuantityPivot(t *Table) Pivot {
	type cell struct {
		age int
		qty int64
	}
	type acc struct {
		sum decimal.Decimal
		n   int64
	}

	cells := make(map[cell]*acc)
	ageSet := make(map[int]bool)
	qtySet := make(map[int64]bool)
	for _, rec := range records(t) {
		k := cell{rec.Age, rec.Quantity}
		a, ok := cells[k]
		if !ok {
			a = &acc{sum: decimal.Zero}
			cells[k] = a
		}
		a.sum = a.sum.Add(rec.TotalAmount)
		a.n++
		ageSet[rec.Age] = true
		qtySet[rec.Quantity] = true
	}

	p := Pivot{
		Ages:       make([]int, 0, len(ageSet)),
		Quantities: make([]int64, 0, len(qtySet)),
	}
	for age := range ageSet {
		p.Ages = append(p.Ages, age)
	}
	for qty := range qtySet {
		p.Quantities = append(p.Quantities, qty)
	}
	sort.Ints(p.Ages)
	sort.Slice(p.Quantities, func(i, j int) bool { return p.Quantities[i] < p.Quantities[j] })

	p.Cells = make([][]decimal.Decimal, len(p.Ages))
	for i, age := range p.Ages {
		p.Cells[i] = make([]decimal.Decimal, len(p.Quantities))
		for j, qty := range p.Quantities {
			if a, ok := cells[cell{age, qty}]; ok {
				p.Cells[i][j] = a.sum.Div(decimal.NewFromInt(a.n))
			} else {
				p.Cells[i][j] = decimal.Zero
			}
		}
	}
	return p
}

// PaymentShares returns the frequency of each payment method, most frequent
// first and equal counts by name. Percentages sum to 100.
func PaymentShares(t *Table) []Share {
	counts := make(map[string]int)
	total := 0
	for _, rec := range records(t) {
		if rec.PaymentMethod == "" {
			continue
		}
		counts[rec.PaymentMethod]++
		total++
	}

	shares := make([]Share, 0, len(counts))
	for k, n := range counts {
		shares = append(shares, Share{
			Key:     k,
			Count:   n,
			Percent: float64(n) / float64(total) * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Key < shares[j].Key
	})
	return shares
}

// sumBy sums value per non-empty key, in order of first appearance
func sumBy(t *Table, key func(domain.Transaction) string, value func(domain.Transaction) decimal.Decimal) []KeyedAmount {
	var sums []KeyedAmount
	index := make(map[string]int)
	for _, rec := range records(t) {
		k := key(rec)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(sums)
			index[k] = i
			sums = append(sums, KeyedAmount{Key: k, Amount: decimal.Zero})
		}
		sums[i].Amount = sums[i].Amount.Add(value(rec))
	}
	return sums
}

func records(t *Table) []domain.Transaction {
	if t == nil {
		return nil
	}
	return t.Records
}
