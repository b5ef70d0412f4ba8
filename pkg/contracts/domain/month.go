package domain

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Month is an ordered categorical over the twelve calendar months.
// The zero value means the month is unknown.
type Month int

const (
	NoMonth Month = iota
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Months returns the twelve months in calendar order
func Months() []Month {
	months := make([]Month, 0, len(monthNames))
	for m := January; m <= December; m++ {
		months = append(months, m)
	}
	return months
}

// MonthNames returns the English month names in calendar order
func MonthNames() []string {
	names := make([]string, len(monthNames))
	copy(names, monthNames[:])
	return names
}

// MonthOf maps the date's month number to its category.
// An invalid date maps to NoMonth.
func MonthOf(d civil.Date) Month {
	if !d.IsValid() {
		return NoMonth
	}
	return Month(d.Month)
}

// ParseMonth returns the month with the given English name
func ParseMonth(name string) (Month, error) {
	for i, n := range monthNames {
		if n == name {
			return Month(i + 1), nil
		}
	}
	return NoMonth, fmt.Errorf("unknown month %q", name)
}

// Valid reports whether m is one of the twelve months
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String returns the English month name, or an empty string for NoMonth
func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m-1]
}

// Index returns the zero-based calendar position of a valid month
func (m Month) Index() int {
	return int(m) - 1
}
