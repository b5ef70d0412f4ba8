package config

// Application constants
const (
	AppName = "transactions-eda"

	DefaultConfigFile  = "eda.yaml"
	DefaultInputFile   = "transactions.csv"
	DefaultCleanedFile = "transactions_cleaned.csv"

	// Figure sizes in inches
	DefaultChartWidth    = 6.4
	DefaultChartHeight   = 4.8
	DefaultHeatMapWidth  = 8
	DefaultHeatMapHeight = 7
)

// Chart artifact file names
const (
	AgeDistributionChart    = "age_distribution.png"
	AmountByGenderChart     = "amount_by_gender.png"
	AmountByCountryChart    = "amount_by_country.png"
	TopCategoriesChart      = "top_5_categories.png"
	OrdersByMonthsChart     = "orders_by_months.png"
	AgeQuantityRevenueChart = "age_quantity_revenue.png"
	PaymentMethodsChart     = "payment_methods_distribution.png"
)

// Analysis constants. These are fixed and not exposed through Config.
const (
	AgeHistogramBins  = 30
	TopCategoryCount  = 5
	TopCategoryYScale = 1.1
	XLabelRotationDeg = 45
	PieStartAngleDeg  = 90
)
