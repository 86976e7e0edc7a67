// Package constants provides shared constants for the business-forecast application.
package constants

// Channel defaults applied when a revenue channel is created without explicit
// rates.
const (
	// DefaultMarketingROI is the revenue generated per unit of marketing spend.
	DefaultMarketingROI = 3.0

	// DefaultVariableCostRate is the fraction of channel revenue consumed by
	// variable cost.
	DefaultVariableCostRate = 0.37
)

// Forecast horizon constants
const (
	// DefaultMonthsAhead is the default forecast horizon.
	DefaultMonthsAhead = 12

	// MinMonthsAhead is the shortest supported forecast horizon.
	MinMonthsAhead = 1

	// MaxMonthsAhead is the longest supported forecast horizon.
	MaxMonthsAhead = 24

	// MonthsPerYear is the number of months in a year.
	MonthsPerYear = 12

	// RepresentativeDay is the day of month used when deciding whether a loan
	// or depreciation window covers a given month.
	RepresentativeDay = 15

	// DaysPerLoanMonth is the day count used to derive a loan term from its
	// date span.
	DaysPerLoanMonth = 30
)

// Traffic-light thresholds, evaluated in order with first match winning.
const (
	// RedProfitMarginThreshold marks a red month when the profit margin falls
	// below it.
	RedProfitMarginThreshold = -0.10

	// RedNetSavingsFloor marks a red month when net savings fall below it.
	RedNetSavingsFloor = -10000.0

	// RedNegativeProfitMonths is the number of trailing loss months that marks
	// a red month.
	RedNegativeProfitMonths = 2

	// YellowProfitMarginThreshold marks a yellow month when the profit margin
	// falls below it.
	YellowProfitMarginThreshold = 0.05

	// YellowNegativeSavingsMonths is the number of trailing negative-savings
	// months that marks a yellow month.
	YellowNegativeSavingsMonths = 1

	// LowSavingsCushion is the net savings level below which the yellow reason
	// calls out the savings cushion rather than profitability.
	LowSavingsCushion = 5000.0

	// TrailingWindowMonths is the size of the trailing window inspected by the
	// traffic-light classifier.
	TrailingWindowMonths = 3
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format.
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format.
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format.
	OutputFormatJSON = "json"
)

// Configuration defaults
const (
	// DefaultConfigFile is the default configuration file name.
	DefaultConfigFile = "config.yaml"

	// DefaultServerAddress is the default HTTP listen address.
	DefaultServerAddress = ":8080"
)

// CurrencyTolerance is the tolerance for currency comparisons.
const CurrencyTolerance = 0.01
