// Package planning defines the business planning records consumed by the
// forecast engine and the pure per-month calculators that transform them.
//
// The package performs no I/O and no input validation: collaborators are
// expected to hand it validated, in-memory snapshots. Degenerate inputs (zero
// rates, zero denominators, empty channel lists) produce well-defined zero or
// absent outputs rather than errors.
package planning

import (
	"time"

	"github.com/orilevi/business-forecast/pkg/constants"
)

// Business identifies the business a snapshot belongs to.
type Business struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	OpeningBalance float64 `json:"openingBalance" yaml:"openingBalance"`
}

// RevenueChannel is a named marketing/sales channel. Archived channels keep
// their records but are skipped by the calculators via the Active flag.
type RevenueChannel struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`

	// MarketingROI is the revenue generated per unit of marketing spend. It is
	// a multiplier, not a percentage return.
	MarketingROI float64 `json:"marketingRoi" yaml:"marketingRoi"`

	// ConversionRate is carried on the entity but plays no role in the ROI
	// revenue model.
	ConversionRate float64 `json:"conversionRate" yaml:"conversionRate"`

	// VariableCostRate is the fraction of channel revenue consumed by variable
	// cost, in [0,1].
	VariableCostRate float64 `json:"variableCostRate" yaml:"variableCostRate"`
}

// ChannelDriver is an optional per-month, per-channel override of the marketing
// budget and ROI.
type ChannelDriver struct {
	ChannelID       string   `json:"channelId" yaml:"channelId"`
	MarketingBudget float64  `json:"marketingBudget" yaml:"marketingBudget"`
	ROIOverride     *float64 `json:"roiOverride,omitempty" yaml:"roiOverride,omitempty"`
}

// Driver is the monthly snapshot of planning inputs for one (year, month).
// At most one driver exists per month; months without a driver inherit the
// most recent prior one (see DriverIndex).
type Driver struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Year  int    `json:"year" yaml:"year"`
	Month int    `json:"month" yaml:"month"`

	TotalMarketingBudget   float64 `json:"totalMarketingBudget" yaml:"totalMarketingBudget"`
	FixedPayroll           float64 `json:"fixedPayroll" yaml:"fixedPayroll"`
	AdminExpenses          float64 `json:"adminExpenses" yaml:"adminExpenses"`
	OperatingExpenses      float64 `json:"operatingExpenses" yaml:"operatingExpenses"`
	CreditCardFeeRate      float64 `json:"creditCardFeeRate" yaml:"creditCardFeeRate"`
	PersonalLivingExpenses float64 `json:"personalLivingExpenses" yaml:"personalLivingExpenses"`
	OtherIncome            float64 `json:"otherIncome" yaml:"otherIncome"`

	// Legacy planning fields retained for backward compatibility with older
	// records. They act as fallbacks when the corresponding current field is
	// zero; see EffectiveMarketingBudget and EffectiveFixedPayroll.
	MarketingBudget       float64 `json:"marketingBudget,omitempty" yaml:"marketingBudget,omitempty"`
	PayrollTotal          float64 `json:"payrollTotal,omitempty" yaml:"payrollTotal,omitempty"`
	ExpectedCustomers     float64 `json:"expectedCustomers,omitempty" yaml:"expectedCustomers,omitempty"`
	AvgRevenuePerCustomer float64 `json:"avgRevenuePerCustomer,omitempty" yaml:"avgRevenuePerCustomer,omitempty"`
	Headcount             float64 `json:"headcount,omitempty" yaml:"headcount,omitempty"`

	ChannelDrivers []ChannelDriver `json:"channelDrivers,omitempty" yaml:"channelDrivers,omitempty"`
}

// EffectiveMarketingBudget resolves the driver's total marketing budget,
// falling back to the legacy single-budget field when the current field is
// zero. Precedence: TotalMarketingBudget, then MarketingBudget, then 0.
func (d *Driver) EffectiveMarketingBudget() float64 {
	if d == nil {
		return 0
	}
	if d.TotalMarketingBudget != 0 {
		return d.TotalMarketingBudget
	}
	return d.MarketingBudget
}

// EffectiveFixedPayroll resolves the driver's fixed payroll, falling back to
// the legacy payroll total when the current field is zero.
func (d *Driver) EffectiveFixedPayroll() float64 {
	if d == nil {
		return 0
	}
	if d.FixedPayroll != 0 {
		return d.FixedPayroll
	}
	return d.PayrollTotal
}

// ChannelDriverFor returns the driver's override for the given channel, or nil
// when no override exists.
func (d *Driver) ChannelDriverFor(channelID string) *ChannelDriver {
	if d == nil {
		return nil
	}
	for i := range d.ChannelDrivers {
		if d.ChannelDrivers[i].ChannelID == channelID {
			return &d.ChannelDrivers[i]
		}
	}
	return nil
}

// Loan is an amortizing obligation. Payment frequency is informational only;
// the payment model always assumes monthly amortization.
type Loan struct {
	Name               string    `json:"name" yaml:"name"`
	Principal          float64   `json:"principal" yaml:"principal"`
	AnnualInterestRate float64   `json:"annualInterestRate" yaml:"annualInterestRate"`
	StartDate          time.Time `json:"startDate" yaml:"startDate"`
	EndDate            time.Time `json:"endDate" yaml:"endDate"`
	PaymentFrequency   string    `json:"paymentFrequency,omitempty" yaml:"paymentFrequency,omitempty"`
}

// Investment is a depreciating purchase. A zero depreciation period means the
// investment never produces a depreciation charge.
type Investment struct {
	Name                     string    `json:"name" yaml:"name"`
	Amount                   float64   `json:"amount" yaml:"amount"`
	Date                     time.Time `json:"date" yaml:"date"`
	DepreciationPeriodMonths int       `json:"depreciationPeriodMonths" yaml:"depreciationPeriodMonths"`
}

// ExpenseItem is a named recurring cost. Only active, flat-amount items feed
// the fixed-cost aggregate; percent-of-revenue items are carried on the
// snapshot but not consumed by the current computation.
type ExpenseItem struct {
	Name             string  `json:"name" yaml:"name"`
	Group            string  `json:"group,omitempty" yaml:"group,omitempty"`
	MonthlyAmount    float64 `json:"monthlyAmount" yaml:"monthlyAmount"`
	PercentOfRevenue bool    `json:"percentOfRevenue" yaml:"percentOfRevenue"`
	Active           bool    `json:"active" yaml:"active"`
}

// HistoricalActual records actual results for a past (year, month). Actuals
// feed the forecast-vs-actual comparison only, never the projection math.
type HistoricalActual struct {
	Year       int     `json:"year" yaml:"year"`
	Month      int     `json:"month" yaml:"month"`
	Revenue    float64 `json:"revenueAmountTotal" yaml:"revenueAmountTotal"`
	ProfitLoss float64 `json:"profitLossTotal" yaml:"profitLossTotal"`
}

// Snapshot is the immutable in-memory view of one business's planning data for
// the duration of a forecast run.
type Snapshot struct {
	Business     Business           `json:"business" yaml:"business"`
	Channels     []RevenueChannel   `json:"channels" yaml:"channels"`
	Drivers      []Driver           `json:"drivers" yaml:"drivers"`
	Loans        []Loan             `json:"loans,omitempty" yaml:"loans,omitempty"`
	Investments  []Investment       `json:"investments,omitempty" yaml:"investments,omitempty"`
	Historicals  []HistoricalActual `json:"historicalActuals,omitempty" yaml:"historicalActuals,omitempty"`
	ExpenseItems []ExpenseItem      `json:"expenseItems,omitempty" yaml:"expenseItems,omitempty"`
}

// ActiveChannels returns the channels participating in the forecast.
func (s Snapshot) ActiveChannels() []RevenueChannel {
	active := make([]RevenueChannel, 0, len(s.Channels))
	for _, ch := range s.Channels {
		if ch.Active {
			active = append(active, ch)
		}
	}
	return active
}

// FlatExpenseTotal sums the monthly amounts of all active, flat-amount expense
// items.
func FlatExpenseTotal(items []ExpenseItem) float64 {
	total := 0.0
	for _, item := range items {
		if item.Active && !item.PercentOfRevenue {
			total += item.MonthlyAmount
		}
	}
	return total
}

// ChannelBreakdown is the per-channel slice of one forecast month.
type ChannelBreakdown struct {
	ChannelID       string  `json:"channelId"`
	ChannelName     string  `json:"channelName"`
	MarketingBudget float64 `json:"marketingBudget"`
	ROI             float64 `json:"roi"`
	Revenue         float64 `json:"revenue"`
	VariableCosts   float64 `json:"variableCosts"`
	GrossProfit     float64 `json:"grossProfit"`
}

// HealthStatus is the three-state traffic-light signal.
type HealthStatus string

// Traffic-light states.
const (
	HealthGreen  HealthStatus = "green"
	HealthYellow HealthStatus = "yellow"
	HealthRed    HealthStatus = "red"
)

// ForecastResult is one projected month. The sequence of results, ordered
// chronologically from the starting month, is the engine's sole output. All
// monetary fields are rounded to whole currency units at emission.
type ForecastResult struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`

	TotalRevenueForecast float64            `json:"totalRevenueForecast"`
	ChannelBreakdown     []ChannelBreakdown `json:"channelBreakdown"`

	TotalExpensesForecast float64 `json:"totalExpensesForecast"`
	VariableCosts         float64 `json:"variableCosts"`
	FixedCosts            float64 `json:"fixedCosts"`
	OperatingExpenses     float64 `json:"operatingExpenses"`
	MarketingExpenses     float64 `json:"marketingExpenses"`
	FinancialExpenses     float64 `json:"financialExpenses"`

	GrossProfit        float64 `json:"grossProfit"`
	OperatingProfit    float64 `json:"operatingProfit"`
	ProfitLossForecast float64 `json:"profitLossForecast"`

	OtherIncome            float64 `json:"otherIncome"`
	PersonalLivingExpenses float64 `json:"personalLivingExpenses"`
	NetSavings             float64 `json:"netSavings"`

	CashFlowForecast    float64 `json:"cashFlowForecast"`
	BankBalanceForecast float64 `json:"bankBalanceForecast"`

	// Comparison fields are absent, not zero, for months without a historical
	// actual.
	ActualRevenue       *float64 `json:"actualRevenue,omitempty"`
	ActualProfitLoss    *float64 `json:"actualProfitLoss,omitempty"`
	RevenueDeltaPercent *float64 `json:"revenueDeltaPercent,omitempty"`
	ProfitDeltaPercent  *float64 `json:"profitDeltaPercent,omitempty"`

	TrafficLight       HealthStatus `json:"trafficLight"`
	TrafficLightReason string       `json:"trafficLightReason"`
}

// DefaultChannelRates fills in the standard ROI and variable-cost rate for
// channels created without explicit values.
func DefaultChannelRates(ch RevenueChannel) RevenueChannel {
	if ch.MarketingROI == 0 {
		ch.MarketingROI = constants.DefaultMarketingROI
	}
	if ch.VariableCostRate == 0 {
		ch.VariableCostRate = constants.DefaultVariableCostRate
	}
	return ch
}
