package planning

import (
	"go.uber.org/zap"
)

// MonthTotals holds the full-precision aggregates for one forecast month
// before emission rounding.
type MonthTotals struct {
	TotalRevenue      float64
	VariableCosts     float64
	GrossProfit       float64
	MarketingExpenses float64
	FixedCosts        float64
	OperatingExpenses float64
	CreditCardFees    float64
	FinancialExpenses float64
	TotalExpenses     float64

	OperatingProfit float64
	ProfitLoss      float64

	OtherIncome            float64
	PersonalLivingExpenses float64
	NetSavings             float64

	CashFlow float64
}

// Aggregator folds a month's channel breakdown, resolved driver, recurring
// obligations and flat expense items into the month's profit and cash-flow
// totals.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates a monthly aggregator with the given logger. If logger
// is nil, it will use a no-op logger.
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{logger: logger}
}

// Aggregate computes the month's totals. A nil driver contributes zero to
// every driver-sourced field. Cash flow equals net profit/loss; working
// capital timing effects are out of model.
func (a *Aggregator) Aggregate(breakdown []ChannelBreakdown, driver *Driver, loanPayments, depreciation, flatExpenses float64) MonthTotals {
	var t MonthTotals

	for _, ch := range breakdown {
		t.TotalRevenue += ch.Revenue
		t.VariableCosts += ch.VariableCosts
		t.MarketingExpenses += ch.MarketingBudget
	}
	t.GrossProfit = t.TotalRevenue - t.VariableCosts

	t.FixedCosts = driver.EffectiveFixedPayroll() + driverAdminExpenses(driver) + flatExpenses
	t.OperatingExpenses = driverOperatingExpenses(driver)
	t.CreditCardFees = t.TotalRevenue * driverCreditCardFeeRate(driver)
	t.FinancialExpenses = loanPayments + depreciation

	t.TotalExpenses = t.VariableCosts + t.MarketingExpenses + t.FixedCosts +
		t.OperatingExpenses + t.CreditCardFees + t.FinancialExpenses

	t.OperatingProfit = t.GrossProfit - t.MarketingExpenses - t.FixedCosts -
		t.OperatingExpenses - t.CreditCardFees
	t.ProfitLoss = t.TotalRevenue - t.TotalExpenses

	if driver != nil {
		t.OtherIncome = driver.OtherIncome
		t.PersonalLivingExpenses = driver.PersonalLivingExpenses
	}
	t.NetSavings = t.ProfitLoss + t.OtherIncome - t.PersonalLivingExpenses

	t.CashFlow = t.ProfitLoss

	a.logger.Debug("month aggregated",
		zap.String("op", "planning.Aggregate"),
		zap.Float64("revenue", t.TotalRevenue),
		zap.Float64("expenses", t.TotalExpenses),
		zap.Float64("profitLoss", t.ProfitLoss),
	)

	return t
}

func driverAdminExpenses(d *Driver) float64 {
	if d == nil {
		return 0
	}
	return d.AdminExpenses
}

func driverOperatingExpenses(d *Driver) float64 {
	if d == nil {
		return 0
	}
	return d.OperatingExpenses
}

func driverCreditCardFeeRate(d *Driver) float64 {
	if d == nil {
		return 0
	}
	return d.CreditCardFeeRate
}
