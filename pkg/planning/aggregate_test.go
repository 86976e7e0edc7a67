package planning

import (
	"math"
	"testing"
)

func TestAggregate(t *testing.T) {
	agg := NewAggregator(nil)

	breakdown := []ChannelBreakdown{
		{ChannelID: "ch-1", MarketingBudget: 10000, Revenue: 30000, VariableCosts: 11100, GrossProfit: 18900},
	}
	driver := &Driver{
		Year: 2025, Month: 1,
		FixedPayroll:           8000,
		AdminExpenses:          1500,
		OperatingExpenses:      2000,
		CreditCardFeeRate:      0.02,
		PersonalLivingExpenses: 4000,
		OtherIncome:            500,
	}

	totals := agg.Aggregate(breakdown, driver, 1180, 1000, 300)

	if totals.TotalRevenue != 30000 {
		t.Errorf("TotalRevenue = %v, expected 30000", totals.TotalRevenue)
	}
	if math.Abs(totals.GrossProfit-18900) > 1e-9 {
		t.Errorf("GrossProfit = %v, expected 18900", totals.GrossProfit)
	}
	// Fixed costs: payroll + admin + flat expenses.
	if math.Abs(totals.FixedCosts-9800) > 1e-9 {
		t.Errorf("FixedCosts = %v, expected 9800", totals.FixedCosts)
	}
	if math.Abs(totals.CreditCardFees-600) > 1e-9 {
		t.Errorf("CreditCardFees = %v, expected 600", totals.CreditCardFees)
	}
	if math.Abs(totals.FinancialExpenses-2180) > 1e-9 {
		t.Errorf("FinancialExpenses = %v, expected 2180", totals.FinancialExpenses)
	}
	// 11100 + 10000 + 9800 + 2000 + 600 + 2180
	if math.Abs(totals.TotalExpenses-35680) > 1e-9 {
		t.Errorf("TotalExpenses = %v, expected 35680", totals.TotalExpenses)
	}
	if math.Abs(totals.ProfitLoss-(-5680)) > 1e-9 {
		t.Errorf("ProfitLoss = %v, expected -5680", totals.ProfitLoss)
	}
	// Operating profit excludes financial expenses.
	if math.Abs(totals.OperatingProfit-(totals.ProfitLoss+totals.FinancialExpenses)) > 1e-9 {
		t.Errorf("OperatingProfit = %v, expected ProfitLoss + FinancialExpenses = %v",
			totals.OperatingProfit, totals.ProfitLoss+totals.FinancialExpenses)
	}
	if math.Abs(totals.NetSavings-(-5680+500-4000)) > 1e-9 {
		t.Errorf("NetSavings = %v, expected %v", totals.NetSavings, -5680+500-4000)
	}
	if totals.CashFlow != totals.ProfitLoss {
		t.Errorf("CashFlow = %v, expected ProfitLoss %v", totals.CashFlow, totals.ProfitLoss)
	}
}

func TestAggregateLegacyPayrollFallback(t *testing.T) {
	agg := NewAggregator(nil)

	driver := &Driver{Year: 2025, Month: 1, PayrollTotal: 6000}
	totals := agg.Aggregate(nil, driver, 0, 0, 0)

	if totals.FixedCosts != 6000 {
		t.Errorf("FixedCosts = %v, expected legacy payroll 6000", totals.FixedCosts)
	}
}

func TestAggregateNilDriver(t *testing.T) {
	agg := NewAggregator(nil)

	totals := agg.Aggregate(nil, nil, 0, 0, 250)

	if totals.TotalRevenue != 0 {
		t.Errorf("TotalRevenue = %v, expected 0", totals.TotalRevenue)
	}
	if totals.FixedCosts != 250 {
		t.Errorf("FixedCosts = %v, expected flat expenses only 250", totals.FixedCosts)
	}
	if totals.ProfitLoss != -250 {
		t.Errorf("ProfitLoss = %v, expected -250", totals.ProfitLoss)
	}
	if totals.NetSavings != -250 {
		t.Errorf("NetSavings = %v, expected -250", totals.NetSavings)
	}
}

func TestFlatExpenseTotal(t *testing.T) {
	items := []ExpenseItem{
		{Name: "rent", MonthlyAmount: 1200, Active: true},
		{Name: "insurance", MonthlyAmount: 300, Active: true},
		{Name: "cancelled", MonthlyAmount: 500, Active: false},
		{Name: "referral fees", MonthlyAmount: 0.05, PercentOfRevenue: true, Active: true},
	}

	if got := FlatExpenseTotal(items); got != 1500 {
		t.Errorf("FlatExpenseTotal() = %v, expected 1500", got)
	}
}
