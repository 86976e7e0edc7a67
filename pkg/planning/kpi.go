package planning

import (
	"github.com/orilevi/business-forecast/pkg/mathutil"
)

// Summary aggregates a forecast run into annual KPIs.
type Summary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalProfit       float64 `json:"totalProfit"`
	TotalCashFlow     float64 `json:"totalCashFlow"`
	AvgMonthlyRevenue float64 `json:"avgMonthlyRevenue"`
	AvgMonthlyProfit  float64 `json:"avgMonthlyProfit"`

	// ProfitMargin is total profit over total revenue for the whole run.
	ProfitMargin float64 `json:"profitMargin"`

	EndingBankBalance float64 `json:"endingBankBalance"`
	LowestBalance     float64 `json:"lowestBalance"`

	// LowestBalanceMonth is the calendar month (1..12) of the lowest balance.
	LowestBalanceMonth int `json:"lowestBalanceMonth"`

	// BreakEvenMonth is the calendar month of the first month with positive
	// cumulative profit, absent when the run never breaks even.
	BreakEvenMonth *int `json:"breakEvenMonth,omitempty"`
}

// Summarize computes the annual KPI summary over a forecast run. An empty run
// yields a zero summary.
func Summarize(results []ForecastResult) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}

	cumulative := 0.0
	for _, r := range results {
		s.TotalRevenue += r.TotalRevenueForecast
		s.TotalProfit += r.ProfitLossForecast
		s.TotalCashFlow += r.CashFlowForecast

		cumulative += r.ProfitLossForecast
		if cumulative > 0 && s.BreakEvenMonth == nil {
			month := r.Month
			s.BreakEvenMonth = &month
		}
	}

	months := float64(len(results))
	s.AvgMonthlyRevenue = s.TotalRevenue / months
	s.AvgMonthlyProfit = s.TotalProfit / months
	s.ProfitMargin = mathutil.Ratio(s.TotalProfit, s.TotalRevenue)

	s.EndingBankBalance = results[len(results)-1].BankBalanceForecast
	s.LowestBalance = results[0].BankBalanceForecast
	s.LowestBalanceMonth = results[0].Month
	for _, r := range results[1:] {
		if r.BankBalanceForecast < s.LowestBalance {
			s.LowestBalance = r.BankBalanceForecast
			s.LowestBalanceMonth = r.Month
		}
	}

	return s
}
