// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/orilevi/business-forecast/pkg/planning"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []planning.ForecastResult) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "Month   | Revenue       | Profit/Loss   | Net Savings   | Bank Balance  | Status\n")
	_, _ = fmt.Fprintf(w, "_____   | _____________ | _____________ | _____________ | _____________ | ______\n")
	for _, result := range results {
		_, _ = p.Fprintf(w, "%s | $%.2f | $%.2f | $%.2f | $%.2f | %s\n",
			monthLabel(result),
			result.TotalRevenueForecast,
			result.ProfitLossForecast,
			result.NetSavings,
			result.BankBalanceForecast,
			result.TrafficLight,
		)
	}
}

// PrettySummary writes the annual roll-up below the monthly table.
func PrettySummary(w io.Writer, summary planning.Summary) {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "\n--- Summary ---\n")
	_, _ = p.Fprintf(w, "Total revenue:           $%.2f\n", summary.TotalRevenue)
	_, _ = p.Fprintf(w, "Total profit:            $%.2f\n", summary.TotalProfit)
	_, _ = p.Fprintf(w, "Average monthly revenue: $%.2f\n", summary.AvgMonthlyRevenue)
	_, _ = p.Fprintf(w, "Average monthly profit:  $%.2f\n", summary.AvgMonthlyProfit)
	_, _ = p.Fprintf(w, "Profit margin:           %.1f%%\n", summary.ProfitMargin*100)
	_, _ = p.Fprintf(w, "Ending bank balance:     $%.2f\n", summary.EndingBankBalance)
	_, _ = p.Fprintf(w, "Lowest balance:          $%.2f (month %d)\n", summary.LowestBalance, summary.LowestBalanceMonth)
	if summary.BreakEvenMonth != nil {
		_, _ = fmt.Fprintf(w, "Break-even month:        %d\n", *summary.BreakEvenMonth)
	} else {
		_, _ = fmt.Fprintf(w, "Break-even month:        not reached\n")
	}
}

// CsvFormat writes results in comma-separated value format.
func CsvFormat(w io.Writer, results []planning.ForecastResult) {
	_, _ = fmt.Fprintf(w, `"month","revenue","variableCosts","marketingExpenses","fixedCosts","operatingExpenses","financialExpenses","totalExpenses","profitLoss","netSavings","cashFlow","bankBalance","trafficLight","trafficLightReason"`)
	_, _ = fmt.Fprintf(w, "\n")
	for _, result := range results {
		_, _ = fmt.Fprintf(w, `"%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s","%s"`,
			monthLabel(result),
			result.TotalRevenueForecast,
			result.VariableCosts,
			result.MarketingExpenses,
			result.FixedCosts,
			result.OperatingExpenses,
			result.FinancialExpenses,
			result.TotalExpensesForecast,
			result.ProfitLossForecast,
			result.NetSavings,
			result.CashFlowForecast,
			result.BankBalanceForecast,
			result.TrafficLight,
			escapeCsv(result.TrafficLightReason),
		)
		_, _ = fmt.Fprintf(w, "\n")
	}
}

// JSONFormat writes results plus the summary as an indented JSON document.
func JSONFormat(w io.Writer, results []planning.ForecastResult, summary planning.Summary) error {
	payload := struct {
		Results []planning.ForecastResult `json:"results"`
		Summary planning.Summary          `json:"summary"`
	}{Results: results, Summary: summary}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func monthLabel(result planning.ForecastResult) string {
	return fmt.Sprintf("%04d-%02d", result.Year, result.Month)
}

func escapeCsv(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
