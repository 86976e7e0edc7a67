package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/orilevi/business-forecast/pkg/planning"
)

func sampleResults() []planning.ForecastResult {
	return []planning.ForecastResult{
		{
			Year: 2025, Month: 1, MonthName: "January",
			TotalRevenueForecast:  30000,
			TotalExpensesForecast: 27000,
			ProfitLossForecast:    3000,
			NetSavings:            2500,
			CashFlowForecast:      3000,
			BankBalanceForecast:   8000,
			TrafficLight:          planning.HealthGreen,
			TrafficLightReason:    "healthy: profit margin 10%, net savings 2500",
		},
		{
			Year: 2025, Month: 2, MonthName: "February",
			TotalRevenueForecast:  28000,
			TotalExpensesForecast: 29000,
			ProfitLossForecast:    -1000,
			NetSavings:            -1500,
			CashFlowForecast:      -1000,
			BankBalanceForecast:   7000,
			TrafficLight:          planning.HealthYellow,
			TrafficLightReason:    "attention: low net savings cushion, review recommended",
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleResults())
	out := buf.String()

	if !strings.Contains(out, "Month   | Revenue") {
		t.Error("PrettyFormat missing table header")
	}
	if !strings.Contains(out, "2025-01") {
		t.Error("PrettyFormat missing month label")
	}
	// The English printer groups thousands.
	if !strings.Contains(out, "$30,000.00") {
		t.Errorf("PrettyFormat missing grouped revenue, got:\n%s", out)
	}
	if !strings.Contains(out, "green") || !strings.Contains(out, "yellow") {
		t.Error("PrettyFormat missing traffic-light statuses")
	}
}

func TestPrettySummary(t *testing.T) {
	var buf bytes.Buffer
	PrettySummary(&buf, planning.Summarize(sampleResults()))
	out := buf.String()

	if !strings.Contains(out, "Total revenue:") {
		t.Error("PrettySummary missing total revenue line")
	}
	if !strings.Contains(out, "$58,000.00") {
		t.Errorf("PrettySummary missing grouped total, got:\n%s", out)
	}
	if !strings.Contains(out, "Break-even month:        1") {
		t.Errorf("PrettySummary missing break-even month, got:\n%s", out)
	}
}

func TestPrettySummaryNoBreakEven(t *testing.T) {
	var buf bytes.Buffer
	PrettySummary(&buf, planning.Summary{})
	if !strings.Contains(buf.String(), "not reached") {
		t.Error("PrettySummary should report an absent break-even month")
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	CsvFormat(&buf, sampleResults())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"month","revenue"`) {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"2025-01","30000.00"`) {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"-1000.00"`) {
		t.Errorf("unexpected second row: %s", lines[2])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	results := sampleResults()

	if err := JSONFormat(&buf, results, planning.Summarize(results)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var payload struct {
		Results []planning.ForecastResult `json:"results"`
		Summary planning.Summary          `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(payload.Results) != 2 {
		t.Errorf("expected 2 results in payload, got %d", len(payload.Results))
	}
	if payload.Summary.TotalRevenue != 58000 {
		t.Errorf("Summary.TotalRevenue = %v, expected 58000", payload.Summary.TotalRevenue)
	}
}
