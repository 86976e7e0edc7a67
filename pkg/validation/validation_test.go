package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/orilevi/business-forecast/pkg/planning"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"pretty", "csv", "json"} {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) error = %v, expected nil", format, err)
		}
	}
	if err := ValidateOutputFormat("xml"); err == nil {
		t.Error("ValidateOutputFormat(xml) expected error")
	}
	if err := ValidateOutputFormat(""); err == nil {
		t.Error("ValidateOutputFormat empty expected error")
	}
}

func TestValidateMonthsAhead(t *testing.T) {
	tests := []struct {
		name    string
		months  int
		wantErr bool
	}{
		{"zero means default", 0, false},
		{"minimum", 1, false},
		{"maximum", 24, false},
		{"above maximum", 25, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMonthsAhead(tt.months)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMonthsAhead(%d) error = %v, wantErr %v", tt.months, err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotWarnings(t *testing.T) {
	snapshot := planning.Snapshot{
		Channels: []planning.RevenueChannel{
			{ID: "ch-1", Name: "Online", Active: true, MarketingROI: -1, VariableCostRate: 1.2},
		},
		Drivers: []planning.Driver{
			{ID: "d-1", Year: 2025, Month: 13, CreditCardFeeRate: 1.5},
		},
		Loans: []planning.Loan{
			{
				Name:      "bad loan",
				Principal: 0,
				StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Investments: []planning.Investment{
			{Name: "land", Amount: 10000, DepreciationPeriodMonths: 0},
		},
	}

	warnings := SnapshotWarnings(snapshot)
	if len(warnings) != 7 {
		t.Fatalf("expected 7 warnings, got %d: %v", len(warnings), warnings)
	}

	expectedFragments := []string{
		"negative marketing ROI",
		"variable cost rate outside",
		"invalid month",
		"credit card fee rate outside",
		"non-positive principal",
		"ends before it starts",
		"non-positive depreciation period",
	}
	joined := strings.Join(warnings, "\n")
	for _, fragment := range expectedFragments {
		if !strings.Contains(joined, fragment) {
			t.Errorf("warnings missing %q:\n%s", fragment, joined)
		}
	}
}

func TestSnapshotWarningsCleanSnapshot(t *testing.T) {
	snapshot := planning.Snapshot{
		Channels: []planning.RevenueChannel{
			{ID: "ch-1", Name: "Online", Active: true, MarketingROI: 3, VariableCostRate: 0.37},
		},
		Drivers: []planning.Driver{
			{ID: "d-1", Year: 2025, Month: 1, CreditCardFeeRate: 0.02},
		},
	}

	if warnings := SnapshotWarnings(snapshot); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}
