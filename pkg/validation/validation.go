// Package validation provides input checks for output formats and business
// snapshots.
package validation

import (
	"fmt"

	"github.com/orilevi/business-forecast/pkg/constants"
	"github.com/orilevi/business-forecast/pkg/planning"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q, expected one of %s, %s, %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON)
	}
}

// SnapshotWarnings inspects a snapshot for suspicious values. Warnings never
// abort a forecast run; they are surfaced alongside the results.
func SnapshotWarnings(snapshot planning.Snapshot) []string {
	var warnings []string

	for _, ch := range snapshot.Channels {
		if ch.MarketingROI < 0 {
			warnings = append(warnings, fmt.Sprintf("channel %s has a negative marketing ROI (%.2f)", ch.Name, ch.MarketingROI))
		}
		if ch.VariableCostRate < 0 || ch.VariableCostRate > 1 {
			warnings = append(warnings, fmt.Sprintf("channel %s has a variable cost rate outside [0,1] (%.2f)", ch.Name, ch.VariableCostRate))
		}
	}

	for _, d := range snapshot.Drivers {
		if d.Month < 1 || d.Month > constants.MonthsPerYear {
			warnings = append(warnings, fmt.Sprintf("driver %s has an invalid month (%d)", d.ID, d.Month))
		}
		if d.CreditCardFeeRate < 0 || d.CreditCardFeeRate > 1 {
			warnings = append(warnings, fmt.Sprintf("driver %s has a credit card fee rate outside [0,1] (%.4f)", d.ID, d.CreditCardFeeRate))
		}
	}

	for _, l := range snapshot.Loans {
		if l.Principal <= 0 {
			warnings = append(warnings, fmt.Sprintf("loan %s has a non-positive principal (%.2f)", l.Name, l.Principal))
		}
		if l.EndDate.Before(l.StartDate) {
			warnings = append(warnings, fmt.Sprintf("loan %s ends before it starts", l.Name))
		}
	}

	for _, inv := range snapshot.Investments {
		if inv.DepreciationPeriodMonths <= 0 {
			warnings = append(warnings, fmt.Sprintf("investment %s has a non-positive depreciation period, no charge will be recorded", inv.Name))
		}
	}

	return warnings
}

// ValidateMonthsAhead checks that a requested horizon sits inside the
// supported range. Zero is allowed and means the default.
func ValidateMonthsAhead(months int) error {
	if months == 0 {
		return nil
	}
	if months < constants.MinMonthsAhead || months > constants.MaxMonthsAhead {
		return fmt.Errorf("months ahead must be between %d and %d, got %d",
			constants.MinMonthsAhead, constants.MaxMonthsAhead, months)
	}
	return nil
}
