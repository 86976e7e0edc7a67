// Package timeutil provides calendar-month arithmetic for the forecast
// horizon.
package timeutil

import (
	"fmt"
	"time"

	"github.com/orilevi/business-forecast/pkg/constants"
)

// YearMonth identifies a calendar month. Month runs 1..12.
type YearMonth struct {
	Year  int
	Month int
}

// Current returns the YearMonth of the current calendar month.
func Current() YearMonth {
	now := time.Now()
	return YearMonth{Year: now.Year(), Month: int(now.Month())}
}

// AddMonths returns the YearMonth offset by the given number of months,
// advancing the year as needed.
func (ym YearMonth) AddMonths(months int) YearMonth {
	total := ym.Year*constants.MonthsPerYear + ym.Month - 1 + months
	return YearMonth{
		Year:  total / constants.MonthsPerYear,
		Month: total%constants.MonthsPerYear + 1,
	}
}

// Compare returns -1, 0, or 1 depending on whether ym is before, equal to, or
// after other. Year takes priority over month.
func (ym YearMonth) Compare(other YearMonth) int {
	if ym.Year != other.Year {
		if ym.Year < other.Year {
			return -1
		}
		return 1
	}
	if ym.Month != other.Month {
		if ym.Month < other.Month {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if ym is strictly before other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Compare(other) < 0
}

// After returns true if ym is strictly after other.
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Compare(other) > 0
}

// Equal returns true if ym and other identify the same month.
func (ym YearMonth) Equal(other YearMonth) bool {
	return ym.Compare(other) == 0
}

// RepresentativeDay returns the mid-month day used when checking whether a
// dated window covers this month. Mid-month avoids month-boundary ambiguity.
func (ym YearMonth) RepresentativeDay() time.Time {
	return time.Date(ym.Year, time.Month(ym.Month), constants.RepresentativeDay, 0, 0, 0, 0, time.UTC)
}

// MonthName returns the English name of the month.
func (ym YearMonth) MonthName() string {
	if ym.Month < 1 || ym.Month > constants.MonthsPerYear {
		return ""
	}
	return time.Month(ym.Month).String()
}

// String formats the YearMonth as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}
