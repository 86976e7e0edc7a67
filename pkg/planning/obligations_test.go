package planning

import (
	"math"
	"testing"
	"time"

	"github.com/orilevi/business-forecast/pkg/timeutil"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestLoanTermMonths(t *testing.T) {
	tests := []struct {
		name     string
		loan     Loan
		expected int
	}{
		{
			name: "three 30-day months exactly",
			loan: Loan{
				StartDate: date(2025, time.January, 1),
				EndDate:   date(2025, time.January, 1).AddDate(0, 0, 90),
			},
			expected: 3,
		},
		{
			name: "partial month rounds up",
			loan: Loan{
				StartDate: date(2025, time.January, 1),
				EndDate:   date(2025, time.January, 1).AddDate(0, 0, 91),
			},
			expected: 4,
		},
		{
			name: "three calendar years",
			loan: Loan{
				StartDate: date(2025, time.January, 1),
				EndDate:   date(2028, time.January, 1),
			},
			expected: 37,
		},
		{
			name: "end before start",
			loan: Loan{
				StartDate: date(2025, time.June, 1),
				EndDate:   date(2025, time.January, 1),
			},
			expected: 0,
		},
		{
			name: "zero span",
			loan: Loan{
				StartDate: date(2025, time.January, 1),
				EndDate:   date(2025, time.January, 1),
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoanTermMonths(tt.loan); got != tt.expected {
				t.Errorf("LoanTermMonths() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestMonthlyLoanPayment(t *testing.T) {
	// 36000 over a 36 x 30-day span at 6% annual: 1000 principal + 180 interest.
	loan := Loan{
		Principal:          36000,
		AnnualInterestRate: 0.06,
		StartDate:          date(2025, time.January, 1),
		EndDate:            date(2025, time.January, 1).AddDate(0, 0, 36*30),
	}

	payment := MonthlyLoanPayment(loan)
	if math.Abs(payment-1180) > 1e-9 {
		t.Errorf("MonthlyLoanPayment() = %v, expected 1180", payment)
	}
}

func TestMonthlyLoanPaymentZeroTerm(t *testing.T) {
	loan := Loan{
		Principal:          10000,
		AnnualInterestRate: 0.05,
		StartDate:          date(2025, time.June, 1),
		EndDate:            date(2025, time.June, 1),
	}

	if got := MonthlyLoanPayment(loan); got != 0 {
		t.Errorf("MonthlyLoanPayment() with zero term = %v, expected 0", got)
	}
}

func TestLoanPaymentsForMonth(t *testing.T) {
	calc := NewObligationCalculator(nil)

	loans := []Loan{
		{
			Name:               "equipment",
			Principal:          36000,
			AnnualInterestRate: 0.06,
			StartDate:          date(2025, time.January, 1),
			EndDate:            date(2025, time.January, 1).AddDate(0, 0, 36*30),
		},
	}

	tests := []struct {
		name     string
		month    timeutil.YearMonth
		expected float64
	}{
		{
			name:     "first covered month",
			month:    timeutil.YearMonth{Year: 2025, Month: 1},
			expected: 1180,
		},
		{
			name:     "mid-term month",
			month:    timeutil.YearMonth{Year: 2026, Month: 6},
			expected: 1180,
		},
		{
			name:     "month before start",
			month:    timeutil.YearMonth{Year: 2024, Month: 12},
			expected: 0,
		},
		{
			name:     "month after end",
			month:    timeutil.YearMonth{Year: 2028, Month: 6},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.LoanPaymentsForMonth(loans, tt.month)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LoanPaymentsForMonth(%v) = %v, expected %v", tt.month, got, tt.expected)
			}
		})
	}
}

func TestLoanWindowUsesRepresentativeDay(t *testing.T) {
	calc := NewObligationCalculator(nil)

	// Starts after the 15th, so the first month's representative day falls
	// before the window.
	loans := []Loan{
		{
			Name:               "late-start",
			Principal:          12000,
			AnnualInterestRate: 0,
			StartDate:          date(2025, time.March, 20),
			EndDate:            date(2026, time.March, 20),
		},
	}

	if got := calc.LoanPaymentsForMonth(loans, timeutil.YearMonth{Year: 2025, Month: 3}); got != 0 {
		t.Errorf("month with representative day before start should pay 0, got %v", got)
	}
	if got := calc.LoanPaymentsForMonth(loans, timeutil.YearMonth{Year: 2025, Month: 4}); got == 0 {
		t.Error("first month with representative day inside window should pay")
	}
}

func TestDepreciationForMonth(t *testing.T) {
	calc := NewObligationCalculator(nil)

	investments := []Investment{
		{
			Name:                     "van",
			Amount:                   24000,
			Date:                     date(2025, time.January, 1),
			DepreciationPeriodMonths: 24,
		},
	}

	tests := []struct {
		name     string
		month    timeutil.YearMonth
		expected float64
	}{
		{
			name:     "first month",
			month:    timeutil.YearMonth{Year: 2025, Month: 1},
			expected: 1000,
		},
		{
			name:     "last covered month",
			month:    timeutil.YearMonth{Year: 2026, Month: 12},
			expected: 1000,
		},
		{
			name:     "before acquisition",
			month:    timeutil.YearMonth{Year: 2024, Month: 12},
			expected: 0,
		},
		{
			name:     "after window",
			month:    timeutil.YearMonth{Year: 2027, Month: 2},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.DepreciationForMonth(investments, tt.month)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("DepreciationForMonth(%v) = %v, expected %v", tt.month, got, tt.expected)
			}
		})
	}
}

func TestDepreciationZeroPeriod(t *testing.T) {
	calc := NewObligationCalculator(nil)

	investments := []Investment{
		{Name: "land", Amount: 50000, Date: date(2025, time.January, 1), DepreciationPeriodMonths: 0},
	}

	if got := calc.DepreciationForMonth(investments, timeutil.YearMonth{Year: 2025, Month: 1}); got != 0 {
		t.Errorf("zero depreciation period should charge 0, got %v", got)
	}
}
