package planning

import (
	"math"

	"github.com/orilevi/business-forecast/pkg/constants"
	"github.com/orilevi/business-forecast/pkg/timeutil"
	"go.uber.org/zap"
)

// ObligationCalculator computes the recurring financial obligations for a
// month: amortizing loan payments and straight-line investment depreciation.
// A loan or depreciation window covers a month when the month's mid-month
// representative day falls inside it.
type ObligationCalculator struct {
	logger *zap.Logger
}

// NewObligationCalculator creates an obligation calculator with the given
// logger. If logger is nil, it will use a no-op logger.
func NewObligationCalculator(logger *zap.Logger) *ObligationCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObligationCalculator{logger: logger}
}

// LoanPaymentsForMonth sums the monthly payments of all loans active in the
// given month.
func (o *ObligationCalculator) LoanPaymentsForMonth(loans []Loan, ym timeutil.YearMonth) float64 {
	day := ym.RepresentativeDay()
	total := 0.0
	for _, loan := range loans {
		if day.Before(loan.StartDate) || day.After(loan.EndDate) {
			continue
		}
		payment := MonthlyLoanPayment(loan)
		if payment == 0 {
			continue
		}
		o.logger.Debug("loan payment active",
			zap.String("op", "planning.LoanPaymentsForMonth"),
			zap.String("loan", loan.Name),
			zap.String("month", ym.String()),
			zap.Float64("payment", payment),
		)
		total += payment
	}
	return total
}

// MonthlyLoanPayment computes a loan's monthly payment: straight-line
// repayment of the original principal over the loan term plus simple monthly
// interest on the original principal. This is deliberately not a
// declining-balance amortization; existing planning data assumes the
// simplified form.
func MonthlyLoanPayment(loan Loan) float64 {
	term := LoanTermMonths(loan)
	if term <= 0 {
		return 0
	}
	principal := loan.Principal / float64(term)
	interest := loan.Principal * loan.AnnualInterestRate / constants.MonthsPerYear
	return principal + interest
}

// LoanTermMonths derives the loan term from its date span, counting 30-day
// months and rounding up.
func LoanTermMonths(loan Loan) int {
	span := loan.EndDate.Sub(loan.StartDate)
	if span <= 0 {
		return 0
	}
	days := span.Hours() / 24
	return int(math.Ceil(days / constants.DaysPerLoanMonth))
}

// DepreciationForMonth sums the straight-line depreciation charges of all
// investments whose depreciation window covers the given month.
func (o *ObligationCalculator) DepreciationForMonth(investments []Investment, ym timeutil.YearMonth) float64 {
	day := ym.RepresentativeDay()
	total := 0.0
	for _, inv := range investments {
		if inv.DepreciationPeriodMonths <= 0 {
			continue
		}
		windowEnd := inv.Date.AddDate(0, inv.DepreciationPeriodMonths, 0)
		if day.Before(inv.Date) || day.After(windowEnd) {
			continue
		}
		charge := inv.Amount / float64(inv.DepreciationPeriodMonths)
		o.logger.Debug("depreciation active",
			zap.String("op", "planning.DepreciationForMonth"),
			zap.String("investment", inv.Name),
			zap.String("month", ym.String()),
			zap.Float64("charge", charge),
		)
		total += charge
	}
	return total
}
