package planning

import (
	"math"

	"github.com/orilevi/business-forecast/pkg/timeutil"
)

// Comparison holds the forecast-vs-actual figures for one month. Every field
// is nil when the corresponding value cannot be derived: no actual exists, or
// the delta denominator is zero.
type Comparison struct {
	ActualRevenue       *float64
	ActualProfitLoss    *float64
	RevenueDeltaPercent *float64
	ProfitDeltaPercent  *float64
}

// FindActual returns the historical actual recorded for the given month, or
// nil when none exists.
func FindActual(historicals []HistoricalActual, ym timeutil.YearMonth) *HistoricalActual {
	for i := range historicals {
		if historicals[i].Year == ym.Year && historicals[i].Month == ym.Month {
			return &historicals[i]
		}
	}
	return nil
}

// CompareToActual computes percentage deltas between forecast and actual
// figures. The profit delta divides by the absolute actual so the sign stays
// meaningful when the actual was a loss.
func CompareToActual(forecastRevenue, forecastProfit float64, actual *HistoricalActual) Comparison {
	if actual == nil {
		return Comparison{}
	}

	cmp := Comparison{
		ActualRevenue:    ptr(actual.Revenue),
		ActualProfitLoss: ptr(actual.ProfitLoss),
	}

	if actual.Revenue != 0 {
		cmp.RevenueDeltaPercent = ptr((forecastRevenue - actual.Revenue) / actual.Revenue)
	}
	if actual.ProfitLoss != 0 {
		cmp.ProfitDeltaPercent = ptr((forecastProfit - actual.ProfitLoss) / math.Abs(actual.ProfitLoss))
	}

	return cmp
}

func ptr(v float64) *float64 {
	return &v
}
