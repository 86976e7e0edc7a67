package planning

import (
	"fmt"
	"math"

	"github.com/orilevi/business-forecast/pkg/constants"
)

// Verdict is the traffic-light classification of one forecast month.
type Verdict struct {
	Status HealthStatus
	Reason string
}

// Classify derives the traffic-light signal for the current month from its
// full-precision profit, savings and revenue figures plus the months already
// emitted in the current run. Only the trailing three emitted months are
// inspected; there is no memory beyond that window.
//
// Thresholds are evaluated in order and the first match wins:
//  1. red when the profit margin is below -10%, at least two of the trailing
//     three months ran at a loss, or net savings fall below the red floor;
//  2. yellow when the profit margin is below 5%, net savings are negative, or
//     any trailing month had negative net savings;
//  3. green otherwise.
func Classify(profitLoss, netSavings, revenue float64, prior []ForecastResult) Verdict {
	profitMargin := 0.0
	if revenue > 0 {
		profitMargin = profitLoss / revenue
	}

	trailing := prior
	if len(trailing) > constants.TrailingWindowMonths {
		trailing = trailing[len(trailing)-constants.TrailingWindowMonths:]
	}

	negativeProfits := 0
	negativeSavings := 0
	for _, r := range trailing {
		if r.ProfitLossForecast < 0 {
			negativeProfits++
		}
		if r.NetSavings < 0 {
			negativeSavings++
		}
	}

	if profitMargin < constants.RedProfitMarginThreshold ||
		negativeProfits >= constants.RedNegativeProfitMonths ||
		netSavings < constants.RedNetSavingsFloor {
		// The savings framing takes priority in the message even when the
		// margin or trailing-loss condition tripped the threshold.
		cause := "accumulating losses"
		if netSavings < 0 {
			cause = "negative net savings"
		}
		return Verdict{
			Status: HealthRed,
			Reason: fmt.Sprintf("warning: %s, intervention required", cause),
		}
	}

	if profitMargin < constants.YellowProfitMarginThreshold ||
		netSavings < 0 ||
		negativeSavings >= constants.YellowNegativeSavingsMonths {
		cause := "low profitability"
		if netSavings < constants.LowSavingsCushion {
			cause = "low net savings cushion"
		}
		return Verdict{
			Status: HealthYellow,
			Reason: fmt.Sprintf("attention: %s, review recommended", cause),
		}
	}

	return Verdict{
		Status: HealthGreen,
		Reason: fmt.Sprintf("healthy: profit margin %.0f%%, net savings %.0f",
			math.Round(profitMargin*100), math.Round(netSavings)),
	}
}
