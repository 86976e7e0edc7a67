// Package forecast drives the month-by-month projection over a business
// planning snapshot and exposes the collaborator-facing forecast operations.
package forecast

import (
	"github.com/orilevi/business-forecast/pkg/constants"
	"github.com/orilevi/business-forecast/pkg/mathutil"
	"github.com/orilevi/business-forecast/pkg/planning"
	"github.com/orilevi/business-forecast/pkg/timeutil"
	"go.uber.org/zap"
)

// Options controls one forecast run. The zero value starts at the current
// calendar month with the default horizon and a zero opening balance.
type Options struct {
	// Start is the first projected month. The zero value means the current
	// calendar month; tests inject a fixed start instead of reading the clock.
	Start timeutil.YearMonth

	// MonthsAhead is the horizon length, clamped to 1..24. Zero means the
	// default of 12.
	MonthsAhead int

	// OpeningBalance seeds the running bank balance.
	OpeningBalance float64
}

func (o Options) normalized() Options {
	if o.Start == (timeutil.YearMonth{}) {
		o.Start = timeutil.Current()
	}
	if o.MonthsAhead == 0 {
		o.MonthsAhead = constants.DefaultMonthsAhead
	}
	if o.MonthsAhead < constants.MinMonthsAhead {
		o.MonthsAhead = constants.MinMonthsAhead
	}
	if o.MonthsAhead > constants.MaxMonthsAhead {
		o.MonthsAhead = constants.MaxMonthsAhead
	}
	return o
}

// Engine runs the sequential per-month pipeline: resolve driver, compute
// channel revenue, recurring obligations, aggregate, compare to actuals,
// classify health, then carry the bank balance into the next month. The
// engine holds no mutable state between runs; two runs over the same snapshot
// produce identical sequences.
type Engine struct {
	logger      *zap.Logger
	channels    *planning.ChannelCalculator
	obligations *planning.ObligationCalculator
	aggregator  *planning.Aggregator
}

// NewEngine creates a forecast engine with the given logger. If logger is
// nil, it will use a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:      logger,
		channels:    planning.NewChannelCalculator(logger),
		obligations: planning.NewObligationCalculator(logger),
		aggregator:  planning.NewAggregator(logger),
	}
}

// Run projects the snapshot over the configured horizon and returns one
// result per month in chronological order. A snapshot with no drivers or
// channels yields a valid sequence of zero-valued months, not an error.
func (e *Engine) Run(snapshot planning.Snapshot, opts Options) []planning.ForecastResult {
	opts = opts.normalized()

	index := planning.NewDriverIndex(snapshot.Drivers)
	channels := snapshot.ActiveChannels()
	flatExpenses := planning.FlatExpenseTotal(snapshot.ExpenseItems)

	e.logger.Debug("starting forecast run",
		zap.String("op", "forecast.Run"),
		zap.String("business", snapshot.Business.ID),
		zap.String("start", opts.Start.String()),
		zap.Int("monthsAhead", opts.MonthsAhead),
	)

	balance := opts.OpeningBalance
	results := make([]planning.ForecastResult, 0, opts.MonthsAhead)

	for i := 0; i < opts.MonthsAhead; i++ {
		ym := opts.Start.AddMonths(i)

		driver := index.Resolve(ym)
		breakdown := e.channels.Breakdown(channels, driver)
		loanPayments := e.obligations.LoanPaymentsForMonth(snapshot.Loans, ym)
		depreciation := e.obligations.DepreciationForMonth(snapshot.Investments, ym)

		totals := e.aggregator.Aggregate(breakdown, driver, loanPayments, depreciation, flatExpenses)
		balance += totals.CashFlow

		comparison := planning.CompareToActual(totals.TotalRevenue, totals.ProfitLoss,
			planning.FindActual(snapshot.Historicals, ym))
		verdict := planning.Classify(totals.ProfitLoss, totals.NetSavings, totals.TotalRevenue, results)

		results = append(results, emitResult(ym, breakdown, totals, balance, comparison, verdict))
	}

	return results
}

// RunWhatIf applies the what-if adjustments to a derived copy of the snapshot
// and runs the same pipeline. Neutral adjustments produce results numerically
// identical to Run.
func (e *Engine) RunWhatIf(snapshot planning.Snapshot, opts Options, adjustments planning.Adjustments) []planning.ForecastResult {
	return e.Run(adjustments.Apply(snapshot), opts)
}

// emitResult rounds the month's monetary values to whole currency units and
// assembles the result record. Rounding is deferred to this point so chained
// calculations stay at full precision.
func emitResult(ym timeutil.YearMonth, breakdown []planning.ChannelBreakdown, totals planning.MonthTotals, balance float64, cmp planning.Comparison, verdict planning.Verdict) planning.ForecastResult {
	rounded := make([]planning.ChannelBreakdown, len(breakdown))
	for i, ch := range breakdown {
		ch.MarketingBudget = mathutil.RoundCurrency(ch.MarketingBudget)
		ch.Revenue = mathutil.RoundCurrency(ch.Revenue)
		ch.VariableCosts = mathutil.RoundCurrency(ch.VariableCosts)
		ch.GrossProfit = mathutil.RoundCurrency(ch.GrossProfit)
		rounded[i] = ch
	}

	return planning.ForecastResult{
		Year:      ym.Year,
		Month:     ym.Month,
		MonthName: ym.MonthName(),

		TotalRevenueForecast: mathutil.RoundCurrency(totals.TotalRevenue),
		ChannelBreakdown:     rounded,

		TotalExpensesForecast: mathutil.RoundCurrency(totals.TotalExpenses),
		VariableCosts:         mathutil.RoundCurrency(totals.VariableCosts),
		FixedCosts:            mathutil.RoundCurrency(totals.FixedCosts),
		OperatingExpenses:     mathutil.RoundCurrency(totals.OperatingExpenses),
		MarketingExpenses:     mathutil.RoundCurrency(totals.MarketingExpenses),
		FinancialExpenses:     mathutil.RoundCurrency(totals.FinancialExpenses),

		GrossProfit:        mathutil.RoundCurrency(totals.GrossProfit),
		OperatingProfit:    mathutil.RoundCurrency(totals.OperatingProfit),
		ProfitLossForecast: mathutil.RoundCurrency(totals.ProfitLoss),

		OtherIncome:            mathutil.RoundCurrency(totals.OtherIncome),
		PersonalLivingExpenses: mathutil.RoundCurrency(totals.PersonalLivingExpenses),
		NetSavings:             mathutil.RoundCurrency(totals.NetSavings),

		CashFlowForecast:    mathutil.RoundCurrency(totals.CashFlow),
		BankBalanceForecast: mathutil.RoundCurrency(balance),

		ActualRevenue:       cmp.ActualRevenue,
		ActualProfitLoss:    cmp.ActualProfitLoss,
		RevenueDeltaPercent: cmp.RevenueDeltaPercent,
		ProfitDeltaPercent:  cmp.ProfitDeltaPercent,

		TrafficLight:       verdict.Status,
		TrafficLightReason: verdict.Reason,
	}
}
