package planning

import (
	"github.com/orilevi/business-forecast/pkg/mathutil"
)

// ChannelROIOverride multiplies one channel's ROI in a what-if scenario.
type ChannelROIOverride struct {
	ChannelID     string  `json:"channelId" yaml:"channelId"`
	ROIMultiplier float64 `json:"roiMultiplier" yaml:"roiMultiplier"`
}

// Adjustments is the what-if parameter set. Zero-valued multipliers are
// treated as the neutral 1.0 so that an empty Adjustments reproduces the base
// forecast exactly.
type Adjustments struct {
	MarketingBudgetMultiplier  float64              `json:"marketingBudgetMultiplier,omitempty" yaml:"marketingBudgetMultiplier,omitempty"`
	ChannelROIOverrides        []ChannelROIOverride `json:"channelRoiOverrides,omitempty" yaml:"channelRoiOverrides,omitempty"`
	VariableCostRateAdjustment float64              `json:"variableCostRateAdjustment,omitempty" yaml:"variableCostRateAdjustment,omitempty"`
	FixedCostsMultiplier       float64              `json:"fixedCostsMultiplier,omitempty" yaml:"fixedCostsMultiplier,omitempty"`
}

// NeutralAdjustments returns the adjustment set that leaves a forecast
// unchanged.
func NeutralAdjustments() Adjustments {
	return Adjustments{
		MarketingBudgetMultiplier: 1,
		FixedCostsMultiplier:      1,
	}
}

// Normalized replaces zero-valued multipliers with the neutral 1.0.
func (a Adjustments) Normalized() Adjustments {
	if a.MarketingBudgetMultiplier == 0 {
		a.MarketingBudgetMultiplier = 1
	}
	if a.FixedCostsMultiplier == 0 {
		a.FixedCostsMultiplier = 1
	}
	return a
}

func (a Adjustments) roiMultiplierFor(channelID string) float64 {
	for _, o := range a.ChannelROIOverrides {
		if o.ChannelID == channelID && o.ROIMultiplier != 0 {
			return o.ROIMultiplier
		}
	}
	return 1
}

// Apply derives an adjusted copy of the snapshot for a what-if run. Channel
// ROIs are multiplied per override, variable-cost rates shifted and clamped to
// [0,1], per-channel driver budgets scaled by the global marketing multiplier,
// and fixed/operating cost inputs scaled by the fixed-costs multiplier. The
// driver's total marketing budget (the equal-split pool) is intentionally left
// untouched; only explicit per-channel budgets scale. The input snapshot is
// never modified, so concurrent what-if runs do not interfere.
func (a Adjustments) Apply(s Snapshot) Snapshot {
	a = a.Normalized()

	adjusted := s

	adjusted.Channels = make([]RevenueChannel, len(s.Channels))
	for i, ch := range s.Channels {
		ch.MarketingROI *= a.roiMultiplierFor(ch.ID)
		ch.VariableCostRate = mathutil.Clamp(ch.VariableCostRate+a.VariableCostRateAdjustment, 0, 1)
		adjusted.Channels[i] = ch
	}

	adjusted.Drivers = make([]Driver, len(s.Drivers))
	for i, d := range s.Drivers {
		d.FixedPayroll *= a.FixedCostsMultiplier
		d.PayrollTotal *= a.FixedCostsMultiplier
		d.AdminExpenses *= a.FixedCostsMultiplier
		d.OperatingExpenses *= a.FixedCostsMultiplier

		drivers := make([]ChannelDriver, len(d.ChannelDrivers))
		for j, cd := range d.ChannelDrivers {
			cd.MarketingBudget *= a.MarketingBudgetMultiplier
			drivers[j] = cd
		}
		d.ChannelDrivers = drivers
		adjusted.Drivers[i] = d
	}

	adjusted.ExpenseItems = make([]ExpenseItem, len(s.ExpenseItems))
	for i, item := range s.ExpenseItems {
		if !item.PercentOfRevenue {
			item.MonthlyAmount *= a.FixedCostsMultiplier
		}
		adjusted.ExpenseItems[i] = item
	}

	return adjusted
}
