package planning

import (
	"go.uber.org/zap"
)

// ChannelCalculator computes the ROI-driven revenue attribution for each
// active channel: revenue = marketing budget x ROI, variable cost as a
// fraction of revenue, gross profit as the difference. All outputs are full
// precision; rounding happens when results are emitted.
type ChannelCalculator struct {
	logger *zap.Logger
}

// NewChannelCalculator creates a channel revenue calculator with the given
// logger. If logger is nil, it will use a no-op logger.
func NewChannelCalculator(logger *zap.Logger) *ChannelCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChannelCalculator{logger: logger}
}

// Breakdown computes the per-channel revenue breakdown for one month. The
// channels slice is expected to already be filtered to active channels; a nil
// driver yields zero budgets for every channel.
func (c *ChannelCalculator) Breakdown(channels []RevenueChannel, driver *Driver) []ChannelBreakdown {
	breakdown := make([]ChannelBreakdown, 0, len(channels))
	for _, channel := range channels {
		channelDriver := driver.ChannelDriverFor(channel.ID)

		budget := ResolveChannelBudget(driver, channelDriver, len(channels))
		roi := EffectiveROI(channel, channelDriver)

		revenue := budget * roi
		variableCosts := revenue * channel.VariableCostRate
		grossProfit := revenue - variableCosts

		c.logger.Debug("channel revenue computed",
			zap.String("op", "planning.Breakdown"),
			zap.String("channel", channel.Name),
			zap.Float64("budget", budget),
			zap.Float64("roi", roi),
			zap.Float64("revenue", revenue),
		)

		breakdown = append(breakdown, ChannelBreakdown{
			ChannelID:       channel.ID,
			ChannelName:     channel.Name,
			MarketingBudget: budget,
			ROI:             roi,
			Revenue:         revenue,
			VariableCosts:   variableCosts,
			GrossProfit:     grossProfit,
		})
	}
	return breakdown
}

// ResolveChannelBudget determines a channel's marketing budget for one month.
// Precedence: a nonzero per-channel override, then an equal split of the
// driver's total marketing budget across active channels, then an equal split
// of the legacy single-budget field, then 0.
func ResolveChannelBudget(driver *Driver, channelDriver *ChannelDriver, activeChannels int) float64 {
	if channelDriver != nil && channelDriver.MarketingBudget != 0 {
		return channelDriver.MarketingBudget
	}
	if activeChannels == 0 {
		return 0
	}
	return driver.EffectiveMarketingBudget() / float64(activeChannels)
}

// EffectiveROI returns the ROI to apply for a channel in one month: a nonzero
// per-month override when present, otherwise the channel's own ROI.
func EffectiveROI(channel RevenueChannel, channelDriver *ChannelDriver) float64 {
	if channelDriver != nil && channelDriver.ROIOverride != nil && *channelDriver.ROIOverride != 0 {
		return *channelDriver.ROIOverride
	}
	return channel.MarketingROI
}
