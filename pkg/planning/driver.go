package planning

import (
	"sort"

	"github.com/orilevi/business-forecast/pkg/timeutil"
)

// DriverIndex is a sorted index over a business's driver records supporting
// carry-forward resolution: the driver for a month is the exact match if one
// exists, otherwise the most recent driver at or before that month. The
// sparse driver list is effectively a run-length-encoded timeline, so lookup
// is a binary search over sorted (year, month) keys.
type DriverIndex struct {
	drivers []Driver
}

// NewDriverIndex copies and sorts the given drivers chronologically. The
// input slice is not modified.
func NewDriverIndex(drivers []Driver) *DriverIndex {
	sorted := make([]Driver, len(drivers))
	copy(sorted, drivers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return driverMonth(sorted[i]).Before(driverMonth(sorted[j]))
	})
	return &DriverIndex{drivers: sorted}
}

// Resolve returns the driver applicable to the given month, or nil when no
// driver exists at or before it. Months compare with year taking priority
// over month, so carry-forward works across year boundaries.
func (ix *DriverIndex) Resolve(ym timeutil.YearMonth) *Driver {
	// First index whose month is strictly after the target; the applicable
	// driver, if any, sits immediately before it.
	n := sort.Search(len(ix.drivers), func(i int) bool {
		return driverMonth(ix.drivers[i]).After(ym)
	})
	if n == 0 {
		return nil
	}
	return &ix.drivers[n-1]
}

// Len returns the number of indexed drivers.
func (ix *DriverIndex) Len() int {
	return len(ix.drivers)
}

func driverMonth(d Driver) timeutil.YearMonth {
	return timeutil.YearMonth{Year: d.Year, Month: d.Month}
}
