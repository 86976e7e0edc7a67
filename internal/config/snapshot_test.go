package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orilevi/business-forecast/pkg/constants"
)

const snapshotFixture = `
business:
  id: biz-1
  name: Corner Bakery
  openingBalance: 5000
channels:
  - id: ch-1
    name: Online
    marketingRoi: 4.0
    variableCostRate: 0.4
  - id: ch-2
    name: Walk-in
drivers:
  - year: 2025
    month: 1
    totalMarketingBudget: 8000
    fixedPayroll: 6000
    channelDrivers:
      - channelId: ch-1
        marketingBudget: 5000
        roiOverride: 3.5
loans:
  - name: oven loan
    principal: 24000
    annualInterestRate: 0.05
    startDate: 2025-01-01
    endDate: 2027-01-01
investments:
  - name: delivery van
    amount: 36000
    date: 2025-03-01
    depreciationPeriodMonths: 36
historicalActuals:
  - year: 2024
    month: 12
    revenueAmountTotal: 21000
    profitLossTotal: 1800
expenseItems:
  - name: rent
    monthlyAmount: 1500
  - name: old subscription
    monthlyAmount: 100
    active: false
`

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := os.WriteFile(path, []byte(snapshotFixture), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	snapshot, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	if snapshot.Business.ID != "biz-1" || snapshot.Business.OpeningBalance != 5000 {
		t.Errorf("Business = %+v, expected biz-1 with opening balance 5000", snapshot.Business)
	}

	if len(snapshot.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(snapshot.Channels))
	}
	online := snapshot.Channels[0]
	if online.MarketingROI != 4.0 || online.VariableCostRate != 0.4 {
		t.Errorf("explicit channel rates not honored: %+v", online)
	}
	walkIn := snapshot.Channels[1]
	if walkIn.MarketingROI != constants.DefaultMarketingROI {
		t.Errorf("walk-in ROI = %v, expected default %v", walkIn.MarketingROI, constants.DefaultMarketingROI)
	}
	if walkIn.VariableCostRate != constants.DefaultVariableCostRate {
		t.Errorf("walk-in variable cost rate = %v, expected default %v", walkIn.VariableCostRate, constants.DefaultVariableCostRate)
	}
	if !walkIn.Active {
		t.Error("omitted active flag should default to true")
	}

	if len(snapshot.Drivers) != 1 {
		t.Fatalf("expected 1 driver, got %d", len(snapshot.Drivers))
	}
	driver := snapshot.Drivers[0]
	if len(driver.ChannelDrivers) != 1 {
		t.Fatalf("expected 1 channel driver, got %d", len(driver.ChannelDrivers))
	}
	if driver.ChannelDrivers[0].ROIOverride == nil || *driver.ChannelDrivers[0].ROIOverride != 3.5 {
		t.Errorf("ROIOverride = %v, expected 3.5", driver.ChannelDrivers[0].ROIOverride)
	}

	if len(snapshot.Loans) != 1 {
		t.Fatalf("expected 1 loan, got %d", len(snapshot.Loans))
	}
	expectedStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !snapshot.Loans[0].StartDate.Equal(expectedStart) {
		t.Errorf("loan StartDate = %v, expected %v", snapshot.Loans[0].StartDate, expectedStart)
	}

	if len(snapshot.Investments) != 1 || snapshot.Investments[0].DepreciationPeriodMonths != 36 {
		t.Errorf("Investments = %+v, expected the van over 36 months", snapshot.Investments)
	}

	if len(snapshot.Historicals) != 1 || snapshot.Historicals[0].Revenue != 21000 {
		t.Errorf("Historicals = %+v, expected december actual", snapshot.Historicals)
	}

	if len(snapshot.ExpenseItems) != 2 {
		t.Fatalf("expected 2 expense items, got %d", len(snapshot.ExpenseItems))
	}
	if !snapshot.ExpenseItems[0].Active {
		t.Error("omitted expense active flag should default to true")
	}
	if snapshot.ExpenseItems[1].Active {
		t.Error("explicit inactive expense should stay inactive")
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSnapshot() expected error for missing file")
	}
}

func TestLoadSnapshotInvalidDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	fixture := `
business:
  id: biz-1
loans:
  - name: bad loan
    principal: 1000
    startDate: 01/02/2025
    endDate: 2026-01-01
`
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Error("LoadSnapshot() expected error for invalid loan date")
	}
}
