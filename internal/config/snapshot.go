package config

import (
	"fmt"
	"os"
	"time"

	"github.com/orilevi/business-forecast/pkg/constants"
	"github.com/orilevi/business-forecast/pkg/planning"
	"gopkg.in/yaml.v3"
)

// SnapshotDateLayout is the date format used in snapshot fixture files.
const SnapshotDateLayout = "2006-01-02"

// Fixture schema: dates are strings, and optional flags/rates use pointers so
// omitted values take the entity defaults instead of zero.
type snapshotFile struct {
	Business          planning.Business           `yaml:"business"`
	Channels          []snapshotChannel           `yaml:"channels"`
	Drivers           []planning.Driver           `yaml:"drivers"`
	Loans             []snapshotLoan              `yaml:"loans"`
	Investments       []snapshotInvestment        `yaml:"investments"`
	HistoricalActuals []planning.HistoricalActual `yaml:"historicalActuals"`
	ExpenseItems      []snapshotExpenseItem       `yaml:"expenseItems"`
}

type snapshotChannel struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Active           *bool    `yaml:"active"`
	MarketingROI     *float64 `yaml:"marketingRoi"`
	ConversionRate   float64  `yaml:"conversionRate"`
	VariableCostRate *float64 `yaml:"variableCostRate"`
}

type snapshotLoan struct {
	Name               string  `yaml:"name"`
	Principal          float64 `yaml:"principal"`
	AnnualInterestRate float64 `yaml:"annualInterestRate"`
	StartDate          string  `yaml:"startDate"`
	EndDate            string  `yaml:"endDate"`
	PaymentFrequency   string  `yaml:"paymentFrequency"`
}

type snapshotInvestment struct {
	Name                     string  `yaml:"name"`
	Amount                   float64 `yaml:"amount"`
	Date                     string  `yaml:"date"`
	DepreciationPeriodMonths int     `yaml:"depreciationPeriodMonths"`
}

type snapshotExpenseItem struct {
	Name             string  `yaml:"name"`
	Group            string  `yaml:"group"`
	MonthlyAmount    float64 `yaml:"monthlyAmount"`
	PercentOfRevenue bool    `yaml:"percentOfRevenue"`
	Active           *bool   `yaml:"active"`
}

// LoadSnapshot reads a YAML business snapshot fixture into the in-memory form
// consumed by the engine.
func LoadSnapshot(path string) (*planning.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	snapshot := planning.Snapshot{
		Business:     file.Business,
		Drivers:      file.Drivers,
		Historicals:  file.HistoricalActuals,
		Channels:     make([]planning.RevenueChannel, 0, len(file.Channels)),
		Loans:        make([]planning.Loan, 0, len(file.Loans)),
		Investments:  make([]planning.Investment, 0, len(file.Investments)),
		ExpenseItems: make([]planning.ExpenseItem, 0, len(file.ExpenseItems)),
	}

	for _, ch := range file.Channels {
		channel := planning.RevenueChannel{
			ID:             ch.ID,
			Name:           ch.Name,
			Active:         true,
			ConversionRate: ch.ConversionRate,
		}
		if ch.Active != nil {
			channel.Active = *ch.Active
		}
		channel.MarketingROI = constants.DefaultMarketingROI
		if ch.MarketingROI != nil {
			channel.MarketingROI = *ch.MarketingROI
		}
		channel.VariableCostRate = constants.DefaultVariableCostRate
		if ch.VariableCostRate != nil {
			channel.VariableCostRate = *ch.VariableCostRate
		}
		snapshot.Channels = append(snapshot.Channels, channel)
	}

	for _, l := range file.Loans {
		start, err := time.Parse(SnapshotDateLayout, l.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date for loan %s: %w", l.Name, err)
		}
		end, err := time.Parse(SnapshotDateLayout, l.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date for loan %s: %w", l.Name, err)
		}
		snapshot.Loans = append(snapshot.Loans, planning.Loan{
			Name:               l.Name,
			Principal:          l.Principal,
			AnnualInterestRate: l.AnnualInterestRate,
			StartDate:          start,
			EndDate:            end,
			PaymentFrequency:   l.PaymentFrequency,
		})
	}

	for _, inv := range file.Investments {
		date, err := time.Parse(SnapshotDateLayout, inv.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date for investment %s: %w", inv.Name, err)
		}
		snapshot.Investments = append(snapshot.Investments, planning.Investment{
			Name:                     inv.Name,
			Amount:                   inv.Amount,
			Date:                     date,
			DepreciationPeriodMonths: inv.DepreciationPeriodMonths,
		})
	}

	for _, item := range file.ExpenseItems {
		expense := planning.ExpenseItem{
			Name:             item.Name,
			Group:            item.Group,
			MonthlyAmount:    item.MonthlyAmount,
			PercentOfRevenue: item.PercentOfRevenue,
			Active:           true,
		}
		if item.Active != nil {
			expense.Active = *item.Active
		}
		snapshot.ExpenseItems = append(snapshot.ExpenseItems, expense)
	}

	return &snapshot, nil
}
