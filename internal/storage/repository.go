package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/orilevi/business-forecast/internal/forecast"
	"github.com/orilevi/business-forecast/pkg/planning"
)

const (
	businessesTable        = "businesses"
	revenueChannelsTable   = "revenue_channels"
	driversTable           = "drivers"
	channelDriversTable    = "channel_drivers"
	loansTable             = "loans"
	investmentsTable       = "investments"
	historicalActualsTable = "historical_actuals"
	expenseItemsTable      = "expense_items"
)

// SnapshotRepository loads a business's complete planning snapshot. It
// implements forecast.SnapshotSource.
type SnapshotRepository struct {
	conn *Connection
}

// NewSnapshotRepository creates a snapshot repository over the given
// connection.
func NewSnapshotRepository(conn *Connection) *SnapshotRepository {
	return &SnapshotRepository{conn: conn}
}

// Snapshot fetches the business and all of its planning records in one pass
// and returns them as an immutable in-memory snapshot. Returns
// forecast.ErrBusinessNotFound when the business does not exist.
func (r *SnapshotRepository) Snapshot(ctx context.Context, businessID string) (planning.Snapshot, error) {
	var snapshot planning.Snapshot

	business, err := r.getBusiness(ctx, businessID)
	if err != nil {
		return snapshot, err
	}
	snapshot.Business = *business

	if snapshot.Channels, err = r.listChannels(ctx, businessID); err != nil {
		return snapshot, fmt.Errorf("failed to load channels: %w", err)
	}
	if snapshot.Drivers, err = r.listDrivers(ctx, businessID); err != nil {
		return snapshot, fmt.Errorf("failed to load drivers: %w", err)
	}
	if snapshot.Loans, err = r.listLoans(ctx, businessID); err != nil {
		return snapshot, fmt.Errorf("failed to load loans: %w", err)
	}
	if snapshot.Investments, err = r.listInvestments(ctx, businessID); err != nil {
		return snapshot, fmt.Errorf("failed to load investments: %w", err)
	}
	if snapshot.Historicals, err = r.listHistoricalActuals(ctx, businessID); err != nil {
		return snapshot, fmt.Errorf("failed to load historical actuals: %w", err)
	}
	if snapshot.ExpenseItems, err = r.listExpenseItems(ctx, businessID); err != nil {
		return snapshot, fmt.Errorf("failed to load expense items: %w", err)
	}

	return snapshot, nil
}

func (r *SnapshotRepository) getBusiness(ctx context.Context, businessID string) (*planning.Business, error) {
	query, args, err := squirrel.
		Select("id, name, opening_balance").
		From(businessesTable).
		Where(squirrel.Eq{"id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	business := &planning.Business{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Name,
		&business.OpeningBalance,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, forecast.ErrBusinessNotFound
		}
		return nil, err
	}

	return business, nil
}

func (r *SnapshotRepository) listChannels(ctx context.Context, businessID string) ([]planning.RevenueChannel, error) {
	query, args, err := squirrel.
		Select("id, name, is_active, marketing_roi, conversion_rate, variable_cost_rate").
		From(revenueChannelsTable).
		Where(squirrel.Eq{"business_id": businessID, "is_active": true}).
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []planning.RevenueChannel
	for rows.Next() {
		var ch planning.RevenueChannel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Active, &ch.MarketingROI, &ch.ConversionRate, &ch.VariableCostRate); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	return channels, rows.Err()
}

func (r *SnapshotRepository) listDrivers(ctx context.Context, businessID string) ([]planning.Driver, error) {
	query, args, err := squirrel.
		Select(`id, year, month, total_marketing_budget, fixed_payroll, admin_expenses,
			operating_expenses, credit_card_fee_rate, personal_living_expenses, other_income,
			marketing_budget, payroll_total, expected_customers, avg_revenue_per_customer, headcount`).
		From(driversTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("year", "month").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []planning.Driver
	byID := make(map[string]int)
	for rows.Next() {
		var d planning.Driver
		if err := rows.Scan(
			&d.ID, &d.Year, &d.Month, &d.TotalMarketingBudget, &d.FixedPayroll, &d.AdminExpenses,
			&d.OperatingExpenses, &d.CreditCardFeeRate, &d.PersonalLivingExpenses, &d.OtherIncome,
			&d.MarketingBudget, &d.PayrollTotal, &d.ExpectedCustomers, &d.AvgRevenuePerCustomer, &d.Headcount,
		); err != nil {
			return nil, err
		}
		byID[d.ID] = len(drivers)
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachChannelDrivers(ctx, businessID, drivers, byID); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (r *SnapshotRepository) attachChannelDrivers(ctx context.Context, businessID string, drivers []planning.Driver, byID map[string]int) error {
	if len(drivers) == 0 {
		return nil
	}

	query, args, err := squirrel.
		Select("cd.driver_id, cd.revenue_channel_id, cd.marketing_budget, cd.roi_override").
		From(channelDriversTable + " cd").
		Join(driversTable + " d ON d.id = cd.driver_id").
		Where(squirrel.Eq{"d.business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			driverID string
			cd       planning.ChannelDriver
			override sql.NullFloat64
		)
		if err := rows.Scan(&driverID, &cd.ChannelID, &cd.MarketingBudget, &override); err != nil {
			return err
		}
		if override.Valid {
			value := override.Float64
			cd.ROIOverride = &value
		}
		if i, ok := byID[driverID]; ok {
			drivers[i].ChannelDrivers = append(drivers[i].ChannelDrivers, cd)
		}
	}

	return rows.Err()
}

func (r *SnapshotRepository) listLoans(ctx context.Context, businessID string) ([]planning.Loan, error) {
	query, args, err := squirrel.
		Select("name, principal, annual_interest_rate, start_date, end_date, payment_frequency").
		From(loansTable).
		Where(squirrel.Eq{"business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []planning.Loan
	for rows.Next() {
		var l planning.Loan
		if err := rows.Scan(&l.Name, &l.Principal, &l.AnnualInterestRate, &l.StartDate, &l.EndDate, &l.PaymentFrequency); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}

	return loans, rows.Err()
}

func (r *SnapshotRepository) listInvestments(ctx context.Context, businessID string) ([]planning.Investment, error) {
	query, args, err := squirrel.
		Select("name, amount, acquired_at, depreciation_period_months").
		From(investmentsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []planning.Investment
	for rows.Next() {
		var inv planning.Investment
		if err := rows.Scan(&inv.Name, &inv.Amount, &inv.Date, &inv.DepreciationPeriodMonths); err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}

	return investments, rows.Err()
}

func (r *SnapshotRepository) listHistoricalActuals(ctx context.Context, businessID string) ([]planning.HistoricalActual, error) {
	query, args, err := squirrel.
		Select("year, month, revenue_amount_total, profit_loss_total").
		From(historicalActualsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("year", "month").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actuals []planning.HistoricalActual
	for rows.Next() {
		var h planning.HistoricalActual
		if err := rows.Scan(&h.Year, &h.Month, &h.Revenue, &h.ProfitLoss); err != nil {
			return nil, err
		}
		actuals = append(actuals, h)
	}

	return actuals, rows.Err()
}

func (r *SnapshotRepository) listExpenseItems(ctx context.Context, businessID string) ([]planning.ExpenseItem, error) {
	query, args, err := squirrel.
		Select("name, expense_group, monthly_amount, is_percent_of_revenue, is_active").
		From(expenseItemsTable).
		Where(squirrel.Eq{"business_id": businessID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []planning.ExpenseItem
	for rows.Next() {
		var item planning.ExpenseItem
		if err := rows.Scan(&item.Name, &item.Group, &item.MonthlyAmount, &item.PercentOfRevenue, &item.Active); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
