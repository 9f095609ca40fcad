package recurring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var recurringColumns = []string{
	"id",
	"business_id",
	"location_id",
	"service_id",
	"customer_user_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"frequency",
	"day_of_week",
	"day_of_month",
	"start_time",
	"start_date",
	"end_date",
	"occurrence_count",
	"is_active",
	"notes",
	"created_at",
	"updated_at",
}

// Repository шаблоны повторяющихся записей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый шаблон
func (r *Repository) Create(ctx context.Context, rule *domain.RecurringBooking) (*domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var dayOfWeek *int
	if rule.DayOfWeek != nil {
		v := int(*rule.DayOfWeek)
		dayOfWeek = &v
	}

	query, args, err := psqlbuilder.Insert("recurring_bookings").
		Columns(
			"business_id",
			"location_id",
			"service_id",
			"customer_user_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"frequency",
			"day_of_week",
			"day_of_month",
			"start_time",
			"start_date",
			"end_date",
			"occurrence_count",
			"is_active",
			"notes",
		).
		Values(
			rule.BusinessID,
			rule.LocationID,
			rule.ServiceID,
			rule.CustomerUserID,
			rule.CustomerName,
			rule.CustomerEmail,
			rule.CustomerPhone,
			rule.Frequency,
			dayOfWeek,
			rule.DayOfMonth,
			rule.StartTime,
			rule.StartDate.Format(domain.DateFormat),
			formatDate(rule.EndDate),
			rule.OccurrenceCount,
			rule.IsActive,
			rule.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает шаблон по ID. Внутри транзакции строка блокируется,
// чтобы параллельные генерации одной серии шли последовательно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recurringColumns...).
		From("recurring_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRecurring(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecurringNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan recurring booking: %w", ErrScanRow, err)
	}

	return rule, nil
}

// GetByBusiness получает шаблоны бизнеса. activeOnly отбрасывает выключенные.
func (r *Repository) GetByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.RecurringBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recurringColumns...).
		From("recurring_bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.RecurringBooking, 0)
	for rows.Next() {
		rule, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBusiness - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecurring(row rowScanner) (*domain.RecurringBooking, error) {
	var rule domain.RecurringBooking
	var dayOfWeek sql.NullInt16
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.BusinessID,
		&rule.LocationID,
		&rule.ServiceID,
		&rule.CustomerUserID,
		&rule.CustomerName,
		&rule.CustomerEmail,
		&rule.CustomerPhone,
		&rule.Frequency,
		&dayOfWeek,
		&rule.DayOfMonth,
		&rule.StartTime,
		&rule.StartDate,
		&rule.EndDate,
		&rule.OccurrenceCount,
		&rule.IsActive,
		&rule.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dayOfWeek.Valid {
		wd := time.Weekday(dayOfWeek.Int16)
		rule.DayOfWeek = &wd
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
