package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository бизнесы, их правила бронирования и недельное расписание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var business domain.Business
	var timezone sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&timezone,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %w", ErrScanRow, err)
	}

	business.Timezone = timezone.String
	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return &business, nil
}

// GetRules получает правила бронирования бизнеса
func (r *Repository) GetRules(ctx context.Context, businessID int64) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"minimum_advance_booking_hours",
		"cancellation_policy_hours",
		"booking_buffer_minutes",
		"updated_at",
	).
		From("business_booking_rules").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - build select query: %v", ErrBuildQuery, err)
	}

	var rules domain.BookingRules
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.BusinessID,
		&rules.MinimumAdvanceBookingHours,
		&rules.CancellationPolicyHours,
		&rules.BookingBufferMinutes,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - scan rules: %w", ErrScanRow, err)
	}

	rules.UpdatedAt = updatedAt.Time

	return &rules, nil
}

// UpsertRules создает или обновляет правила бронирования бизнеса
func (r *Repository) UpsertRules(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_booking_rules").
		Columns(
			"business_id",
			"minimum_advance_booking_hours",
			"cancellation_policy_hours",
			"booking_buffer_minutes",
		).
		Values(
			rules.BusinessID,
			rules.MinimumAdvanceBookingHours,
			rules.CancellationPolicyHours,
			rules.BookingBufferMinutes,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			minimum_advance_booking_hours = EXCLUDED.minimum_advance_booking_hours,
			cancellation_policy_hours = EXCLUDED.cancellation_policy_hours,
			booking_buffer_minutes = EXCLUDED.booking_buffer_minutes,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRules - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertRules - execute upsert: %w", ErrExecQuery, err)
	}

	rules.UpdatedAt = updatedAt.Time

	return rules, nil
}

// GetAvailability получает недельное расписание бизнеса.
// Бизнес без строк расписания возвращается с пустым Days (ограничений нет).
func (r *Repository) GetAvailability(ctx context.Context, businessID int64) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
		"updated_at",
	).
		From("business_availability").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := &domain.WeeklyAvailability{
		BusinessID: businessID,
		Days:       make(map[time.Weekday]domain.DaySchedule),
	}

	for rows.Next() {
		var dayOfWeek int
		var day domain.DaySchedule
		var updatedAt sql.NullTime

		if err := rows.Scan(&dayOfWeek, &day.IsOpen, &day.OpenTime, &day.CloseTime, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetAvailability - scan row: %v", ErrScanRow, err)
		}

		weekly.Days[time.Weekday(dayOfWeek)] = day
		if updatedAt.Time.After(weekly.UpdatedAt) {
			weekly.UpdatedAt = updatedAt.Time
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - rows error: %w", ErrScanRow, err)
	}

	return weekly, nil
}

// ReplaceAvailability полностью заменяет недельное расписание бизнеса.
// Вызывать внутри транзакции, иначе удаление и вставка не атомарны.
func (r *Repository) ReplaceAvailability(ctx context.Context, weekly *domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("business_availability").
		Where(squirrel.Eq{"business_id": weekly.BusinessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute delete: %w", ErrExecQuery, err)
	}

	if len(weekly.Days) == 0 {
		return nil
	}

	days := make([]time.Weekday, 0, len(weekly.Days))
	for day := range weekly.Days {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	insertBuilder := psqlbuilder.Insert("business_availability").
		Columns("business_id", "day_of_week", "is_open", "open_time", "close_time")

	for _, day := range days {
		schedule := weekly.Days[day]
		insertBuilder = insertBuilder.Values(
			weekly.BusinessID,
			int(day),
			schedule.IsOpen,
			schedule.OpenTime,
			schedule.CloseTime,
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
