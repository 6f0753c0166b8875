package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SPS-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации расписания арендатора
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantID получает конфигурацию расписания арендатора вместе
// с недельным графиком работы. Если конфигурации нет, возвращает
// ErrConfigNotFound. Неполный график (меньше 7 дней) считается
// повреждёнными данными и возвращает ErrIncompleteSchedule.
func (r *Repository) GetByTenantID(ctx context.Context, tenantID int64) (*domain.TenantScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"time_slot_duration_minutes",
		"default_booking_duration_hours",
		"max_concurrent_bookings_per_slot",
		"minimum_notice_period_hours",
		"max_advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("tenant_schedule_configs").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - build config query: %v", ErrBuildQuery, err)
	}

	var config domain.TenantScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.TenantID,
		&config.TimeSlotDurationMinutes,
		&config.DefaultBookingDurationHours,
		&config.MaxConcurrentBookingsPerSlot,
		&config.MinimumNoticePeriodHours,
		&config.MaxAdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	workingHours, err := r.getWorkingHours(ctx, executor, tenantID)
	if err != nil {
		return nil, err
	}
	if len(workingHours) != domain.DaysPerWeek {
		return nil, fmt.Errorf("%w: GetByTenantID - tenant %d has %d of %d weekday entries",
			ErrIncompleteSchedule, tenantID, len(workingHours), domain.DaysPerWeek)
	}
	config.WorkingHours = workingHours

	return &config, nil
}

// getWorkingHours загружает недельный график работы арендатора
func (r *Repository) getWorkingHours(ctx context.Context, executor DBExecutor, tenantID int64) (domain.WeeklySchedule, error) {
	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_open",
		"start_time",
		"end_time",
	).
		From("tenant_working_hours").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := make(domain.WeeklySchedule, 0, domain.DaysPerWeek)

	for rows.Next() {
		var entry domain.WorkingHoursEntry
		var dayOfWeek int

		err := rows.Scan(
			&dayOfWeek,
			&entry.IsOpen,
			&entry.StartTime,
			&entry.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getWorkingHours - scan row: %v", ErrScanRow, err)
		}

		entry.DayOfWeek = time.Weekday(dayOfWeek)
		schedule = append(schedule, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}
