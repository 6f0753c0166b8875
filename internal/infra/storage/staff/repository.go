package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SPS-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий данных о персонале: допуски к типам задач
// и занятость по назначениям (read-only для движка доступности)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория персонала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListEligibleUserIDs возвращает уникальные ID сотрудников арендатора,
// допущенных хотя бы к одному из перечисленных типов задач.
func (r *Repository) ListEligibleUserIDs(ctx context.Context, tenantID int64, taskTypeIDs []int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT user_id").
		From("staff_eligibilities").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Expr("task_type_id = ANY(?)", pq.Array(taskTypeIDs))).
		OrderBy("user_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleUserIDs - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleUserIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	userIDs := make([]int64, 0)

	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("%w: ListEligibleUserIDs - scan user_id: %v", ErrScanRow, err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEligibleUserIDs - rows error: %v", ErrScanRow, err)
	}

	return userIDs, nil
}

// ListBusyWindows возвращает занятые интервалы сотрудников за UTC-день
// [dayStart, dayEnd): назначения на задачи активных бронирований.
// Фильтр по арендатору стоит на каждой таблице соединения.
func (r *Repository) ListBusyWindows(ctx context.Context, tenantID int64, userIDs []int64, dayStart, dayEnd time.Time) ([]domain.StaffBusyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"ta.user_id",
		"b.start_time",
		"b.duration_minutes",
	).
		From("task_assignments ta").
		Join("tasks t ON t.id = ta.task_id").
		Join("bookings b ON b.id = t.booking_id").
		Where(squirrel.Eq{"ta.tenant_id": tenantID}).
		Where(squirrel.Eq{"t.tenant_id": tenantID}).
		Where(squirrel.Eq{"b.tenant_id": tenantID}).
		Where(squirrel.Expr("ta.user_id = ANY(?)", pq.Array(userIDs))).
		Where(squirrel.GtOrEq{"b.event_date": dayStart}).
		Where(squirrel.Lt{"b.event_date": dayEnd}).
		Where(squirrel.Eq{"b.status": activeStatusStrings}).
		OrderBy("ta.user_id ASC, b.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyWindows - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.StaffBusyWindow, 0)

	for rows.Next() {
		var window domain.StaffBusyWindow
		err := rows.Scan(
			&window.UserID,
			&window.StartTime,
			&window.DurationMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBusyWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusyWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
