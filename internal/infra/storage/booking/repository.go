package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SPS-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value),
// использует её. Создание через usecase всегда идёт в serializable
// транзакции вместе с повторной проверкой занятости слота.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"tenant_id",
			"package_id",
			"user_id",
			"event_date",
			"start_time",
			"duration_minutes",
			"status",
			"package_name",
			"notes",
		).
		Values(
			booking.TenantID,
			booking.PackageID,
			booking.UserID,
			booking.EventDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.PackageName,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID с фильтром по арендатору в запросе.
// Чужое бронирование неотличимо от несуществующего.
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"package_id",
		"user_id",
		"event_date",
		"start_time",
		"duration_minutes",
		"status",
		"package_name",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.PackageID,
		&booking.UserID,
		&booking.EventDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.PackageName,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// ListWithFilter получает бронирования по типизированному фильтру.
// Единственная точка сборки запроса выборки: фильтр по арендатору
// обязателен, окно дат полуоткрытое [DateFrom, DateTo).
//
// Примеры использования:
//
// 1. Активные бронирования пакета за UTC-день (подсчёт занятости):
//    filter := domain.BookingFilter{TenantID: 1, PackageID: &pkgID, DateFrom: &day, DateTo: &nextDay}
//
// 2. Занятость конкретного слота (внутри транзакции строки блокируются FOR UPDATE):
//    filter := domain.BookingFilter{TenantID: 1, PackageID: &pkgID, DateFrom: &day, DateTo: &nextDay, StartTime: &slotStart}
//
// 3. История бронирований арендатора включая отменённые:
//    filter := domain.BookingFilter{TenantID: 1, IncludeInactive: true}
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - %v", ErrInvalidFilter, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"tenant_id",
		"package_id",
		"user_id",
		"event_date",
		"start_time",
		"duration_minutes",
		"status",
		"package_name",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.PackageID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"package_id": *filter.PackageID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	// Полуоткрытое окно дат: нижняя граница включается, верхняя нет
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"event_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"event_date": *filter.DateTo})
	}

	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": *filter.StartTime})
	}

	if len(filter.Statuses) > 0 {
		statusStrings := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	} else if !filter.IncludeInactive {
		// Без явного списка статусов отменённые бронирования исключаются
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	if filter.SingleDay() {
		// Для одного дня сортируем по времени начала слота
		selectBuilder = selectBuilder.OrderBy("start_time ASC, id ASC")
	} else {
		// Для периода или истории сначала свежие
		selectBuilder = selectBuilder.OrderBy("event_date DESC, start_time DESC, id DESC")
	}

	// Внутри транзакции выборка одного дня блокирует строки:
	// так usecase создания пересчитывает занятость слота без гонок
	if dbmetrics.IsInTransaction(ctx) && filter.SingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel отменяет бронирование с указанием причины.
// Фильтр по арендатору входит в сам запрос: чужая строка не обновится.
func (r *Repository) Cancel(ctx context.Context, tenantID, id int64, status domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.TenantID,
			&booking.PackageID,
			&booking.UserID,
			&booking.EventDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.Status,
			&booking.PackageName,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
