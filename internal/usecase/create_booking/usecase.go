package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/schedule"
	packageRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/servicepackage"
)

// UseCase use case для создания бронирования
type UseCase struct {
	scheduleRepo ScheduleRepository
	packageRepo  PackageRepository
	bookingRepo  BookingRepository
	cache        AvailabilityCache
	locker       DayLocker // nil отключает распределённую блокировку
	lockTTL      time.Duration
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// locker может быть nil: блокировка кооперативная, корректность
// обеспечивает сериализуемая транзакция.
func NewUseCase(
	scheduleRepo ScheduleRepository,
	packageRepo PackageRepository,
	bookingRepo BookingRepository,
	cache AvailabilityCache,
	locker DayLocker,
	lockTTL time.Duration,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		packageRepo:  packageRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		locker:       locker,
		lockTTL:      lockTTL,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Повторная проверка занятости слота и вставка идут в сериализуемой
// транзакции: котировка доступности не является гарантией места.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, package=%d, user=%d, date=%s, time=%s",
		req.TenantID, req.PackageID, req.UserID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	date, start, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Блокировка дня пакета, если включена. Занятая блокировка
	//    означает параллельный коммит этого же дня
	if uc.locker != nil {
		key := lockKey(req.TenantID, req.PackageID, date)

		token, ok, err := uc.locker.Acquire(ctx, key, uc.lockTTL)
		if err != nil {
			uc.logger.Warn("CreateBooking: lock acquire failed, proceeding without lock: %v", err)
		} else if !ok {
			uc.logger.Warn("CreateBooking: booking already in progress, key=%s", key)
			return nil, ErrBookingInProgress
		} else {
			defer func() {
				if err := uc.locker.Release(ctx, key, token); err != nil {
					uc.logger.Warn("CreateBooking: lock release failed, key=%s: %v", key, err)
				}
			}()
		}
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Конфигурация расписания арендатора
		config, err := uc.scheduleRepo.GetByTenantID(txCtx, req.TenantID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Warn("CreateBooking: tenant id=%d has no schedule config", req.TenantID)
				return ErrTenantNotFound
			}
			uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		if err := config.Validate(); err != nil {
			uc.logger.Error("CreateBooking: schedule config of tenant=%d is unusable: %v", req.TenantID, err)
			return fmt.Errorf("%w: invalid schedule config: %v", ErrInternal, err)
		}

		// 4.2. Пакет услуг, с фильтром по арендатору в запросе
		pkg, err := uc.packageRepo.GetByID(txCtx, req.TenantID, req.PackageID)
		if err != nil {
			if errors.Is(err, packageRepo.ErrPackageNotFound) {
				uc.logger.Warn("CreateBooking: package id=%d not found for tenant=%d", req.PackageID, req.TenantID)
				return ErrPackageNotFound
			}
			uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
			return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}

		// 4.3. Дата не в прошлом и внутри окна предварительного бронирования
		if err := validateDate(date, startOfDayUTC(now), config); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 4.4. Рабочие часы на день недели
		entry, ok := config.WorkingHours.ForWeekday(date.Weekday())
		if !ok {
			uc.logger.Error("CreateBooking: tenant=%d has no schedule entry for %s", req.TenantID, date.Weekday())
			return fmt.Errorf("%w: no schedule entry for %s", ErrInternal, date.Weekday())
		}
		if !entry.IsOpen {
			uc.logger.Warn("CreateBooking: tenant=%d is closed on %s", req.TenantID, req.Date)
			return ErrTenantClosed
		}

		// 4.5. Время начала лежит на сетке слотов
		if err := validateOnGrid(start, entry, config); err != nil {
			uc.logger.Warn("CreateBooking: grid validation failed: %v", err)
			return err
		}

		// 4.6. Минимальный срок уведомления перед слотом
		if err := validateNotice(slotMoment(date, start), now, config); err != nil {
			uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
			return err
		}

		// 4.7. Занятость слота с блокировкой строк (FOR UPDATE)
		nextDay := date.AddDate(0, 0, 1)
		filter := domain.BookingFilter{
			TenantID:  req.TenantID,
			PackageID: &req.PackageID,
			DateFrom:  &date,
			DateTo:    &nextDay,
			StartTime: &start,
		}

		bookings, err := uc.bookingRepo.ListWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot bookings: %v", err)
			return fmt.Errorf("%w: failed to get slot bookings: %v", ErrInternal, err)
		}

		booked := countSlotBookings(start, bookings)
		if config.SlotCapacityReached(booked) {
			uc.logger.Warn("CreateBooking: slot %s not available, %d/%d spots taken",
				req.StartTime, booked, config.MaxConcurrentBookingsPerSlot)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: slot %s available, %d/%d spots taken",
			req.StartTime, booked, config.MaxConcurrentBookingsPerSlot)

		// 4.8. Создаем бронирование с денормализованным названием пакета
		booking := &domain.Booking{
			TenantID:        req.TenantID,
			PackageID:       req.PackageID,
			UserID:          req.UserID,
			EventDate:       date,
			StartTime:       start,
			DurationMinutes: config.BookingDurationMinutes(),
			Status:          domain.StatusPending,
			PackageName:     pkg.Name,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Инвалидация кеша дня после коммита. Ошибка удаления не отменяет
	//    бронирование: TTL ограничивает устаревание
	if err := uc.cache.Delete(ctx, req.TenantID, req.PackageID, date); err != nil {
		uc.logger.Warn("CreateBooking: cache invalidation failed: %v", err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result), nil
}

// lockKey строит ключ блокировки коммита для дня пакета
func lockKey(tenantID, packageID int64, date time.Time) string {
	return fmt.Sprintf("lock:booking:%d:%d:%s", tenantID, packageID, date.Format(domain.DateFormat))
}
