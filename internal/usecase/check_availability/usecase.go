package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	availabilityCache "github.com/m04kA/SPS-AvailabilityService/internal/infra/cache/availability"
	scheduleRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/schedule"
	packageRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/servicepackage"
)

// UseCase use case расчёта доступности дня для пакета услуг арендатора
type UseCase struct {
	scheduleRepo ScheduleRepository
	packageRepo  PackageRepository
	bookingRepo  BookingRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	packageRepo PackageRepository,
	bookingRepo BookingRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		packageRepo:  packageRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет расчёт доступности дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: tenant=%d, package=%d, date=%s",
		req.TenantID, req.PackageID, req.Date)

	// 1. Валидация входных данных до любых запросов
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем кеш. Ошибка чтения деградирует до пересчёта
	cached, err := uc.cache.Get(ctx, req.TenantID, req.PackageID, date)
	if err == nil {
		uc.logger.Info("CheckAvailability: cache hit for tenant=%d, package=%d, date=%s",
			req.TenantID, req.PackageID, req.Date)
		return toResponse(cached), nil
	}
	if !errors.Is(err, availabilityCache.ErrCacheMiss) {
		uc.logger.Warn("CheckAvailability: cache read degraded, recomputing: %v", err)
	}

	// 3. Конфигурация расписания арендатора
	config, err := uc.scheduleRepo.GetByTenantID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Warn("CheckAvailability: tenant id=%d has no schedule config", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get schedule config for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	if err := config.Validate(); err != nil {
		uc.logger.Error("CheckAvailability: schedule config of tenant=%d is unusable: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid schedule config: %v", ErrInternal, err)
	}

	// 4. Пакет услуг, с фильтром по арендатору в запросе
	if _, err := uc.packageRepo.GetByID(ctx, req.TenantID, req.PackageID); err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CheckAvailability: package id=%d not found for tenant=%d", req.PackageID, req.TenantID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 5. Расписание на день недели. Закрытый день кешируется как пустой
	entry, ok := config.WorkingHours.ForWeekday(date.Weekday())
	if !ok {
		uc.logger.Error("CheckAvailability: tenant=%d has no schedule entry for %s", req.TenantID, date.Weekday())
		return nil, fmt.Errorf("%w: no schedule entry for %s", ErrInternal, date.Weekday())
	}
	if !entry.IsOpen {
		uc.logger.Info("CheckAvailability: tenant=%d is closed on %s", req.TenantID, req.Date)
		day := &domain.DayAvailability{
			TenantID:  req.TenantID,
			PackageID: req.PackageID,
			Date:      date,
			Available: false,
			Slots:     []domain.TimeSlot{},
		}
		uc.storeInCache(ctx, day)
		return toResponse(day), nil
	}

	// 6. Сетка слотов дня
	slots, err := generateSlotGrid(entry, config)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	// 7. Активные бронирования пакета за UTC-день [date, date+1)
	nextDay := date.AddDate(0, 0, 1)
	filter := domain.BookingFilter{
		TenantID:  req.TenantID,
		PackageID: &req.PackageID,
		DateFrom:  &date,
		DateTo:    &nextDay,
	}

	bookings, err := uc.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Раскладываем бронирования по корзинам точного совпадения начала
	attachOccupancy(slots, bookings)

	// 9. Флаги доступности: вместимость, уведомление, окно брони
	flagAvailability(slots, config, date, uc.timeProvider.Now())

	day := &domain.DayAvailability{
		TenantID:  req.TenantID,
		PackageID: req.PackageID,
		Date:      date,
		Slots:     slots,
	}
	day.Available = day.HasAvailableSlot()

	// 10. Сохраняем результат. Ошибка записи кеша не влияет на ответ
	uc.storeInCache(ctx, day)

	uc.logger.Info("CheckAvailability: computed %d slots (available=%t) for tenant=%d, package=%d, date=%s",
		len(day.Slots), day.Available, req.TenantID, req.PackageID, req.Date)

	return toResponse(day), nil
}

// storeInCache записывает результат в кеш, проглатывая ошибки записи
func (uc *UseCase) storeInCache(ctx context.Context, day *domain.DayAvailability) {
	if err := uc.cache.Set(ctx, day); err != nil {
		uc.logger.Warn("CheckAvailability: cache write failed: %v", err)
	}
}
