package check_staff_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	packageRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/servicepackage"
)

// UseCase use case проверки достаточности персонала для окна бронирования
type UseCase struct {
	packageRepo PackageRepository
	staffRepo   StaffRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(packageRepo PackageRepository, staffRepo StaffRepository, logger Logger) *UseCase {
	return &UseCase{
		packageRepo: packageRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// Execute выполняет проверку персонала для предложенного окна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckStaffAvailability: tenant=%d, package=%d, date=%s, start=%s, duration=%d",
		req.TenantID, req.PackageID, req.EventDate, req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных до любых запросов
	date, start, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckStaffAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Пакет услуг вместе с требованиями к персоналу
	pkg, err := uc.packageRepo.GetByID(ctx, req.TenantID, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CheckStaffAvailability: package id=%d not found for tenant=%d", req.PackageID, req.TenantID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CheckStaffAvailability: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 3. Пакет без требований к персоналу проходит проверку без запросов
	if !pkg.RequiresStaffing() {
		uc.logger.Info("CheckStaffAvailability: package id=%d requires no staffing", req.PackageID)
		return toResponse(domain.StaffAvailability{
			RequiredStaffCount: pkg.RequiredStaffCount,
			Ok:                 true,
		}), nil
	}

	// 4. Допущенные сотрудники по всем типам задач пакета
	eligible, err := uc.staffRepo.ListEligibleUserIDs(ctx, req.TenantID, pkg.TaskTypeIDs())
	if err != nil {
		uc.logger.Error("CheckStaffAvailability: failed to list eligible staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list eligible staff: %v", ErrInternal, err)
	}

	if len(eligible) == 0 {
		uc.logger.Info("CheckStaffAvailability: no eligible staff for package id=%d", req.PackageID)
		return toResponse(domain.StaffAvailability{
			RequiredStaffCount: pkg.RequiredStaffCount,
			Ok:                 false,
		}), nil
	}

	// 5. Занятые интервалы допущенных сотрудников за UTC-день [date, date+1)
	windows, err := uc.staffRepo.ListBusyWindows(ctx, req.TenantID, eligible, date, date.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("CheckStaffAvailability: failed to list busy windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list busy windows: %v", ErrInternal, err)
	}

	// 6. Сотрудник занят, если хотя бы один его интервал пересекает окно.
	//    Каждый сотрудник считается один раз
	startMinutes := start.Minutes()
	busy := make(map[int64]struct{})
	for _, window := range windows {
		if window.Overlaps(startMinutes, req.DurationMinutes) {
			busy[window.UserID] = struct{}{}
		}
	}

	result := domain.StaffAvailability{
		RequiredStaffCount: pkg.RequiredStaffCount,
		EligibleCount:      len(eligible),
		BusyCount:          len(busy),
		AvailableCount:     len(eligible) - len(busy),
	}
	result.Ok = result.AvailableCount >= result.RequiredStaffCount

	uc.logger.Info("CheckStaffAvailability: package=%d ok=%t (required=%d, eligible=%d, busy=%d)",
		req.PackageID, result.Ok, result.RequiredStaffCount, result.EligibleCount, result.BusyCount)

	return toResponse(result), nil
}
