package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SPS-AvailabilityService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями арендатора
type Service struct {
	bookingRepo BookingRepository
	cache       AvailabilityCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetByID получает бронирование арендатора.
// Фильтр по арендатору входит в сам запрос, поэтому чужое бронирование
// неотличимо от несуществующего.
func (s *Service) GetByID(ctx context.Context, tenantID, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for tenant=%d", bookingID, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found for tenant=%d", bookingID, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// ListByTenant получает бронирования арендатора с гибкой фильтрацией
//
// Примеры использования:
// - Все активные бронирования: ListByTenant(ctx, &ListBookingsRequest{TenantID: 42})
// - Бронирования пакета: указать PackageID
// - Бронирования на дату: DateFrom и DateTo указывают на одну дату
// - Бронирования за период: DateFrom и DateTo указывают на разные даты
// - Только ожидающие: Statuses = ["pending"]
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListByTenant(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListByTenant: fetching bookings for tenant=%d", req.TenantID)
	if req.PackageID != nil {
		logMsg += fmt.Sprintf(", package=%d", *req.PackageID)
	}
	if req.UserID != nil {
		logMsg += fmt.Sprintf(", user=%d", *req.UserID)
	}
	if req.DateFrom != nil && req.DateTo != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat))
	}
	if len(req.Statuses) > 0 {
		logMsg += fmt.Sprintf(", statuses=%v", req.Statuses)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByTenant: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrInvalidFilter) {
			s.logger.Warn("ListByTenant: filter rejected for tenant=%d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("ListByTenant: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListByTenant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTenant: successfully fetched %d bookings for tenant=%d", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование арендатора и инвалидирует кеш дня.
// Статус отмены зависит от инициатора: клиент или арендатор.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d for tenant=%d (byTenant=%t)",
		req.BookingID, req.TenantID, req.CancelledByTenant)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d (%d chars)",
			req.BookingID, len(*req.CancellationReason))
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Получаем бронирование с фильтром по арендатору
	booking, err := s.bookingRepo.GetByID(ctx, req.TenantID, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found for tenant=%d", req.BookingID, req.TenantID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", req.BookingID, booking.Status)
		return ErrCannotCancel
	}

	cancelStatus := domain.StatusCancelledByClient
	if req.CancelledByTenant {
		cancelStatus = domain.StatusCancelledByTenant
	}

	if err := s.bookingRepo.Cancel(ctx, req.TenantID, req.BookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", req.BookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Инвалидация кеша дня. Ошибка удаления не отменяет отмену:
	// TTL ограничивает устаревание
	if err := s.cache.Delete(ctx, booking.TenantID, booking.PackageID, booking.EventDate); err != nil {
		s.logger.Warn("Cancel: cache invalidation failed for booking id=%d: %v", req.BookingID, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", req.BookingID, cancelStatus)
	return nil
}
