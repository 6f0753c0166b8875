package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	// GetByTenantID получает конфигурацию арендатора вместе с недельным графиком
	GetByTenantID(ctx context.Context, tenantID int64) (*domain.TenantScheduleConfig, error)
}

// PackageRepository интерфейс репозитория пакетов услуг
type PackageRepository interface {
	// GetByID получает пакет услуг с фильтром по арендатору
	GetByID(ctx context.Context, tenantID, packageID int64) (*domain.ServicePackage, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListWithFilter получает бронирования по типизированному фильтру
	ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// AvailabilityCache интерфейс кеша результатов расчёта доступности
type AvailabilityCache interface {
	Get(ctx context.Context, tenantID, packageID int64, date time.Time) (*domain.DayAvailability, error)
	Set(ctx context.Context, day *domain.DayAvailability) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
