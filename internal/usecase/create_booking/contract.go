package create_booking

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
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// AvailabilityCache интерфейс кеша результатов расчёта доступности
type AvailabilityCache interface {
	// Delete инвалидирует закешированный день пакета
	Delete(ctx context.Context, tenantID, packageID int64, date time.Time) error
}

// DayLocker распределённая блокировка секции коммита бронирования.
// Acquire не ждёт занятую блокировку, а сразу возвращает ok=false.
type DayLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
