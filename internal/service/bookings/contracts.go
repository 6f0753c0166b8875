package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, tenantID, id int64, status domain.BookingStatus, reason *string) error
}

// AvailabilityCache интерфейс кеша результатов расчёта доступности
type AvailabilityCache interface {
	// Delete инвалидирует закешированный день пакета
	Delete(ctx context.Context, tenantID, packageID int64, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
