package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledByTenant BookingStatus = "cancelled_by_tenant"
)

// Booking represents a package booking in the system
type Booking struct {
	ID              int64
	TenantID        int64
	PackageID       int64
	UserID          int64
	EventDate       time.Time // UTC midnight of the calendar day
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	PackageName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies slot capacity and staff time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByTenant
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByTenant
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingFilter спецификация выборки бронирований арендатора.
// Потребляется единственной точкой сборки запроса - Repository.ListWithFilter.
type BookingFilter struct {
	TenantID  int64             // Обязательный параметр, изоляция арендатора
	PackageID *int64            // Фильтр по пакету услуг (опционально)
	UserID    *int64            // Фильтр по клиенту (опционально)
	DateFrom  *time.Time        // Начало периода, включительно (опционально)
	DateTo    *time.Time        // Конец периода, не включается (опционально)
	StartTime *types.TimeString // Точное время начала слота (опционально)
	Statuses  []BookingStatus   // Фильтр по статусам (опционально)

	// IncludeInactive включает отменённые бронирования в выборку.
	// По умолчанию false: занятость слотов считается только по активным.
	IncludeInactive bool
}

// Validate проверяет фильтр до сборки запроса
func (f BookingFilter) Validate() error {
	if f.TenantID <= 0 {
		return fmt.Errorf("tenant id must be positive, got %d", f.TenantID)
	}
	if f.DateFrom != nil && f.DateTo != nil && !f.DateFrom.Before(*f.DateTo) {
		return fmt.Errorf("date window [%s, %s) is empty or inverted",
			f.DateFrom.Format(DateFormat), f.DateTo.Format(DateFormat))
	}
	if f.StartTime != nil {
		if err := f.StartTime.Validate(); err != nil {
			return fmt.Errorf("start time filter: %v", err)
		}
	}
	return nil
}

// SingleDay returns true if the filter covers exactly one UTC calendar day
func (f BookingFilter) SingleDay() bool {
	if f.DateFrom == nil || f.DateTo == nil {
		return false
	}
	return f.DateTo.Sub(*f.DateFrom) == 24*time.Hour
}
