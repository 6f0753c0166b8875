package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные, разбирает дату и время начала.
// Выполняется до блокировки и до любого обращения к хранилищу.
func validateRequest(req *Request) (time.Time, types.TimeString, error) {
	if req.TenantID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return time.Time{}, "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, time.UTC)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return time.Time{}, "", fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return date, start, nil
}

// validateDate проверяет, что дата не в прошлом и внутри окна
// предварительного бронирования
func validateDate(date, today time.Time, config *domain.TenantScheduleConfig) error {
	if date.Before(today) {
		return ErrInvalidDate
	}

	if !config.WithinAdvanceWindow(date, today) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrTooFarInAdvance, config.MaxAdvanceBookingDays)
	}

	return nil
}

// validateOnGrid проверяет, что время начала лежит на сетке слотов дня:
// выровнено по шагу от открытия и полная длительность бронирования
// укладывается до закрытия
func validateOnGrid(start types.TimeString, entry domain.WorkingHoursEntry, config *domain.TenantScheduleConfig) error {
	startMinutes := start.Minutes()
	openMinutes := entry.StartTime.Minutes()
	closeMinutes := entry.EndTime.Minutes()

	if startMinutes < openMinutes || (startMinutes-openMinutes)%config.TimeSlotDurationMinutes != 0 {
		return fmt.Errorf("%w: start time %s is not on the slot grid", ErrInvalidTimeSlot, start)
	}

	if startMinutes+config.BookingDurationMinutes() > closeMinutes {
		return fmt.Errorf("%w: booking does not fit into working hours", ErrInvalidTimeSlot)
	}

	return nil
}

// validateNotice проверяет минимальный срок уведомления перед слотом
func validateNotice(slotStart, now time.Time, config *domain.TenantScheduleConfig) error {
	if slotStart.Before(config.EarliestBookableMoment(now)) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, config.MinimumNoticePeriodHours)
	}
	return nil
}

// countSlotBookings подсчитывает активные бронирования с точно
// совпадающим временем начала. Модель корзин, не пересечение интервалов.
func countSlotBookings(start types.TimeString, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}
		if booking.StartTime.Equal(start) {
			count++
		}
	}
	return count
}

// slotMoment возвращает абсолютный момент начала слота в UTC
func slotMoment(date time.Time, start types.TimeString) time.Time {
	return date.Add(time.Duration(start.Minutes()) * time.Minute)
}

// startOfDayUTC обнуляет время, оставляя календарный день UTC
func startOfDayUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
