package check_availability

import (
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// generateSlotGrid строит сетку слотов открытого дня.
// Сетка идёт от времени открытия с шагом TimeSlotDurationMinutes; слот
// попадает в сетку, только если полная длительность бронирования
// укладывается до закрытия. Неполные хвостовые окна отбрасываются.
//
// Пример: окно 09:00-17:00, шаг 60 минут, бронирование 2 часа ->
// слоты 09:00..15:00, слот 16:00 не предлагается (16:00+2ч > 17:00).
func generateSlotGrid(entry domain.WorkingHoursEntry, config *domain.TenantScheduleConfig) ([]domain.TimeSlot, error) {
	if !entry.IsOpen {
		return []domain.TimeSlot{}, nil
	}

	openMinutes := entry.StartTime.Minutes()
	closeMinutes := entry.EndTime.Minutes()
	step := config.TimeSlotDurationMinutes
	bookingDuration := config.BookingDurationMinutes()

	slots := make([]domain.TimeSlot, 0, (closeMinutes-openMinutes)/step+1)

	for current := openMinutes; current+bookingDuration <= closeMinutes; current += step {
		start, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			return nil, err
		}

		// Конец ячейки сетки не выходит за время закрытия
		endMinutes := current + step
		if endMinutes > closeMinutes {
			endMinutes = closeMinutes
		}
		end, err := types.NewTimeStringFromMinutes(endMinutes)
		if err != nil {
			return nil, err
		}

		slots = append(slots, domain.TimeSlot{
			StartTime: start,
			EndTime:   end,
			Capacity:  config.MaxConcurrentBookingsPerSlot,
		})
	}

	return slots, nil
}

// attachOccupancy раскладывает активные бронирования по слотам.
// Бронирование относится к слоту с ТОЧНО совпадающим временем начала:
// это модель корзин, а не проверка пересечения интервалов. Бронирование
// с временем вне сетки не попадает ни в один слот.
//
// Примеры:
// - Слот 10:00, бронирование start_time=10:00 -> учитывается в слоте 10:00
// - Слот 10:00, бронирование start_time=10:17 -> не учитывается нигде
func attachOccupancy(slots []domain.TimeSlot, bookings []*domain.Booking) {
	if len(slots) == 0 || len(bookings) == 0 {
		return
	}

	counts := make(map[types.TimeString]int, len(slots))
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}
		counts[booking.StartTime]++
	}

	for i := range slots {
		slots[i].Booked = counts[slots[i].StartTime]
	}
}

// flagAvailability проставляет доступность каждого слота:
// есть место в корзине, начало слота не раньше now + минимальное
// уведомление, дата в пределах окна предварительного бронирования.
func flagAvailability(slots []domain.TimeSlot, config *domain.TenantScheduleConfig, date, now time.Time) {
	earliestStart := config.EarliestBookableMoment(now)
	withinAdvance := config.WithinAdvanceWindow(date, startOfDayUTC(now))

	for i := range slots {
		slotStart := slotMoment(date, slots[i].StartTime)
		slots[i].Available = !config.SlotCapacityReached(slots[i].Booked) &&
			!slotStart.Before(earliestStart) &&
			withinAdvance
	}
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
