package check_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

func gridConfig(stepMinutes, bookingHours, capacity int) *domain.TenantScheduleConfig {
	return &domain.TenantScheduleConfig{
		TimeSlotDurationMinutes:      stepMinutes,
		DefaultBookingDurationHours:  bookingHours,
		MaxConcurrentBookingsPerSlot: capacity,
	}
}

func openEntry(start, end types.TimeString) domain.WorkingHoursEntry {
	return domain.WorkingHoursEntry{
		DayOfWeek: time.Tuesday,
		IsOpen:    true,
		StartTime: start,
		EndTime:   end,
	}
}

func slotStarts(slots []domain.TimeSlot) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.StartTime)
	}
	return starts
}

func TestGenerateSlotGrid(t *testing.T) {
	t.Run("hour grid fills working window", func(t *testing.T) {
		slots, err := generateSlotGrid(openEntry("09:00", "17:00"), gridConfig(60, 1, 1))
		require.NoError(t, err)

		assert.Equal(t, []types.TimeString{
			"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
		}, slotStarts(slots))
		assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)
		assert.Equal(t, 1, slots[0].Capacity)
	})

	t.Run("trailing partial windows are dropped", func(t *testing.T) {
		// Бронирование 2 часа: слот 16:00 не успевает до закрытия
		slots, err := generateSlotGrid(openEntry("09:00", "17:00"), gridConfig(60, 2, 1))
		require.NoError(t, err)

		assert.Equal(t, []types.TimeString{
			"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00",
		}, slotStarts(slots))
	})

	t.Run("half hour grid in short window", func(t *testing.T) {
		slots, err := generateSlotGrid(openEntry("09:00", "10:30"), gridConfig(30, 1, 1))
		require.NoError(t, err)

		assert.Equal(t, []types.TimeString{"09:00", "09:30"}, slotStarts(slots))
	})

	t.Run("grid cell end is clamped to closing time", func(t *testing.T) {
		slots, err := generateSlotGrid(openEntry("09:00", "10:30"), gridConfig(120, 1, 1))
		require.NoError(t, err)

		require.Len(t, slots, 1)
		assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("10:30"), slots[0].EndTime)
	})

	t.Run("closed day has no slots", func(t *testing.T) {
		entry := domain.WorkingHoursEntry{DayOfWeek: time.Sunday, IsOpen: false}
		slots, err := generateSlotGrid(entry, gridConfig(60, 1, 1))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("booking longer than window yields no slots", func(t *testing.T) {
		slots, err := generateSlotGrid(openEntry("09:00", "10:00"), gridConfig(60, 2, 1))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestAttachOccupancy(t *testing.T) {
	slots := []domain.TimeSlot{
		{StartTime: "09:00", Capacity: 2},
		{StartTime: "10:00", Capacity: 2},
		{StartTime: "11:00", Capacity: 2},
	}

	bookings := []*domain.Booking{
		{StartTime: "10:00", Status: domain.StatusConfirmed},
		{StartTime: "10:00", Status: domain.StatusPending},
		// Не попадает в сетку: времени начала 10:17 нет среди слотов
		{StartTime: "10:17", Status: domain.StatusConfirmed},
		// Отменённое не считается даже при совпадении
		{StartTime: "09:00", Status: domain.StatusCancelledByClient},
	}

	attachOccupancy(slots, bookings)

	assert.Equal(t, 0, slots[0].Booked)
	assert.Equal(t, 2, slots[1].Booked)
	assert.Equal(t, 0, slots[2].Booked)
}

func TestFlagAvailability(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	config := gridConfig(60, 1, 1)
	config.MinimumNoticePeriodHours = 2
	config.MaxAdvanceBookingDays = 30

	t.Run("notice period boundary is inclusive", func(t *testing.T) {
		slots := []domain.TimeSlot{
			{StartTime: "09:00", Capacity: 1},
			{StartTime: "10:00", Capacity: 1},
			{StartTime: "11:00", Capacity: 1},
		}

		// now+2ч = 10:00, слот 10:00 проходит по нижней границе
		now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
		flagAvailability(slots, config, date, now)

		assert.False(t, slots[0].Available)
		assert.True(t, slots[1].Available)
		assert.True(t, slots[2].Available)
	})

	t.Run("capacity reached makes slot unavailable", func(t *testing.T) {
		slots := []domain.TimeSlot{
			{StartTime: "12:00", Capacity: 1, Booked: 1},
			{StartTime: "13:00", Capacity: 1, Booked: 0},
		}

		now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
		flagAvailability(slots, config, date, now)

		assert.False(t, slots[0].Available)
		assert.True(t, slots[1].Available)
	})

	t.Run("date beyond advance window disables the day", func(t *testing.T) {
		slots := []domain.TimeSlot{
			{StartTime: "12:00", Capacity: 1},
			{StartTime: "13:00", Capacity: 1},
		}

		now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
		farDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC) // now + 68 дней
		flagAvailability(slots, config, farDate, now)

		assert.False(t, slots[0].Available)
		assert.False(t, slots[1].Available)
	})

	t.Run("past day slots stay listed but unavailable", func(t *testing.T) {
		slots := []domain.TimeSlot{
			{StartTime: "12:00", Capacity: 1},
		}

		now := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
		flagAvailability(slots, config, date, now)

		assert.False(t, slots[0].Available)
	})
}
