package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// WorkingHoursEntry describes one weekday of a tenant schedule.
// StartTime and EndTime are meaningful only when IsOpen is true.
type WorkingHoursEntry struct {
	DayOfWeek time.Weekday
	IsOpen    bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// WeeklySchedule holds exactly one WorkingHoursEntry per weekday.
type WeeklySchedule []WorkingHoursEntry

// ForWeekday returns the schedule entry for the given weekday.
func (s WeeklySchedule) ForWeekday(day time.Weekday) (WorkingHoursEntry, bool) {
	for _, entry := range s {
		if entry.DayOfWeek == day {
			return entry, true
		}
	}
	return WorkingHoursEntry{}, false
}

// Validate checks the weekly schedule covers each weekday exactly once
// and that every open day has a well-formed, non-empty working window.
func (s WeeklySchedule) Validate() error {
	if len(s) != DaysPerWeek {
		return fmt.Errorf("schedule must have %d entries, got %d", DaysPerWeek, len(s))
	}

	var seen [DaysPerWeek]bool
	for _, entry := range s {
		if entry.DayOfWeek < time.Sunday || entry.DayOfWeek > time.Saturday {
			return fmt.Errorf("unknown weekday %d", entry.DayOfWeek)
		}
		if seen[entry.DayOfWeek] {
			return fmt.Errorf("duplicate entry for %s", entry.DayOfWeek)
		}
		seen[entry.DayOfWeek] = true

		if !entry.IsOpen {
			continue
		}
		if err := entry.StartTime.Validate(); err != nil {
			return fmt.Errorf("%s start time: %v", entry.DayOfWeek, err)
		}
		if err := entry.EndTime.Validate(); err != nil {
			return fmt.Errorf("%s end time: %v", entry.DayOfWeek, err)
		}
		if !entry.StartTime.IsBefore(entry.EndTime) {
			return fmt.Errorf("%s working window %s-%s is empty or inverted",
				entry.DayOfWeek, entry.StartTime, entry.EndTime)
		}
	}

	return nil
}

// TenantScheduleConfig represents the booking rules of a tenant:
// the slot grid, per-slot capacity, notice and advance windows and
// the weekly working hours.
type TenantScheduleConfig struct {
	ID                           int64
	TenantID                     int64
	TimeSlotDurationMinutes      int
	DefaultBookingDurationHours  int
	MaxConcurrentBookingsPerSlot int
	MinimumNoticePeriodHours     int
	MaxAdvanceBookingDays        int
	WorkingHours                 WeeklySchedule
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// BookingDurationMinutes returns how long a booking occupies the studio, in minutes.
func (c *TenantScheduleConfig) BookingDurationMinutes() int {
	return c.DefaultBookingDurationHours * MinutesPerHour
}

// SlotCapacityReached returns true if a slot bucket with the given number
// of active bookings cannot take another one.
func (c *TenantScheduleConfig) SlotCapacityReached(booked int) bool {
	return booked >= c.MaxConcurrentBookingsPerSlot
}

// EarliestBookableMoment returns the first moment a slot may start at,
// honouring the minimum notice period.
func (c *TenantScheduleConfig) EarliestBookableMoment(now time.Time) time.Time {
	return now.Add(time.Duration(c.MinimumNoticePeriodHours) * time.Hour)
}

// LatestBookableDate returns the last calendar day (inclusive) that still
// accepts bookings when today is the given day.
func (c *TenantScheduleConfig) LatestBookableDate(today time.Time) time.Time {
	return today.AddDate(0, 0, c.MaxAdvanceBookingDays)
}

// WithinAdvanceWindow reports whether the date can still be booked today.
func (c *TenantScheduleConfig) WithinAdvanceWindow(date, today time.Time) bool {
	return !date.After(c.LatestBookableDate(today))
}

// SupportsParallelBookings returns true if a slot can hold more than one booking.
func (c *TenantScheduleConfig) SupportsParallelBookings() bool {
	return c.MaxConcurrentBookingsPerSlot > 1
}

// Validate checks that a loaded configuration can drive slot generation.
func (c *TenantScheduleConfig) Validate() error {
	if c.TimeSlotDurationMinutes < MinSlotDurationMinutes || c.TimeSlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("slot duration %d minutes is out of range [%d, %d]",
			c.TimeSlotDurationMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if c.DefaultBookingDurationHours <= 0 || c.DefaultBookingDurationHours > MaxBookingDurationHours {
		return fmt.Errorf("booking duration %d hours is out of range (0, %d]",
			c.DefaultBookingDurationHours, MaxBookingDurationHours)
	}
	if c.MaxConcurrentBookingsPerSlot < MinConcurrentBookings || c.MaxConcurrentBookingsPerSlot > MaxConcurrentBookings {
		return fmt.Errorf("slot capacity %d is out of range [%d, %d]",
			c.MaxConcurrentBookingsPerSlot, MinConcurrentBookings, MaxConcurrentBookings)
	}
	if c.MinimumNoticePeriodHours < MinNoticePeriodHours || c.MinimumNoticePeriodHours > MaxNoticePeriodHours {
		return fmt.Errorf("notice period %d hours is out of range [%d, %d]",
			c.MinimumNoticePeriodHours, MinNoticePeriodHours, MaxNoticePeriodHours)
	}
	if c.MaxAdvanceBookingDays < MinAdvanceDays || c.MaxAdvanceBookingDays > MaxAdvanceDays {
		return fmt.Errorf("advance window %d days is out of range [%d, %d]",
			c.MaxAdvanceBookingDays, MinAdvanceDays, MaxAdvanceDays)
	}
	return c.WorkingHours.Validate()
}
