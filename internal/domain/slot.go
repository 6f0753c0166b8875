package domain

import (
	"time"

	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// TimeSlot represents one bucket of a tenant's booking grid for a day.
// EndTime is the grid cell boundary (next bucket start, clamped to the
// closing time), not the end of a booking placed into the slot.
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Booked    int
	Capacity  int
	Available bool
}

// IsFull returns true if the slot bucket has no spots left.
func (s *TimeSlot) IsFull() bool {
	return s.Booked >= s.Capacity
}

// FreeSpots returns how many bookings the slot can still take.
func (s *TimeSlot) FreeSpots() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

// OccupancyRate returns the occupancy rate as a percentage (0-100).
func (s *TimeSlot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Booked) / float64(s.Capacity) * 100
}

// DayAvailability is the computed availability of one tenant package day.
// This is the value cached under availability:{tenant}:{package}:{date}.
type DayAvailability struct {
	TenantID  int64
	PackageID int64
	Date      time.Time
	Available bool
	Slots     []TimeSlot
}

// HasAvailableSlot returns true if at least one slot can accept a booking.
func (d *DayAvailability) HasAvailableSlot() bool {
	for i := range d.Slots {
		if d.Slots[i].Available {
			return true
		}
	}
	return false
}
