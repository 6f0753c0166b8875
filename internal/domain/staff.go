package domain

import "github.com/m04kA/SPS-AvailabilityService/pkg/types"

// StaffBusyWindow is a staff member's committed interval on a given day,
// projected from a task assignment and its parent booking.
type StaffBusyWindow struct {
	UserID          int64
	StartTime       types.TimeString
	DurationMinutes int
}

// Overlaps reports whether the busy window intersects the half-open
// proposed interval starting at startMinutes (minutes since midnight)
// and lasting durationMinutes. Back-to-back intervals do not overlap;
// empty intervals never overlap anything.
func (w StaffBusyWindow) Overlaps(startMinutes, durationMinutes int) bool {
	if durationMinutes <= 0 || w.DurationMinutes <= 0 {
		return false
	}
	existingStart := w.StartTime.Minutes()
	existingEnd := existingStart + w.DurationMinutes
	proposedEnd := startMinutes + durationMinutes
	return existingStart < proposedEnd && startMinutes < existingEnd
}

// StaffAvailability is the verdict of the staff conflict calculation
// for a proposed booking window.
type StaffAvailability struct {
	RequiredStaffCount int
	EligibleCount      int
	BusyCount          int
	AvailableCount     int
	Ok                 bool
}
