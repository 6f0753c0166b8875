package domain

// Default configuration values
const (
	DefaultTimeSlotDurationMinutes      = 60
	DefaultBookingDurationHours         = 1
	DefaultMaxConcurrentBookingsPerSlot = 1
	DefaultMinimumNoticePeriodHours     = 24
	DefaultMaxAdvanceBookingDays        = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinConcurrentBookings       = 1
	MaxConcurrentBookings       = 100
	MinNoticePeriodHours        = 0
	MaxNoticePeriodHours        = 720 // 30 days
	MinAdvanceDays              = 0
	MaxAdvanceDays              = 365 // 1 year
	MaxBookingDurationHours     = 24
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

const (
	DaysPerWeek    = 7
	MinutesPerHour = 60
)

// InactiveStatuses список статусов отменённых бронирований
// Используется для фильтрации при подсчёте занятости слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByTenant,
}

// ActiveStatuses список статусов активных бронирований
// Активные бронирования занимают место в слоте и время сотрудников
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
