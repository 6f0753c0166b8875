package check_staff_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные, разбирает дату и время начала.
// Выполняется до любого обращения к хранилищу.
func validateRequest(req *Request) (time.Time, types.TimeString, error) {
	if req.TenantID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.EventDate == "" {
		return time.Time{}, "", fmt.Errorf("%w: eventDate is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.EventDate, time.UTC)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: eventDate must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	maxDuration := domain.MaxBookingDurationHours * domain.MinutesPerHour
	if req.DurationMinutes > maxDuration {
		return time.Time{}, "", fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidInput, maxDuration)
	}

	return date, start, nil
}
