package check_staff_availability

import (
	"context"

	checkStaffAvailability "github.com/m04kA/SPS-AvailabilityService/internal/usecase/check_staff_availability"
)

type CheckStaffAvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkStaffAvailability.Request) (*checkStaffAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
