package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные и разбирает дату.
// Выполняется до любого обращения к хранилищу или кешу.
func validateRequest(req *Request) (time.Time, error) {
	if req.TenantID <= 0 {
		return time.Time{}, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return time.Time{}, fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	return date, nil
}
