package cancel_booking

import (
	"github.com/m04kA/SPS-AvailabilityService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancelledByTenant  bool    `json:"cancelledByTenant"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(tenantID, bookingID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		TenantID:           tenantID,
		BookingID:          bookingID,
		CancelledByTenant:  r.CancelledByTenant,
		CancellationReason: r.CancellationReason,
	}
}
