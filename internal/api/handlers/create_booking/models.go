package create_booking

import (
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	createBooking "github.com/m04kA/SPS-AvailabilityService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PackageID int64   `json:"packageId"`
	UserID    int64   `json:"userId"`
	EventDate string  `json:"eventDate"` // "2026-03-10"
	StartTime string  `json:"startTime"` // "10:00"
	Notes     *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	TenantID        int64   `json:"tenantId"`
	PackageID       int64   `json:"packageId"`
	UserID          int64   `json:"userId"`
	EventDate       string  `json:"eventDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PackageName     string  `json:"packageName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время передаются строками, разбором занимается use case.
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID int64) *createBooking.Request {
	return &createBooking.Request{
		TenantID:  tenantID,
		PackageID: r.PackageID,
		UserID:    r.UserID,
		Date:      r.EventDate,
		StartTime: r.StartTime,
		Notes:     r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		TenantID:        resp.TenantID,
		PackageID:       resp.PackageID,
		UserID:          resp.UserID,
		EventDate:       resp.EventDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PackageName:     resp.PackageName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
